package domain

import (
	"slices"
	"time"
)

type AnnouncementPriority string

const (
	AnnouncementPriorityHigh   AnnouncementPriority = "high"
	AnnouncementPriorityNormal AnnouncementPriority = "normal"
	AnnouncementPriorityLow    AnnouncementPriority = "low"
)

// 优先级排序时使用的权重
var priorityRank = map[AnnouncementPriority]int{
	AnnouncementPriorityHigh:   3,
	AnnouncementPriorityNormal: 2,
	AnnouncementPriorityLow:    1,
}

type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceStudents Audience = "students"
	AudienceStaff    Audience = "staff"
	AudienceAgents   Audience = "agents"
)

// AudienceForRole 把生效角色归入公告的目标受众分组
func AudienceForRole(role Role) Audience {
	switch role {
	case RoleStudent, RoleAlumni:
		return AudienceStudents
	case RoleAdmissionAgent, RoleMasterAgent:
		return AudienceAgents
	default:
		return AudienceStaff
	}
}

type Announcement struct {
	ID        int64                `json:"id"`
	Title     string               `json:"title"`
	Content   string               `json:"content"`
	Priority  AnnouncementPriority `json:"priority"`
	Audience  Audience             `json:"audience"`
	IsActive  bool                 `json:"isActive"`
	ExpiresAt *time.Time           `json:"expiresAt"`
	CreatedAt time.Time            `json:"createdAt"`
	Version   int32                `json:"-"`
}

// VisibleAnnouncements 对公告集合做纯过滤加排序：
// 只保留启用的、受众匹配的、未过期的、未被当前用户屏蔽的公告，
// 按优先级降序排列，相同优先级按创建时间降序排列
func VisibleAnnouncements(announcements []*Announcement, audience Audience, dismissed []int64, now time.Time) []*Announcement {
	visible := make([]*Announcement, 0, len(announcements))
	for _, a := range announcements {
		if !a.IsActive {
			continue
		}
		if a.Audience != AudienceAll && a.Audience != audience {
			continue
		}
		if a.ExpiresAt != nil && a.ExpiresAt.Before(now) {
			continue
		}
		if slices.Contains(dismissed, a.ID) {
			continue
		}
		visible = append(visible, a)
	}

	slices.SortStableFunc(visible, func(x, y *Announcement) int {
		if priorityRank[x.Priority] != priorityRank[y.Priority] {
			return priorityRank[y.Priority] - priorityRank[x.Priority]
		}
		return y.CreatedAt.Compare(x.CreatedAt)
	})

	return visible
}
