package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func announcementFixture(id int64, priority AnnouncementPriority, audience Audience, createdAt time.Time) *Announcement {
	return &Announcement{
		ID:        id,
		Title:     "公告",
		Content:   "内容",
		Priority:  priority,
		Audience:  audience,
		IsActive:  true,
		CreatedAt: createdAt,
	}
}

func TestVisibleAnnouncementsFiltering(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := announcementFixture(1, AnnouncementPriorityHigh, AudienceAll, now)
	expired.ExpiresAt = &past

	inactive := announcementFixture(2, AnnouncementPriorityHigh, AudienceAll, now)
	inactive.IsActive = false

	wrongAudience := announcementFixture(3, AnnouncementPriorityHigh, AudienceStaff, now)

	valid := announcementFixture(4, AnnouncementPriorityNormal, AudienceStudents, now)
	validWithExpiry := announcementFixture(5, AnnouncementPriorityLow, AudienceAll, now)
	validWithExpiry.ExpiresAt = &future

	announcements := []*Announcement{expired, inactive, wrongAudience, valid, validWithExpiry}

	visible := VisibleAnnouncements(announcements, AudienceStudents, nil, now)
	require.Len(t, visible, 2)

	// 已过期的公告无论优先级多高都要被过滤掉
	for _, a := range visible {
		assert.NotEqual(t, int64(1), a.ID)
	}
	assert.Equal(t, int64(4), visible[0].ID)
	assert.Equal(t, int64(5), visible[1].ID)
}

func TestVisibleAnnouncementsOrdering(t *testing.T) {
	now := time.Now()

	oldHigh := announcementFixture(1, AnnouncementPriorityHigh, AudienceAll, now.Add(-3*time.Hour))
	newHigh := announcementFixture(2, AnnouncementPriorityHigh, AudienceAll, now.Add(-time.Hour))
	newLow := announcementFixture(3, AnnouncementPriorityLow, AudienceAll, now)
	normal := announcementFixture(4, AnnouncementPriorityNormal, AudienceAll, now)

	visible := VisibleAnnouncements([]*Announcement{newLow, oldHigh, normal, newHigh}, AudienceStaff, nil, now)
	require.Len(t, visible, 4)

	// 优先级降序，相同优先级按创建时间降序
	assert.Equal(t, int64(2), visible[0].ID)
	assert.Equal(t, int64(1), visible[1].ID)
	assert.Equal(t, int64(4), visible[2].ID)
	assert.Equal(t, int64(3), visible[3].ID)
}

func TestVisibleAnnouncementsDismissed(t *testing.T) {
	now := time.Now()

	a1 := announcementFixture(1, AnnouncementPriorityHigh, AudienceAll, now)
	a2 := announcementFixture(2, AnnouncementPriorityNormal, AudienceAll, now)

	// 被屏蔽的公告在清除屏蔽记录之前不再出现
	visible := VisibleAnnouncements([]*Announcement{a1, a2}, AudienceStaff, []int64{1}, now)
	require.Len(t, visible, 1)
	assert.Equal(t, int64(2), visible[0].ID)

	// 清除屏蔽记录之后重新可见
	visible = VisibleAnnouncements([]*Announcement{a1, a2}, AudienceStaff, nil, now)
	assert.Len(t, visible, 2)
}

func TestAudienceForRole(t *testing.T) {
	assert.Equal(t, AudienceStudents, AudienceForRole(RoleStudent))
	assert.Equal(t, AudienceStudents, AudienceForRole(RoleAlumni))
	assert.Equal(t, AudienceAgents, AudienceForRole(RoleAdmissionAgent))
	assert.Equal(t, AudienceAgents, AudienceForRole(RoleMasterAgent))
	assert.Equal(t, AudienceStaff, AudienceForRole(RoleFaculty))
	assert.Equal(t, AudienceStaff, AudienceForRole(RoleSuperAdmin))
}
