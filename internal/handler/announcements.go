package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

// getDismissedAnnouncementIDs 读取当前用户屏蔽的公告集合
func (h *Handler) getDismissedAnnouncementIDs(ctx context.Context, sub string) ([]int64, error) {
	opCtx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	members, err := h.redisClient.SMembers(opCtx, fmt.Sprintf("announcement_dismissed_%s", sub)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// GetVisibleAnnouncements 返回当前生效角色可见的公告
// 过滤和排序都在领域层的纯函数里完成
func (h *Handler) GetVisibleAnnouncements(w http.ResponseWriter, r *http.Request) {
	effectiveRole := r.Context().Value(EffectiveRoleCtxKey).(domain.Role)
	sub := r.Context().Value(SubCtxKey).(string)

	announcements, err := h.repository.GetAllAnnouncements()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	dismissed, err := h.getDismissedAnnouncementIDs(r.Context(), sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	audience := domain.AudienceForRole(effectiveRole)
	visible := domain.VisibleAnnouncements(announcements, audience, dismissed, time.Now())

	h.successResponse(w, r, "获取公告成功", visible)
}

func (h *Handler) GetAllAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.repository.GetAllAnnouncements()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取公告列表成功", announcements)
}

func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title     string     `json:"title" validate:"required"`
		Content   string     `json:"content" validate:"required"`
		Priority  string     `json:"priority" validate:"required,oneof=high normal low"`
		Audience  string     `json:"audience" validate:"required,oneof=all students staff agents"`
		ExpiresAt *time.Time `json:"expiresAt"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	announcement := &domain.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		Priority:  domain.AnnouncementPriority(req.Priority),
		Audience:  domain.Audience(req.Audience),
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}

	if err := h.repository.CreateAnnouncement(announcement); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "公告创建成功", announcement)
}

func (h *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title     *string    `json:"title"`
		Content   *string    `json:"content"`
		Priority  *string    `json:"priority" validate:"omitempty,oneof=high normal low"`
		Audience  *string    `json:"audience" validate:"omitempty,oneof=all students staff agents"`
		IsActive  *bool      `json:"isActive"`
		ExpiresAt *time.Time `json:"expiresAt"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	announcement := r.Context().Value(AnnouncementCtx).(*domain.Announcement)

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}
	if req.Priority != nil {
		announcement.Priority = domain.AnnouncementPriority(*req.Priority)
	}
	if req.Audience != nil {
		announcement.Audience = domain.Audience(*req.Audience)
	}
	if req.IsActive != nil {
		announcement.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		announcement.ExpiresAt = req.ExpiresAt
	}

	if err := h.repository.UpdateAnnouncement(announcement); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新公告失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新公告成功", announcement)
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement := r.Context().Value(AnnouncementCtx).(*domain.Announcement)

	if err := h.repository.DeleteAnnouncement(announcement.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除公告成功", nil)
}

// DismissAnnouncement 把公告加入当前用户的屏蔽集合
// 屏蔽状态和公告自身的启用状态互相独立，清除屏蔽之前该公告不再出现
func (h *Handler) DismissAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement := r.Context().Value(AnnouncementCtx).(*domain.Announcement)
	sub := r.Context().Value(SubCtxKey).(string)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.SAdd(ctx, fmt.Sprintf("announcement_dismissed_%s", sub), announcement.ID).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "公告已屏蔽", nil)
}

func (h *Handler) ClearAnnouncementDismissals(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(string)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, fmt.Sprintf("announcement_dismissed_%s", sub)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已清除屏蔽记录", nil)
}
