package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

func (h *Handler) GetPerspective(w http.ResponseWriter, r *http.Request) {
	override, _ := r.Context().Value(PerspectiveCtx).(*domain.Perspective)
	h.successResponse(w, r, "获取视角状态成功", override)
}

// EnterPerspective 让管理类角色临时以目标用户的视角查看仪表盘
// 进入前必须先退出已有的视角（只读守卫会拦截视角模式下的再次进入）
func (h *Handler) EnterPerspective(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64 `json:"userId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	target, err := h.repository.GetUserByID(req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "目标用户不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !target.IsActive {
		h.errorResponse(w, r, "目标用户已停用")
		return
	}

	override := domain.NewPerspective(target)

	raw, err := json.Marshal(override)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	sub := r.Context().Value(SubCtxKey).(string)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	// 覆盖的生存期和会话一致
	expiration := time.Duration(h.config.JWT.Expiration) * time.Second
	if err := h.redisClient.Set(ctx, fmt.Sprintf("perspective_%s", sub), raw, expiration).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已进入视角模式", override)
}

// ExitPerspective 无条件清除视角覆盖，没有覆盖时调用也是安全的
func (h *Handler) ExitPerspective(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(string)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, fmt.Sprintf("perspective_%s", sub)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已退出视角模式", nil)
}
