package handler

import (
	"net/http"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

// GetDashboard 把会话的生效角色解析为唯一的仪表盘视图
// 视角覆盖激活时返回覆盖用户的视图，未知角色进入拒绝访问视图
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	effectiveRole := r.Context().Value(EffectiveRoleCtxKey).(domain.Role)
	override, _ := r.Context().Value(PerspectiveCtx).(*domain.Perspective)

	data := struct {
		View          domain.DashboardView `json:"view"`
		EffectiveRole domain.Role          `json:"effectiveRole"`
		Perspective   *domain.Perspective  `json:"perspective"`
	}{
		View:          domain.ResolveDashboard(effectiveRole),
		EffectiveRole: effectiveRole,
		Perspective:   override,
	}

	h.successResponse(w, r, "获取仪表盘成功", data)
}
