package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

func perspectiveRequest(method, path string, active bool) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	if active {
		override := &domain.Perspective{UserID: 42, Role: domain.RoleStudent}
		r = r.WithContext(context.WithValue(r.Context(), PerspectiveCtx, override))
	}
	return r
}

func TestReadOnlyInPerspective(t *testing.T) {
	h := &Handler{}

	tests := []struct {
		name        string
		method      string
		path        string
		active      bool
		wantBlocked bool
	}{
		{name: "覆盖未激活时写操作放行", method: http.MethodPost, path: "/users", active: false},
		{name: "覆盖激活时读操作放行", method: http.MethodGet, path: "/dashboard", active: true},
		{name: "覆盖激活时写操作被拦截", method: http.MethodPost, path: "/users", active: true, wantBlocked: true},
		{name: "覆盖激活时更新操作被拦截", method: http.MethodPatch, path: "/my-info/password", active: true, wantBlocked: true},
		{name: "覆盖激活时删除操作被拦截", method: http.MethodDelete, path: "/users/1", active: true, wantBlocked: true},
		{name: "覆盖激活时屏蔽公告也被拦截", method: http.MethodPost, path: "/announcements/1/dismiss", active: true, wantBlocked: true},
		{name: "退出视角本身始终放行", method: http.MethodDelete, path: "/perspective", active: true},
		{name: "带尾部斜杠的退出视角也放行", method: http.MethodDelete, path: "/perspective/", active: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			rec := httptest.NewRecorder()
			h.readOnlyInPerspective(next).ServeHTTP(rec, perspectiveRequest(tt.method, tt.path, tt.active))

			if tt.wantBlocked {
				assert.False(t, nextCalled)

				var resp Response
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.False(t, resp.Success)
			} else {
				assert.True(t, nextCalled)
			}
		})
	}
}

// 用户详情和用户列表一样只对管理类角色开放，普通角色不能按 ID 枚举他人信息
func TestRequiredRoleAdminClass(t *testing.T) {
	h := &Handler{}

	tests := []struct {
		name          string
		effectiveRole domain.Role
		wantAllowed   bool
	}{
		{name: "超级管理员放行", effectiveRole: domain.RoleSuperAdmin, wantAllowed: true},
		{name: "平台管理员放行", effectiveRole: domain.RolePlatformAdmin, wantAllowed: true},
		{name: "管理员放行", effectiveRole: domain.RoleAdmin, wantAllowed: true},
		{name: "学生被拦截", effectiveRole: domain.RoleStudent},
		{name: "教务被拦截", effectiveRole: domain.RoleRegistrar},
		{name: "客服被拦截", effectiveRole: domain.RoleSupport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			r := httptest.NewRequest(http.MethodGet, "/users/1", nil)
			r = r.WithContext(context.WithValue(r.Context(), EffectiveRoleCtxKey, tt.effectiveRole))

			rec := httptest.NewRecorder()
			h.RequiredRole(domain.AdminClassRoles)(next).ServeHTTP(rec, r)

			if tt.wantAllowed {
				assert.True(t, nextCalled)
			} else {
				assert.False(t, nextCalled)

				var resp Response
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.False(t, resp.Success)
			}
		})
	}
}
