package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDashboardCoversAllRoles(t *testing.T) {
	require.NoError(t, ValidateDashboardTable())

	for _, role := range AllRoles {
		view := ResolveDashboard(role)
		assert.NotEqual(t, ViewAccessDenied, view, "角色 %s 不应该落到拒绝访问视图", role)
	}
}

func TestResolveDashboardUnknownRole(t *testing.T) {
	// 枚举之外的角色一律进入拒绝访问视图，绝不能落到任何特权视图
	tests := []Role{
		"",
		"root",
		"Student",
		"ADMIN",
		"superadmin ",
		"ghost_role",
	}

	for _, role := range tests {
		assert.Equal(t, ViewAccessDenied, ResolveDashboard(role), "角色 %q", role)
	}
}

func TestResolveDashboardAliases(t *testing.T) {
	// 共用视图的角色必须是显式的表项
	assert.Equal(t, ResolveDashboard(RoleStaff), ResolveDashboard(RoleSupport))
	assert.Equal(t, ResolveDashboard(RoleFinance), ResolveDashboard(RoleAccounts))
	assert.Equal(t, ResolveDashboard(RoleAdmissionAdmin), ResolveDashboard(RoleAdmissionStaff))
	assert.Equal(t, ResolveDashboard(RoleAdmin), ResolveDashboard(RolePlatformAdmin))

	// 超级管理员的控制台不和普通管理员共用
	assert.NotEqual(t, ResolveDashboard(RoleAdmin), ResolveDashboard(RoleSuperAdmin))
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range AllRoles {
		assert.True(t, role.IsValid())
	}
	assert.False(t, Role("ghost_role").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRoleIsAdminClass(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsAdminClass())
	assert.True(t, RolePlatformAdmin.IsAdminClass())
	assert.True(t, RoleAdmin.IsAdminClass())

	assert.False(t, RoleStudent.IsAdminClass())
	assert.False(t, RoleRegistrar.IsAdminClass())
	assert.False(t, RoleAuditor.IsAdminClass())
}
