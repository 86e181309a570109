package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveRole(t *testing.T) {
	target := &User{
		ID:       42,
		Username: "wangwei1",
		FullName: "王伟",
		Email:    "wangwei1@campus.example.com",
		Role:     RoleStudent,
	}

	// 没有视角覆盖时生效角色就是本人角色
	assert.Equal(t, RoleAdmin, EffectiveRole(RoleAdmin, nil))

	// 覆盖激活时生效角色是目标用户的角色
	override := NewPerspective(target)
	assert.Equal(t, RoleStudent, EffectiveRole(RoleAdmin, override))

	// 管理员以学生视角查看时，仪表盘解析到学生门户
	assert.Equal(t, ViewStudentPortal, ResolveDashboard(EffectiveRole(RoleAdmin, override)))

	// 退出视角后无条件回到本人角色，与之前的覆盖状态无关
	assert.Equal(t, RoleAdmin, EffectiveRole(RoleAdmin, nil))
	assert.Equal(t, ViewAdminConsole, ResolveDashboard(EffectiveRole(RoleAdmin, nil)))
}

func TestNewPerspectiveSnapshot(t *testing.T) {
	target := &User{
		ID:       7,
		Username: "lina3",
		FullName: "李娜",
		Email:    "lina3@campus.example.com",
		Role:     RoleFaculty,
	}

	p := NewPerspective(target)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, "lina3", p.Username)
	assert.Equal(t, "李娜", p.FullName)
	assert.Equal(t, "lina3@campus.example.com", p.Email)
	assert.Equal(t, RoleFaculty, p.Role)
}
