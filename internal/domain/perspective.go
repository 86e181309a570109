package domain

// Perspective 是管理员进入视角模式时保存的目标用户快照
// 只存在于会话的生命周期内，不落库，每个会话最多一个
type Perspective struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func NewPerspective(target *User) *Perspective {
	return &Perspective{
		UserID:   target.ID,
		Username: target.Username,
		FullName: target.FullName,
		Email:    target.Email,
		Role:     target.Role,
	}
}

// EffectiveRole 计算当前生效角色：视角覆盖存在时取覆盖的角色，否则取本人角色
// 所有下游的鉴权和路由决策都只看这个结果
func EffectiveRole(own Role, p *Perspective) Role {
	if p != nil {
		return p.Role
	}
	return own
}
