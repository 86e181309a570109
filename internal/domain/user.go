package domain

import (
	"time"
)

type Role string

// 角色是一个封闭枚举，数据库和前端都依赖这些字符串字面量
const (
	RoleSuperAdmin      Role = "superadmin"
	RolePlatformAdmin   Role = "platform_admin"
	RoleAdmin           Role = "admin"
	RoleRegistrar       Role = "registrar"
	RoleHRAdmin         Role = "hr_admin"
	RoleFinance         Role = "finance"
	RoleAccounts        Role = "accounts"
	RoleComplianceAdmin Role = "compliance_admin"
	RoleAdmissionAdmin  Role = "admission_admin"
	RoleAdmissionStaff  Role = "admission_staff"
	RoleAdmissionAgent  Role = "admission_agent"
	RoleMasterAgent     Role = "master_agent"
	RoleStudent         Role = "student"
	RoleAlumni          Role = "alumni"
	RoleSupport         Role = "support"
	RoleMarketingAdmin  Role = "marketing_admin"
	RoleAuditor         Role = "auditor"
	RoleFaculty         Role = "faculty"
	RoleStaff           Role = "staff"
	RoleDelegator       Role = "delegator"
)

var AllRoles = []Role{
	RoleSuperAdmin,
	RolePlatformAdmin,
	RoleAdmin,
	RoleRegistrar,
	RoleHRAdmin,
	RoleFinance,
	RoleAccounts,
	RoleComplianceAdmin,
	RoleAdmissionAdmin,
	RoleAdmissionStaff,
	RoleAdmissionAgent,
	RoleMasterAgent,
	RoleStudent,
	RoleAlumni,
	RoleSupport,
	RoleMarketingAdmin,
	RoleAuditor,
	RoleFaculty,
	RoleStaff,
	RoleDelegator,
}

// 允许进入视角模式的管理类角色
var AdminClassRoles = []Role{
	RoleSuperAdmin,
	RolePlatformAdmin,
	RoleAdmin,
}

func (r Role) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) IsAdminClass() bool {
	for _, role := range AdminClassRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// StudentProfile 是学生账户在创建时同一事务内生成的领域记录
type StudentProfile struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	StudentNumber string    `json:"studentNumber"`
	CourseID      *int64    `json:"courseId"`
	CreatedAt     time.Time `json:"createdAt"`
}
