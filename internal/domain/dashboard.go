package domain

import "fmt"

type DashboardView string

const (
	ViewSuperAdminConsole DashboardView = "superadmin_console"
	ViewAdminConsole      DashboardView = "admin_console"
	ViewRegistrarDesk     DashboardView = "registrar_desk"
	ViewHRDesk            DashboardView = "hr_desk"
	ViewFinanceDesk       DashboardView = "finance_desk"
	ViewComplianceDesk    DashboardView = "compliance_desk"
	ViewAdmissionsDesk    DashboardView = "admissions_desk"
	ViewAgentPortal       DashboardView = "agent_portal"
	ViewMasterAgentPortal DashboardView = "master_agent_portal"
	ViewStudentPortal     DashboardView = "student_portal"
	ViewAlumniPortal      DashboardView = "alumni_portal"
	ViewStaffPortal       DashboardView = "staff_portal"
	ViewMarketingDesk     DashboardView = "marketing_desk"
	ViewAuditorDesk       DashboardView = "auditor_desk"
	ViewFacultyPortal     DashboardView = "faculty_portal"
	ViewDelegatorDesk     DashboardView = "delegator_desk"
	ViewAccessDenied      DashboardView = "access_denied"
)

// roleDashboards 是角色到仪表盘的查表映射
// 多个角色共用同一个视图时必须在这里写成显式的表项，方便审计
var roleDashboards = map[Role]DashboardView{
	RoleSuperAdmin:      ViewSuperAdminConsole,
	RolePlatformAdmin:   ViewAdminConsole,
	RoleAdmin:           ViewAdminConsole,
	RoleRegistrar:       ViewRegistrarDesk,
	RoleHRAdmin:         ViewHRDesk,
	RoleFinance:         ViewFinanceDesk,
	RoleAccounts:        ViewFinanceDesk,
	RoleComplianceAdmin: ViewComplianceDesk,
	RoleAdmissionAdmin:  ViewAdmissionsDesk,
	RoleAdmissionStaff:  ViewAdmissionsDesk,
	RoleAdmissionAgent:  ViewAgentPortal,
	RoleMasterAgent:     ViewMasterAgentPortal,
	RoleStudent:         ViewStudentPortal,
	RoleAlumni:          ViewAlumniPortal,
	RoleSupport:         ViewStaffPortal,
	RoleMarketingAdmin:  ViewMarketingDesk,
	RoleAuditor:         ViewAuditorDesk,
	RoleFaculty:         ViewFacultyPortal,
	RoleStaff:           ViewStaffPortal,
	RoleDelegator:       ViewDelegatorDesk,
}

// ResolveDashboard 把生效角色解析为唯一的仪表盘视图
// 枚举之外的角色一律进入拒绝访问视图，绝不能落到任何特权视图上
func ResolveDashboard(role Role) DashboardView {
	view, ok := roleDashboards[role]
	if !ok {
		return ViewAccessDenied
	}
	return view
}

// ValidateDashboardTable 在启动时校验映射表和角色枚举是否一致
func ValidateDashboardTable() error {
	for _, role := range AllRoles {
		if _, ok := roleDashboards[role]; !ok {
			return fmt.Errorf("角色 %s 没有对应的仪表盘表项", role)
		}
	}
	for role := range roleDashboards {
		if !role.IsValid() {
			return fmt.Errorf("仪表盘表项中存在未知角色 %s", role)
		}
	}
	return nil
}
