package handler

type ContextKey string

var (
	RoleCtxKey          ContextKey = "role"
	SubCtxKey           ContextKey = "sub"
	EffectiveRoleCtxKey ContextKey = "effectiveRole"
	PerspectiveCtx      ContextKey = "perspective"
	MyInfoCtx           ContextKey = "myInfo"
	UserInfoCtx         ContextKey = "userInfo"
	CourseCtx           ContextKey = "course"
	AnnouncementCtx     ContextKey = "announcement"
	ApplicationCtx      ContextKey = "application"
)
