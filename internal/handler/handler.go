package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/campusone-dev/digital-campus/backend/internal/config"
	"github.com/campusone-dev/digital-campus/backend/internal/domain"
	"github.com/campusone-dev/digital-campus/backend/internal/payment"
	"github.com/campusone-dev/digital-campus/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	payments    *payment.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, payments *payment.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		payments:    payments,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 公开的报名入口，报名表单提交时还没有账户
	h.Mux.Post("/applications", h.SubmitApplication)

	// 支付处理器的回调接口是机器对机器的，使用真实的 HTTP 状态码而不是信封里的 success 标志
	h.Mux.Route("/payments", func(r chi.Router) {
		r.Post("/link", h.CreatePaymentLink)
		r.Post("/confirm", h.ConfirmPayment)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.perspective)
		// 视角模式下的只读限制在这里统一执行，不依赖各个接口自觉
		r.Use(h.readOnlyInPerspective)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Get("/dashboard", h.GetDashboard)

		r.Route("/perspective", func(r chi.Router) {
			r.Get("/", h.GetPerspective)
			r.With(h.RequiredRole(domain.AdminClassRoles)).Post("/", h.EnterPerspective)
			r.Delete("/", h.ExitPerspective)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole(domain.AdminClassRoles)).Post("/", h.CreateUser)
			r.With(h.RequiredRole(domain.AdminClassRoles)).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.With(h.RequiredRole(domain.AdminClassRoles)).Get("/", h.GetUserInfo)
				r.With(h.preventOperateProtectedAccount).With(h.RequiredRole(domain.AdminClassRoles)).Patch("/", h.UpdateUser)
				r.With(h.preventOperateProtectedAccount).With(h.preventSelfDeletion).With(h.RequiredRole(domain.AdminClassRoles)).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole(domain.AdminClassRoles)).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.GetAllCourses)
			r.With(h.RequiredRole(courseAdminRoles)).Post("/", h.CreateCourse)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.courseInfo)
				r.Get("/", h.GetCourse)
				r.With(h.RequiredRole(courseAdminRoles)).Patch("/", h.UpdateCourse)
			})
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", h.GetVisibleAnnouncements)
			r.With(h.RequiredRole(announcementAdminRoles)).Get("/all", h.GetAllAnnouncements)
			r.With(h.RequiredRole(announcementAdminRoles)).Post("/", h.CreateAnnouncement)
			r.Delete("/dismissals", h.ClearAnnouncementDismissals)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.announcementInfo)
				r.Post("/dismiss", h.DismissAnnouncement)
				r.With(h.RequiredRole(announcementAdminRoles)).Patch("/", h.UpdateAnnouncement)
				r.With(h.RequiredRole(announcementAdminRoles)).Delete("/", h.DeleteAnnouncement)
			})
		})

		r.Route("/admissions/applications", func(r chi.Router) {
			r.Use(h.RequiredRole(admissionViewRoles))
			r.Get("/", h.GetAllApplications)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.applicationInfo)
				r.Get("/", h.GetApplication)
			})
		})

		r.With(h.RequiredRole(mailSendRoles)).Post("/mail/send", h.SendMail)
	})
}

// 各个模块的角色白名单，统一放在这里方便审计
var (
	courseAdminRoles = append([]domain.Role{domain.RoleRegistrar}, domain.AdminClassRoles...)

	announcementAdminRoles = append([]domain.Role{domain.RoleMarketingAdmin}, domain.AdminClassRoles...)

	admissionViewRoles = append([]domain.Role{
		domain.RoleAdmissionAdmin,
		domain.RoleAdmissionStaff,
		domain.RoleRegistrar,
		domain.RoleAuditor,
	}, domain.AdminClassRoles...)

	mailSendRoles = append([]domain.Role{domain.RoleSupport, domain.RoleMarketingAdmin}, domain.AdminClassRoles...)
)

// publishMailMessage 把邮件消息序列化后发送到消息队列，由 mail worker 消费
func (h *Handler) publishMailMessage(message domain.MailMessage) error {
	mailData, err := json.Marshal(message)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
