package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
	"github.com/campusone-dev/digital-campus/backend/internal/payment"
)

// CreatePaymentLink 为一笔申请创建 Razorpay 支付链接
// 金额未指定时取课程学费，链接的过期时间固定由处理器侧执行
func (h *Handler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount        int64  `json:"amount"`
		Currency      string `json:"currency"`
		Description   string `json:"description" validate:"required"`
		CustomerName  string `json:"customer_name" validate:"required"`
		CustomerEmail string `json:"customer_email" validate:"required,email"`
		CustomerPhone string `json:"customer_phone"`
		CallbackURL   string `json:"callback_url" validate:"omitempty,url"`
		CourseID      *int64 `json:"course_id"`
		ApplicationID *int64 `json:"application_id"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.statusError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.statusError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// 缺失密钥配置时返回显式的配置错误，而不是静默跳过
	if !h.payments.Configured() {
		slog.Error("未配置 Razorpay 密钥，无法创建支付链接")
		h.statusError(w, r, http.StatusInternalServerError, "支付服务未配置")
		return
	}

	amount := req.Amount
	if amount <= 0 {
		if req.CourseID == nil {
			h.statusError(w, r, http.StatusBadRequest, "金额和课程至少要提供一个")
			return
		}
		course, err := h.repository.GetCourseByID(*req.CourseID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.statusError(w, r, http.StatusNotFound, "课程不存在")
			default:
				h.statusError(w, r, http.StatusInternalServerError, "服务器内部错误")
			}
			return
		}
		amount = course.Fee
	}

	var application *domain.Application
	if req.ApplicationID != nil {
		var err error
		application, err = h.repository.GetApplicationByID(*req.ApplicationID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.statusError(w, r, http.StatusNotFound, "申请不存在")
			default:
				h.statusError(w, r, http.StatusInternalServerError, "服务器内部错误")
			}
			return
		}
	}

	params := &payment.LinkParams{
		Amount:        amount,
		Currency:      req.Currency,
		Description:   req.Description,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		CallbackURL:   req.CallbackURL,
	}
	if application != nil {
		params.Reference = application.Reference
	}

	link, err := h.payments.CreateLink(params)
	if err != nil {
		// 不把支付服务商的错误细节透给调用方
		slog.Error("创建支付链接失败", "error", err)
		h.statusError(w, r, http.StatusInternalServerError, "创建支付链接失败")
		return
	}

	if application != nil {
		if err := h.repository.SetApplicationPaymentLink(application, link.ID); err != nil {
			h.statusError(w, r, http.StatusInternalServerError, "服务器内部错误")
			return
		}
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"success":          true,
		"payment_link_id":  link.ID,
		"payment_link_url": link.URL,
		"amount":           link.Amount,
		"currency":         link.Currency,
		"status":           link.Status,
	})
}

// ConfirmPayment 是支付处理器的确认回调
// 同一笔申请的重复回调是幂等重放：原有支付码原样返回，不再发生任何转移
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicationID         int64  `json:"application_id" validate:"required"`
		RazorpayPaymentID     string `json:"razorpay_payment_id"`
		RazorpayPaymentStatus string `json:"razorpay_payment_link_status"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.statusError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.statusError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	application, err := h.repository.GetApplicationByID(req.ApplicationID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.statusError(w, r, http.StatusNotFound, "申请不存在")
		default:
			h.statusError(w, r, http.StatusInternalServerError, "服务器内部错误")
		}
		return
	}

	// 链接过期的回调只做标记，申请人可以重新发起支付
	if req.RazorpayPaymentStatus == payment.LinkStatusExpired && req.RazorpayPaymentID == "" {
		if err := h.repository.MarkApplicationPaymentExpired(application.ID); err != nil {
			h.statusError(w, r, http.StatusInternalServerError, "服务器内部错误")
			return
		}
		h.writeJSON(w, r, http.StatusOK, map[string]any{
			"success": true,
			"status":  domain.ApplicationStatusPaymentExpired,
		})
		return
	}

	paid := req.RazorpayPaymentStatus == payment.LinkStatusPaid
	if _, err := application.CheckConfirmable(paid, req.RazorpayPaymentID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentNotConfirmed):
			h.statusError(w, r, http.StatusBadRequest, "支付未确认")
		default:
			h.statusError(w, r, http.StatusInternalServerError, "服务器内部错误")
		}
		return
	}

	application, alreadyCompleted, err := h.repository.ConfirmApplicationPayment(req.ApplicationID, req.RazorpayPaymentID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.statusError(w, r, http.StatusNotFound, "申请不存在")
		case errors.Is(err, domain.ErrPaymentCodeExhausted):
			slog.Error("支付码生成失败", "applicationID", req.ApplicationID)
			h.statusError(w, r, http.StatusInternalServerError, "支付码生成失败")
		default:
			h.statusError(w, r, http.StatusInternalServerError, "服务器内部错误")
		}
		return
	}

	course, err := h.repository.GetCourseByID(application.CourseID)
	if err != nil {
		h.statusError(w, r, http.StatusInternalServerError, "服务器内部错误")
		return
	}

	// 首次确认成功后发送缴费回执，转移已经提交，投递失败只记录日志
	if !alreadyCompleted {
		mailMessage := domain.MailMessage{
			Type: "payment_receipt",
			To:   application.Email,
			Data: domain.PaymentReceiptMailData{
				ApplicantName: application.ApplicantName,
				CourseName:    course.Name,
				PaymentCode:   *application.PaymentCode,
				Amount:        course.Fee,
			},
		}
		if err := h.publishMailMessage(mailMessage); err != nil {
			slog.Error("缴费回执投递失败", "applicationID", application.ID, "error", err)
		}
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"success":           true,
		"payment_code":      *application.PaymentCode,
		"student_name":      application.ApplicantName,
		"course_name":       course.Name,
		"already_completed": alreadyCompleted,
	})
}
