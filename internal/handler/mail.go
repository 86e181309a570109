package handler

import (
	"errors"
	"net/http"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

type sendMailRequest struct {
	To          []string                `json:"to" validate:"required,min=1,dive,email"`
	Subject     string                  `json:"subject" validate:"required"`
	TextBody    string                  `json:"textBody"`
	HTMLBody    string                  `json:"htmlBody"`
	Cc          []string                `json:"cc" validate:"omitempty,dive,email"`
	Bcc         []string                `json:"bcc" validate:"omitempty,dive,email"`
	Attachments []domain.MailAttachment `json:"attachments" validate:"omitempty,dive"`
}

// SendMail 把一封自定义邮件投递到消息队列，由 mail worker 发送
// 附件内容在 JSON 里以 base64 编码传输
func (h *Handler) SendMail(w http.ResponseWriter, r *http.Request) {
	var req sendMailRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TextBody == "" && req.HTMLBody == "" {
		h.badRequest(w, r, errors.New("正文不能为空"))
		return
	}

	mailMessage := domain.MailMessage{
		Type: "custom",
		To:   req.To[0],
		Data: domain.CustomMailData{
			To:          req.To,
			Subject:     req.Subject,
			TextBody:    req.TextBody,
			HTMLBody:    req.HTMLBody,
			Cc:          req.Cc,
			Bcc:         req.Bcc,
			Attachments: req.Attachments,
		},
	}

	if err := h.publishMailMessage(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "邮件已进入发送队列", nil)
}
