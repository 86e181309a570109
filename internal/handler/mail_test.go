package handler

import (
	"testing"

	"github.com/campusone-dev/digital-campus/backend/internal/config"
	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

func TestSendMailRequestValidation(t *testing.T) {
	h, err := NewHandler(&config.Config{}, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("创建 handler 失败: %v", err)
	}

	tests := []struct {
		name      string
		req       sendMailRequest
		wantValid bool
	}{
		{
			name: "单个收件人",
			req: sendMailRequest{
				To:       []string{"student@example.com"},
				Subject:  "开学通知",
				TextBody: "正文",
			},
			wantValid: true,
		},
		{
			name: "多个收件人",
			req: sendMailRequest{
				To:       []string{"a@example.com", "b@example.com", "c@example.com"},
				Subject:  "开学通知",
				TextBody: "正文",
			},
			wantValid: true,
		},
		{
			name: "带抄送密送和附件",
			req: sendMailRequest{
				To:       []string{"a@example.com"},
				Subject:  "成绩单",
				HTMLBody: "<p>见附件</p>",
				Cc:       []string{"cc@example.com"},
				Bcc:      []string{"bcc@example.com"},
				Attachments: []domain.MailAttachment{
					{Filename: "成绩单.pdf", Content: []byte("%PDF-1.4")},
				},
			},
			wantValid: true,
		},
		{
			name: "缺少收件人",
			req: sendMailRequest{
				Subject:  "开学通知",
				TextBody: "正文",
			},
			wantValid: false,
		},
		{
			name: "收件人列表为空",
			req: sendMailRequest{
				To:       []string{},
				Subject:  "开学通知",
				TextBody: "正文",
			},
			wantValid: false,
		},
		{
			name: "收件人不是合法邮箱",
			req: sendMailRequest{
				To:       []string{"not-an-email"},
				Subject:  "开学通知",
				TextBody: "正文",
			},
			wantValid: false,
		},
		{
			name: "抄送不是合法邮箱",
			req: sendMailRequest{
				To:       []string{"a@example.com"},
				Subject:  "开学通知",
				TextBody: "正文",
				Cc:       []string{"bad"},
			},
			wantValid: false,
		},
		{
			name: "附件缺少文件名",
			req: sendMailRequest{
				To:       []string{"a@example.com"},
				Subject:  "成绩单",
				TextBody: "正文",
				Attachments: []domain.MailAttachment{
					{Content: []byte("data")},
				},
			},
			wantValid: false,
		},
		{
			name: "缺少主题",
			req: sendMailRequest{
				To:       []string{"a@example.com"},
				TextBody: "正文",
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.validate.Struct(tt.req)
			if tt.wantValid && err != nil {
				t.Errorf("期望校验通过，得到错误: %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Error("期望校验失败，却通过了")
			}
		})
	}
}
