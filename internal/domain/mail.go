package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type AccountCreatedMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type PaymentReceiptMailData struct {
	ApplicantName string `json:"applicantName"`
	CourseName    string `json:"courseName"`
	PaymentCode   string `json:"paymentCode"`
	Amount        int64  `json:"amount"`
}

// MailAttachment 的内容在 JSON 序列化时自动转为 base64
type MailAttachment struct {
	Filename string `json:"filename" validate:"required"`
	Content  []byte `json:"content" validate:"required"`
}

type CustomMailData struct {
	To          []string         `json:"to"`
	Subject     string           `json:"subject"`
	TextBody    string           `json:"textBody"`
	HTMLBody    string           `json:"htmlBody"`
	Cc          []string         `json:"cc"`
	Bcc         []string         `json:"bcc"`
	Attachments []MailAttachment `json:"attachments"`
}

// SentMail 是 mail worker 成功投递后落库的发送记录
type SentMail struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	To      string `json:"to"`
	Subject string `json:"subject"`
}
