package domain

import (
	"errors"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

type ApplicationStatus string

const (
	ApplicationStatusSubmitted      ApplicationStatus = "submitted"
	ApplicationStatusPendingPayment ApplicationStatus = "pending_payment"
	ApplicationStatusEnrolled       ApplicationStatus = "enrolled"
	// 支付链接过期后申请人仍然可以重新发起支付
	ApplicationStatusPaymentExpired ApplicationStatus = "payment_expired"
)

var (
	// ErrPaymentNotConfirmed 表示回调既没有携带已支付标志也没有携带支付单号
	ErrPaymentNotConfirmed = errors.New("支付未确认")
	// ErrPaymentCodeExhausted 表示生成唯一支付码的重试次数已用尽
	ErrPaymentCodeExhausted = errors.New("无法生成唯一的支付码")
)

type Application struct {
	ID                 int64             `json:"id"`
	Reference          string            `json:"reference"`
	ApplicantName      string            `json:"applicantName"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	CourseID           int64             `json:"courseId"`
	Status             ApplicationStatus `json:"status"`
	PaymentStatus      PaymentStatus     `json:"paymentStatus"`
	PaymentCode        *string           `json:"paymentCode"`
	RazorpayPaymentID  *string           `json:"razorpayPaymentId"`
	PaymentLinkID      *string           `json:"paymentLinkId"`
	PaymentCompletedAt *time.Time        `json:"paymentCompletedAt"`
	CreatedAt          time.Time         `json:"createdAt"`
	Version            int32             `json:"-"`
}

// CheckConfirmable 是支付确认的纯判定部分
// 返回 (是否为幂等重放, 错误)，真正的状态转移放在仓库层的事务里完成
func (a *Application) CheckConfirmable(paid bool, paymentID string) (bool, error) {
	// 已完成的申请直接按幂等重放处理，原有支付码必须原样返回
	if a.PaymentStatus == PaymentStatusCompleted {
		return true, nil
	}

	if !paid && paymentID == "" {
		return false, ErrPaymentNotConfirmed
	}

	return false, nil
}
