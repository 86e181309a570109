package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfirmable(t *testing.T) {
	paymentCode := "PAY-ABCD-123456"

	tests := []struct {
		name          string
		paymentStatus PaymentStatus
		paymentCode   *string
		paid          bool
		paymentID     string
		wantReplay    bool
		wantErr       error
	}{
		{
			name:          "携带已支付标志的首次确认",
			paymentStatus: PaymentStatusPending,
			paid:          true,
		},
		{
			name:          "只携带支付单号的首次确认",
			paymentStatus: PaymentStatusPending,
			paymentID:     "pay_N1a2b3c4",
		},
		{
			name:          "既没有已支付标志也没有支付单号",
			paymentStatus: PaymentStatusPending,
			wantErr:       ErrPaymentNotConfirmed,
		},
		{
			name:          "已完成申请的重复回调是幂等重放",
			paymentStatus: PaymentStatusCompleted,
			paymentCode:   &paymentCode,
			paid:          true,
			wantReplay:    true,
		},
		{
			name:          "已完成的申请即使回调参数不合法也按重放处理",
			paymentStatus: PaymentStatusCompleted,
			paymentCode:   &paymentCode,
			wantReplay:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			application := &Application{
				PaymentStatus: tt.paymentStatus,
				PaymentCode:   tt.paymentCode,
			}

			replay, err := application.CheckConfirmable(tt.paid, tt.paymentID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				// 校验失败时申请的状态不能被动过
				assert.Equal(t, tt.paymentStatus, application.PaymentStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantReplay, replay)
			if tt.wantReplay {
				// 幂等重放必须原样保留已有的支付码
				require.NotNil(t, application.PaymentCode)
				assert.Equal(t, paymentCode, *application.PaymentCode)
			}
		})
	}
}
