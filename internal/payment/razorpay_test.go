package payment

import (
	"testing"

	"github.com/campusone-dev/digital-campus/backend/internal/config"
)

func TestLinkRequestData(t *testing.T) {
	cfg := &config.Config{}
	cfg.Razorpay.LinkExpiry = 7
	cfg.Razorpay.CallbackURL = "https://campus.example.com/payments/confirm"

	c := NewClient(cfg)

	tests := []struct {
		name         string
		params       *LinkParams
		wantAmount   int64
		wantCurrency string
		wantCallback string
	}{
		{
			name:         "金额换算为最小货币单位",
			params:       &LinkParams{Amount: 45000},
			wantAmount:   4500000,
			wantCurrency: "INR",
			wantCallback: "https://campus.example.com/payments/confirm",
		},
		{
			name:         "显式币种原样保留",
			params:       &LinkParams{Amount: 100, Currency: "USD"},
			wantAmount:   10000,
			wantCurrency: "USD",
			wantCallback: "https://campus.example.com/payments/confirm",
		},
		{
			name:         "请求里的回调地址优先于配置",
			params:       &LinkParams{Amount: 100, CallbackURL: "https://other.example.com/cb"},
			wantAmount:   10000,
			wantCurrency: "INR",
			wantCallback: "https://other.example.com/cb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := c.linkRequestData(tt.params)

			if got := data["amount"].(int64); got != tt.wantAmount {
				t.Errorf("amount = %d，期望 %d", got, tt.wantAmount)
			}
			if got := data["currency"].(string); got != tt.wantCurrency {
				t.Errorf("currency = %s，期望 %s", got, tt.wantCurrency)
			}
			if got := data["callback_url"].(string); got != tt.wantCallback {
				t.Errorf("callback_url = %s，期望 %s", got, tt.wantCallback)
			}
			if got := data["callback_method"].(string); got != "get" {
				t.Errorf("callback_method = %s，期望 get", got)
			}
		})
	}
}

// 回调地址两边都没配置时不应出现在请求体里
func TestLinkRequestDataWithoutCallback(t *testing.T) {
	cfg := &config.Config{}
	cfg.Razorpay.LinkExpiry = 7

	c := NewClient(cfg)
	data := c.linkRequestData(&LinkParams{Amount: 100})

	if _, ok := data["callback_url"]; ok {
		t.Error("未配置回调地址时不应设置 callback_url")
	}
	if _, ok := data["callback_method"]; ok {
		t.Error("未配置回调地址时不应设置 callback_method")
	}
}
