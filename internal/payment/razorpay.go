package payment

import (
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/campusone-dev/digital-campus/backend/internal/config"
)

// ErrNotConfigured 表示 Razorpay 的密钥对没有配置
// 支付相关接口需要把这个错误映射为显式的配置错误响应，而不是静默跳过
var ErrNotConfigured = errors.New("未配置 Razorpay 密钥")

// 链接状态是 Razorpay 侧的枚举，回调里会原样带回来
const (
	LinkStatusPaid    = "paid"
	LinkStatusExpired = "expired"
)

type Client struct {
	cfg *config.Config
	rzp *razorpay.Client
}

func NewClient(cfg *config.Config) *Client {
	c := &Client{cfg: cfg}
	if cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		c.rzp = razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	}
	return c
}

func (c *Client) Configured() bool {
	return c.rzp != nil
}

type LinkParams struct {
	Amount        int64 // 以卢比为单位，这里统一转换为派士
	Currency      string
	Description   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Reference     string
	CallbackURL   string // 覆盖配置中的默认回调地址
}

type Link struct {
	ID       string
	URL      string
	Amount   int64
	Currency string
	Status   string
}

// linkRequestData 组装创建支付链接的请求体
// 金额转换为最小货币单位，回调地址优先用请求里指定的，其次才是配置的默认值
func (c *Client) linkRequestData(params *LinkParams) map[string]interface{} {
	currency := params.Currency
	if currency == "" {
		currency = "INR"
	}

	// Razorpay 的金额以最小货币单位计
	amount := params.Amount * 100

	data := map[string]interface{}{
		"amount":      amount,
		"currency":    currency,
		"description": params.Description,
		"customer": map[string]interface{}{
			"name":    params.CustomerName,
			"email":   params.CustomerEmail,
			"contact": params.CustomerPhone,
		},
		"reference_id": params.Reference,
		"expire_by":    time.Now().Add(time.Duration(c.cfg.Razorpay.LinkExpiry) * 24 * time.Hour).Unix(),
	}

	callbackURL := params.CallbackURL
	if callbackURL == "" {
		callbackURL = c.cfg.Razorpay.CallbackURL
	}
	if callbackURL != "" {
		data["callback_url"] = callbackURL
		data["callback_method"] = "get"
	}

	return data
}

// CreateLink 创建一个支付链接，过期时间固定由处理器侧执行
func (c *Client) CreateLink(params *LinkParams) (*Link, error) {
	if c.rzp == nil {
		return nil, ErrNotConfigured
	}

	data := c.linkRequestData(params)
	amount := data["amount"].(int64)
	currency := data["currency"].(string)

	body, err := c.rzp.PaymentLink.Create(data, nil)
	if err != nil {
		return nil, err
	}

	id, ok := body["id"].(string)
	if !ok {
		return nil, fmt.Errorf("支付链接响应中缺少 id: %v", body)
	}
	url, ok := body["short_url"].(string)
	if !ok {
		return nil, fmt.Errorf("支付链接响应中缺少 short_url: %v", body)
	}
	status, _ := body["status"].(string)

	return &Link{
		ID:       id,
		URL:      url,
		Amount:   amount,
		Currency: currency,
		Status:   status,
	}, nil
}
