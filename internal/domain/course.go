package domain

import "time"

type Course struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	// 学费以卢比为单位，创建支付链接时再转换为最小货币单位
	Fee       int64     `json:"fee"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
