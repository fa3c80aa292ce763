package model

import "time"

// Payment ghi lại mỗi lần phát hành gateway order cho một đơn.
// Đơn có thể có nhiều Payment nếu gateway order cũ hết hạn và phải phát hành lại.
type Payment struct {
	DTO
	OrderId        uint      `gorm:"not null;index" json:"orderId"`
	Amount         int64     `gorm:"not null" json:"amount"`
	Currency       string    `gorm:"size:8;not null" json:"currency"`
	GatewayOrderId string    `gorm:"uniqueIndex;size:64;not null" json:"gatewayOrderId"`
	Status         string    `gorm:"size:20;default:CREATED" json:"status"`
	ExpiresAt      time.Time `json:"expiresAt"`

	Order Order `gorm:"foreignKey:OrderId" json:"-"`
}

type VerifyPaymentInput struct {
	OrderId          uint   `json:"orderId" validate:"required,gt=0"`
	GatewayOrderId   string `json:"gatewayOrderId" validate:"required"`
	GatewayPaymentId string `json:"gatewayPaymentId" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
}
