package model

import "time"

// Trạng thái vòng đời đơn hàng
const (
	OrderStatusPending        = "PENDING"
	OrderStatusPaymentPending = "PAYMENT_PENDING"
	OrderStatusPaid           = "PAID"
	OrderStatusConfirmed      = "CONFIRMED"
	OrderStatusPreparing      = "PREPARING"
	OrderStatusReady          = "READY"
	OrderStatusCompleted      = "COMPLETED"
	OrderStatusCancelled      = "CANCELLED"
)

// Trạng thái thanh toán (độc lập với vòng đời đơn)
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusCreated  = "CREATED"
	PaymentStatusCaptured = "CAPTURED"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

const (
	FulfillmentPickup   = "PICKUP"
	FulfillmentDelivery = "DELIVERY"
	FulfillmentPostal   = "POSTAL" // dòng hộp quà gửi bưu điện, bị giới hạn theo đợt
)

const (
	ItemTypeRegular = "REGULAR"
	ItemTypePostal  = "POSTAL"
)

type Order struct {
	DTO
	PublicCode       string     `gorm:"unique;size:20" json:"publicCode"` // Mã đơn hàng công khai (ORD-XXXXXX)
	CustomerName     string     `json:"customerName"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	Fulfillment      string     `gorm:"size:20;not null" json:"fulfillment"` // PICKUP, DELIVERY, POSTAL
	Subtotal         int64      `json:"subtotal"`
	DeliveryFee      *int64     `json:"deliveryFee,omitempty"` // chỉ có với đơn giao hàng / bưu điện
	TotalAmount      int64      `json:"totalAmount"`           // Subtotal + DeliveryFee
	Status           string     `gorm:"size:20;index;not null" json:"status"`
	PaymentStatus    string     `gorm:"size:20;index;not null" json:"paymentStatus"`
	GatewayOrderId   *string    `gorm:"size:64;index" json:"gatewayOrderId,omitempty"`
	GatewayPaymentId *string    `gorm:"size:64" json:"gatewayPaymentId,omitempty"`
	SessionToken     string     `gorm:"size:64;index" json:"-"` // khoá tái sử dụng đơn theo phiên đặt hàng
	PickupTime       *time.Time `json:"pickupTime,omitempty"`
	AddressId        *uint      `json:"addressId,omitempty"`
	Address          *Address   `gorm:"foreignKey:AddressId" json:"address,omitempty"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	Items            []OrderItem `gorm:"foreignKey:OrderId" json:"items"`
}

// OrderItem lưu snapshot tên và đơn giá tại thời điểm đặt,
// không bao giờ tính lại từ catalog
type OrderItem struct {
	DTO
	OrderId   uint   `gorm:"not null;index" json:"orderId"`
	ProductId uint   `gorm:"not null" json:"productId"`
	Name      string `gorm:"size:150;not null" json:"name"`
	UnitPrice int64  `gorm:"not null" json:"unitPrice"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	ItemType  string `gorm:"size:20;not null" json:"itemType"` // REGULAR, POSTAL
}

type CreateOrderItemInput struct {
	ProductId uint `json:"productId" validate:"required,gt=0"`
	Quantity  int  `json:"quantity" validate:"required,gt=0,lte=50"`
}

type CreateOrderInput struct {
	SessionToken string                 `json:"sessionToken" validate:"required,min=8,max=64"`
	ReuseOrderId *uint                  `json:"reuseOrderId" validate:"omitempty,gt=0"`
	Fulfillment  string                 `json:"fulfillment" validate:"required,oneof=PICKUP DELIVERY POSTAL"`
	CustomerName string                 `json:"customerName" validate:"required,min=2,max=100"`
	Phone        string                 `json:"phone" validate:"required,min=8,max=15"`
	Email        string                 `json:"email" validate:"omitempty,email"`
	PickupTime   *string                `json:"pickupTime" validate:"omitempty"` // "2006-01-02 15:04"
	Address      *CreateAddressInput    `json:"address" validate:"omitempty"`
	Items        []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type CreateOrderResponse struct {
	OrderId        uint   `json:"orderId"`
	PublicCode     string `json:"publicCode"`
	GatewayOrderId string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Reused         bool   `json:"reused"`
}
