package model

type GatewayConfig struct {
	Key           string
	Secret        string
	WebhookSecret string
	BaseURL       string
	Currency      string
}

type GatewayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type GatewayOrderResponse struct {
	Id       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// WebhookEnvelope là body thô của webhook từ cổng thanh toán.
// Chữ ký X-Signature phải được kiểm trên đúng bytes gốc trước khi parse.
type WebhookEnvelope struct {
	Event   string         `json:"event"` // payment.captured, payment.failed, order.paid
	Payload WebhookPayload `json:"payload"`
}

type WebhookPayload struct {
	Payment *WebhookPayment `json:"payment,omitempty"`
	Order   *WebhookOrder   `json:"order,omitempty"`
}

type WebhookPayment struct {
	Id      string `json:"id"`
	OrderId string `json:"order_id"`
	Status  string `json:"status"`
}

type WebhookOrder struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}
