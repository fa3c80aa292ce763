package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"dessert_shop/config"
	"dessert_shop/model"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Gateway là cổng thanh toán, dựng một lần lúc khởi động và inject vào
// các handler cần nó, không dùng client toàn cục
type Gateway interface {
	CreateOrder(req model.GatewayOrderRequest) (*model.GatewayOrderResponse, error)
	VerifyClientSignature(gatewayOrderId, gatewayPaymentId, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
}

type GatewayClient struct {
	Config model.GatewayConfig
	HTTP   *http.Client
}

func NewGatewayClient() *GatewayClient {
	return &GatewayClient{
		Config: model.GatewayConfig{
			Key:           config.Config("GATEWAY_KEY"),
			Secret:        config.Config("GATEWAY_SECRET"),
			WebhookSecret: config.Config("GATEWAY_WEBHOOK_SECRET"),
			BaseURL:       config.Config("GATEWAY_URL"),
			Currency:      "VND",
		},
		HTTP: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateOrder tạo gateway order bên phía cổng thanh toán
func (g *GatewayClient) CreateOrder(req model.GatewayOrderRequest) (*model.GatewayOrderResponse, error) {
	if req.Currency == "" {
		req.Currency = g.Config.Currency
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, g.Config.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(g.Config.Key, g.Config.Secret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTP.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway trả về status %d", resp.StatusCode)
	}

	var out model.GatewayOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Id == "" {
		return nil, fmt.Errorf("gateway không trả về order id")
	}
	return &out, nil
}

// VerifyClientSignature kiểm chữ ký kênh trình duyệt:
// HMAC-SHA256(gatewayOrderId|gatewayPaymentId) với key secret
func (g *GatewayClient) VerifyClientSignature(gatewayOrderId, gatewayPaymentId, signature string) bool {
	expected := signHMAC(g.Config.Secret, []byte(gatewayOrderId+"|"+gatewayPaymentId))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature kiểm trên đúng raw bytes của body, secret riêng cho webhook
func (g *GatewayClient) VerifyWebhookSignature(body []byte, signature string) bool {
	expected := signHMAC(g.Config.WebhookSecret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func signHMAC(secret string, data []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
