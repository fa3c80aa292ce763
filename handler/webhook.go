package handler

import (
	"dessert_shop/constants"
	"dessert_shop/model"
	"dessert_shop/utils"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GatewayWebhook là kênh server-to-server: giao ít-nhất-một-lần, không theo thứ
// tự, và có thể tới trước hoặc sau kênh trình duyệt cho cùng một thanh toán.
func (h *PaymentHandler) GatewayWebhook(c *fiber.Ctx) error {
	// kiểm chữ ký trên đúng raw bytes trước khi parse JSON
	raw := c.Body()
	signature := c.Get("X-Signature")

	if !h.Gateway.VerifyWebhookSignature(raw, signature) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_SIGNATURE, nil)
	}

	var envelope model.WebhookEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Body không hợp lệ", err)
	}

	event := PaymentEvent{Source: "webhook"}
	switch envelope.Event {
	case "payment.captured", "order.paid":
		// order.paid cùng nghĩa capture trong lưới trạng thái, không cần thứ tự riêng
		event.Captured = true
	case "payment.failed":
		event.Captured = false
	default:
		// loại sự kiện không theo dõi: nhận rồi bỏ qua
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"received": true})
	}

	if p := envelope.Payload.Payment; p != nil {
		event.GatewayOrderId = p.OrderId
		event.GatewayPaymentId = p.Id
	}
	if event.GatewayOrderId == "" && envelope.Payload.Order != nil {
		event.GatewayOrderId = envelope.Payload.Order.Id
	}
	if event.GatewayOrderId == "" {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"received": true})
	}

	if _, _, err := h.Reconciler.Apply(event); err != nil {
		if errors.Is(err, ErrUnknownOrder) {
			// đơn không thuộc hệ thống này: log rồi ack để gateway đừng retry mãi
			log.Printf("Webhook nhắc tới gateway order lạ: %s", event.GatewayOrderId)
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"received": true})
		}
		// lỗi hạ tầng thì trả 5xx để gateway giao lại
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"received": true})
}
