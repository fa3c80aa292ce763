package handler

import (
	"dessert_shop/constants"
	"dessert_shop/database"
	"dessert_shop/model"
	"dessert_shop/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	Gateway    Gateway
	Reconciler *Reconciler
}

func NewPaymentHandler(gateway Gateway, reconciler *Reconciler) *PaymentHandler {
	return &PaymentHandler{Gateway: gateway, Reconciler: reconciler}
}

// VerifyPayment là kênh trình duyệt: client quay về sau khi trả tiền, mang theo
// chữ ký của cổng thanh toán. Trình duyệt có thể retry nên toàn đường phải idempotent.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	input := c.Locals("verifyInput").(model.VerifyPaymentInput)

	var order model.Order
	if err := database.DB.First(&order, input.OrderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
	}

	// chéo kiểm: gateway order trong chữ ký phải đúng là của đơn này
	if order.GatewayOrderId == nil || *order.GatewayOrderId != input.GatewayOrderId {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_SIGNATURE, nil)
	}

	// chữ ký sai thì từ chối, không đụng vào trạng thái, không nói thêm gì
	if !h.Gateway.VerifyClientSignature(input.GatewayOrderId, input.GatewayPaymentId, input.Signature) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_SIGNATURE, nil)
	}

	updated, _, err := h.Reconciler.Apply(PaymentEvent{
		GatewayOrderId:   input.GatewayOrderId,
		GatewayPaymentId: input.GatewayPaymentId,
		Captured:         true,
		Source:           "client",
	})
	if err != nil {
		if errors.Is(err, ErrUnknownOrder) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// retry của trình duyệt rơi vào nhánh không-chuyển: trạng thái đã là CAPTURED, vẫn thành công
	if updated.PaymentStatus != model.PaymentStatusCaptured {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Thanh toán chưa được ghi nhận", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"publicCode":    updated.PublicCode,
		"status":        updated.Status,
		"paymentStatus": updated.PaymentStatus,
	})
}
