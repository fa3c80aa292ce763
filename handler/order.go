package handler

import (
	"dessert_shop/constants"
	"dessert_shop/database"
	"dessert_shop/helper"
	"dessert_shop/model"
	"dessert_shop/utils"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type OrderHandler struct {
	Gateway Gateway
}

func NewOrderHandler(gateway Gateway) *OrderHandler {
	return &OrderHandler{Gateway: gateway}
}

// CreateOrder tạo đơn mới hoặc trả lại đơn dang dở của cùng phiên đặt hàng.
// Refresh trang không được sinh thêm gateway order thứ hai.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("createInput").(model.CreateOrderInput)

	// khoá theo phiên: đọc-rồi-ghi của đường tái sử dụng phải nằm trọn trong đây
	release, ok := helper.AcquireSessionLock(input.SessionToken)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusTooManyRequests, "Đơn của phiên này đang được xử lý, vui lòng thử lại", nil)
	}
	defer release()

	db := database.DB

	if input.ReuseOrderId != nil {
		var existing model.Order
		err := db.Preload("Items").
			Where("id = ? AND session_token = ? AND payment_status != ? AND status NOT IN ?",
				*input.ReuseOrderId, input.SessionToken, model.PaymentStatusCaptured,
				[]string{model.OrderStatusCancelled, model.OrderStatusCompleted}).
			First(&existing).Error
		if err == nil {
			return h.reuseOrder(c, &existing)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		// không còn đơn nào dùng lại được thì rơi xuống tạo mới
	}

	now := time.Now()

	// snapshot tên và đơn giá từ catalog ngay lúc này; catalog đổi sau không ảnh hưởng đơn
	var items []model.OrderItem
	for _, it := range input.Items {
		var product model.Product
		if err := db.First(&product, "id = ? AND active = ?", it.ProductId, true).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Sản phẩm %d không tồn tại hoặc đã ngừng bán", it.ProductId), nil)
		}
		itemType := model.ItemTypeRegular
		if product.IsPostal {
			itemType = model.ItemTypePostal
		}
		items = append(items, model.OrderItem{
			ProductId: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  it.Quantity,
			ItemType:  itemType,
		})
	}

	// đơn bưu điện chỉ nhận khi đang trong khoảng nhận đặt của một đợt mở
	if input.Fulfillment == model.FulfillmentPostal {
		slot, err := helper.SlotAcceptingOrdersOn(now)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if slot == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.OUTSIDE_ORDER_WINDOW, nil)
		}
	}

	if (input.Fulfillment == model.FulfillmentDelivery || input.Fulfillment == model.FulfillmentPostal) && input.Address == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu địa chỉ giao hàng", nil)
	}

	var pickupTime *time.Time
	if input.PickupTime != nil {
		t, err := time.ParseInLocation("2006-01-02 15:04", *input.PickupTime, helper.ShopLocation)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Giờ nhận bánh sai định dạng", err)
		}
		pickupTime = &t
	}

	subtotal := helper.Subtotal(items)

	tx := db.Begin()

	var address *model.Address
	if input.Address != nil {
		address = &model.Address{}
		copier.Copy(address, input.Address)
		if err := tx.Create(address).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi lưu địa chỉ", err)
		}
	}

	fee := helper.CalculateDeliveryFee(input.Fulfillment, address, subtotal)
	order := model.Order{
		PublicCode:    "ORD-" + utils.RandomString(6),
		CustomerName:  input.CustomerName,
		Phone:         input.Phone,
		Email:         input.Email,
		Fulfillment:   input.Fulfillment,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		TotalAmount:   helper.OrderTotal(subtotal, fee),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		SessionToken:  input.SessionToken,
		PickupTime:    pickupTime,
	}
	if address != nil {
		order.AddressId = &address.ID
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tạo đơn hàng", err)
	}

	for i := range items {
		items[i].OrderId = order.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi lưu sản phẩm trong đơn", err)
	}

	gatewayOrder, err := h.issueGatewayOrder(tx, &order)
	if err != nil {
		// không để lại đơn với tham chiếu thanh toán hỏng: huỷ cả giao dịch
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Không tạo được lệnh thanh toán, vui lòng thử lại", err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, model.CreateOrderResponse{
		OrderId:        order.ID,
		PublicCode:     order.PublicCode,
		GatewayOrderId: gatewayOrder.Id,
		Amount:         gatewayOrder.Amount,
		Currency:       gatewayOrder.Currency,
	})
}

// errOrderSettled: một capture đã tới giữa lúc đọc đơn và lúc gắn gateway order mới
var errOrderSettled = errors.New("đơn đã được thanh toán trong lúc phát hành lệnh thanh toán")

// issueGatewayOrder tạo gateway order rồi gắn vào đơn trong cùng transaction
func (h *OrderHandler) issueGatewayOrder(tx *gorm.DB, order *model.Order) (*model.GatewayOrderResponse, error) {
	gatewayOrder, err := h.Gateway.CreateOrder(model.GatewayOrderRequest{
		Amount:  order.TotalAmount,
		Receipt: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	payment := model.Payment{
		OrderId:        order.ID,
		Amount:         order.TotalAmount,
		Currency:       gatewayOrder.Currency,
		GatewayOrderId: gatewayOrder.Id,
		Status:         model.PaymentStatusCreated,
		ExpiresAt:      time.Now().Add(15 * time.Minute), // gateway order hết hạn sau 15 phút
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, err
	}

	// ghi có điều kiện: webhook capture có thể chen vào giữa lúc đọc và lúc ghi,
	// và một đơn đã thanh toán thì không bao giờ được kéo ngược về chờ thanh toán
	result := tx.Model(&model.Order{}).
		Where("id = ? AND payment_status IN ? AND status IN ?",
			order.ID,
			[]string{model.PaymentStatusPending, model.PaymentStatusCreated, model.PaymentStatusFailed},
			[]string{model.OrderStatusPending, model.OrderStatusPaymentPending}).
		Updates(map[string]interface{}{
			"gateway_order_id": gatewayOrder.Id,
			"status":           model.OrderStatusPaymentPending,
			"payment_status":   model.PaymentStatusCreated,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errOrderSettled
	}
	order.GatewayOrderId = &gatewayOrder.Id
	order.Status = model.OrderStatusPaymentPending
	order.PaymentStatus = model.PaymentStatusCreated
	return gatewayOrder, nil
}

// reuseOrder trả lại đơn dang dở của cùng phiên,
// phát hành lại gateway order nếu cái cũ đã hết hạn
func (h *OrderHandler) reuseOrder(c *fiber.Ctx, order *model.Order) error {
	db := database.DB

	// đơn bưu điện quá đợt thì không cho trả lại nữa
	if order.Fulfillment == model.FulfillmentPostal && order.Status == model.OrderStatusPaymentPending {
		eligibility, err := helper.EvaluateRetry(*order, time.Now())
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if !eligibility.Eligible {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, eligibility.Message, nil)
		}
	}

	if order.GatewayOrderId != nil {
		var payment model.Payment
		err := db.Where("gateway_order_id = ?", *order.GatewayOrderId).First(&payment).Error
		if err == nil && payment.ExpiresAt.After(time.Now()) {
			return utils.SuccessResponse(c, fiber.StatusOK, model.CreateOrderResponse{
				OrderId:        order.ID,
				PublicCode:     order.PublicCode,
				GatewayOrderId: payment.GatewayOrderId,
				Amount:         payment.Amount,
				Currency:       payment.Currency,
				Reused:         true,
			})
		}
	}

	tx := db.Begin()
	gatewayOrder, err := h.issueGatewayOrder(tx, order)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, errOrderSettled) {
			// capture tới trước khi kịp gắn gateway order mới: trả về hiện trạng
			var settled model.Order
			if err := db.First(&settled, order.ID).Error; err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
			log.Printf("Đơn %s đã thanh toán trong lúc phát hành lại, giữ nguyên", settled.PublicCode)
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
				"orderId":       settled.ID,
				"publicCode":    settled.PublicCode,
				"status":        settled.Status,
				"paymentStatus": settled.PaymentStatus,
				"reused":        true,
			})
		}
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Không tạo được lệnh thanh toán, vui lòng thử lại", err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	log.Printf("Đơn %s phát hành lại gateway order %s", order.PublicCode, gatewayOrder.Id)
	return utils.SuccessResponse(c, fiber.StatusOK, model.CreateOrderResponse{
		OrderId:        order.ID,
		PublicCode:     order.PublicCode,
		GatewayOrderId: gatewayOrder.Id,
		Amount:         gatewayOrder.Amount,
		Currency:       gatewayOrder.Currency,
		Reused:         true,
	})
}

func GetOrderDetail(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order model.Order
	if err := database.DB.
		Preload("Items").
		Preload("Address").
		Where("public_code = ?", orderCode).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
	}

	response := fiber.Map{"order": order}

	// đơn tự đến lấy đã thanh toán thì kèm QR cho quầy quét
	if order.Fulfillment == model.FulfillmentPickup && isPaidLifecycle(order.Status) {
		qr, err := utils.QRCodeBase64(order.PublicCode, 400)
		if err != nil {
			log.Printf("Lỗi tạo QR cho đơn %s: %v", order.PublicCode, err)
		} else {
			response["qrCode"] = qr
		}
	}

	if order.Status == model.OrderStatusPaymentPending {
		eligibility, err := helper.EvaluateRetry(order, time.Now())
		if err == nil {
			response["retry"] = eligibility
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetRetryEligibility cho màn hình chi tiết đơn hỏi: đơn này còn trả được không
func GetRetryEligibility(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order model.Order
	if err := database.DB.Where("public_code = ?", orderCode).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
	}

	eligibility, err := helper.EvaluateRetry(order, time.Now())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, eligibility)
}

func isPaidLifecycle(status string) bool {
	switch status {
	case model.OrderStatusPaid, model.OrderStatusConfirmed, model.OrderStatusPreparing,
		model.OrderStatusReady, model.OrderStatusCompleted:
		return true
	}
	return false
}
