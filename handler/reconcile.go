package handler

import (
	"dessert_shop/model"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

// ErrUnknownOrder: sự kiện nhắc tới gateway order không thuộc hệ thống này
var ErrUnknownOrder = errors.New("không tìm thấy đơn theo gateway order id")

// Notifier nhận sự kiện "đơn vừa được thanh toán"; render và gửi đi đâu
// là việc của bên nhận, không phải của reconciler
type Notifier interface {
	OrderPaid(order *model.Order)
}

// PaymentEvent là một sự kiện xác nhận đã qua kiểm chữ ký, từ một trong hai kênh
type PaymentEvent struct {
	GatewayOrderId   string
	GatewayPaymentId string
	Captured         bool   // true: capture thành công, false: thất bại
	Source           string // "client" hoặc "webhook"
}

// Reconciler hội tụ hai kênh xác nhận về một hàm chuyển trạng thái duy nhất.
// Mọi side effect đều nằm sau một UPDATE có điều kiện, nên hai kênh có thể đua,
// lặp hay tới ngược thứ tự mà trạng thái chỉ tiến, không lùi: CAPTURED thắng
// FAILED, FAILED thắng chưa-có-gì, bản sao là no-op.
type Reconciler struct {
	DB       *gorm.DB
	Notifier Notifier
}

// Apply trả về đơn sau xử lý và cờ có chuyển trạng thái thật sự hay không.
// Sự kiện cũ hoặc lặp bị nuốt im lặng: transitioned=false, không lỗi.
func (r *Reconciler) Apply(event PaymentEvent) (*model.Order, bool, error) {
	order, err := r.resolveOrder(event.GatewayOrderId)
	if err != nil {
		return nil, false, err
	}

	if event.Captured {
		return r.applyCaptured(order, event)
	}
	return r.applyFailed(order, event)
}

// resolveOrder tìm đơn theo gateway order id. Đơn có thể đã được gắn gateway
// order mới hơn sau một lần phát hành lại; bảng Payment giữ mọi gateway order
// từng phát hành nên tra thêm ở đó trước khi kết luận là đơn lạ. Khách trả
// tiền trên bản cũ thì capture vẫn phải về đúng đơn.
func (r *Reconciler) resolveOrder(gatewayOrderId string) (*model.Order, error) {
	var order model.Order
	err := r.DB.Where("gateway_order_id = ?", gatewayOrderId).First(&order).Error
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var payment model.Payment
	if err := r.DB.Where("gateway_order_id = ?", gatewayOrderId).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownOrder
		}
		return nil, err
	}
	if err := r.DB.First(&order, payment.OrderId).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Reconciler) applyCaptured(order *model.Order, event PaymentEvent) (*model.Order, bool, error) {
	now := time.Now()

	// CAPTURED đè được FAILED tới trước, nhưng không đụng vào đơn đã huỷ
	result := r.DB.Model(&model.Order{}).
		Where("id = ? AND payment_status IN ? AND status IN ?",
			order.ID,
			[]string{model.PaymentStatusPending, model.PaymentStatusCreated, model.PaymentStatusFailed},
			[]string{model.OrderStatusPending, model.OrderStatusPaymentPending}).
		Updates(map[string]interface{}{
			"payment_status":     model.PaymentStatusCaptured,
			"status":             model.OrderStatusPaid,
			"gateway_payment_id": event.GatewayPaymentId,
			"paid_at":            now,
		})
	if result.Error != nil {
		return order, false, result.Error
	}

	if result.RowsAffected == 0 {
		// bản sao hoặc sự kiện muộn: đọc lại trạng thái hiện tại rồi thôi
		r.DB.Preload("Items").First(order, order.ID)
		return order, false, nil
	}

	r.DB.Model(&model.Payment{}).
		Where("gateway_order_id = ?", event.GatewayOrderId).
		Update("status", model.PaymentStatusCaptured)

	r.DB.Preload("Items").First(order, order.ID)

	// chỉ cạnh chuyển mới (RowsAffected == 1) mới được phát thông báo
	if r.Notifier != nil {
		r.Notifier.OrderPaid(order)
	}
	log.Printf("Đơn %s capture qua kênh %s", order.PublicCode, event.Source)
	return order, true, nil
}

func (r *Reconciler) applyFailed(order *model.Order, event PaymentEvent) (*model.Order, bool, error) {
	// FAILED chỉ ghi khi chưa từng capture; failed-sau-captured là sự kiện muộn, bỏ qua
	result := r.DB.Model(&model.Order{}).
		Where("id = ? AND payment_status IN ?",
			order.ID,
			[]string{model.PaymentStatusPending, model.PaymentStatusCreated}).
		Update("payment_status", model.PaymentStatusFailed)
	if result.Error != nil {
		return order, false, result.Error
	}

	if result.RowsAffected == 0 {
		r.DB.Preload("Items").First(order, order.ID)
		return order, false, nil
	}

	r.DB.Model(&model.Payment{}).
		Where("gateway_order_id = ?", event.GatewayOrderId).
		Update("status", model.PaymentStatusFailed)

	r.DB.Preload("Items").First(order, order.ID)
	log.Printf("Đơn %s ghi nhận thất bại thanh toán qua kênh %s", order.PublicCode, event.Source)
	return order, true, nil
}
