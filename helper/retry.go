package helper

import (
	"dessert_shop/database"
	"dessert_shop/model"
	"time"
)

// RetryEligibility là câu trả lời cho việc "đơn chờ thanh toán còn trả được không".
// Không đủ điều kiện không phải là lỗi, chỉ là câu trả lời phủ định kèm giải thích.
type RetryEligibility struct {
	Eligible   bool                   `json:"eligible"`
	Message    string                 `json:"message,omitempty"`
	OriginSlot *model.PostalOrderSlot `json:"originSlot,omitempty"`
	NextSlot   *model.PostalOrderSlot `json:"nextSlot,omitempty"`
}

// CanRetryPayment quyết định thuần trên dữ liệu đợt: đơn tạo lúc createdAt
// chỉ trả được hôm nay nếu hôm nay còn nằm trong khoảng nhận đặt của chính
// đợt gốc. Đợt khác có mở sau đó cũng không cứu được đơn này.
func CanRetryPayment(createdAt, now time.Time, slots []model.PostalOrderSlot) (bool, *model.PostalOrderSlot) {
	origin, _ := FindSlotForOrderDate(createdAt, slots)
	if origin == nil {
		// không tìm được đợt gốc thì đóng luôn, không đoán
		return false, nil
	}
	return InOrderWindow(*origin, now), origin
}

// EvaluateRetry áp CanRetryPayment cho một đơn cụ thể, tra lại đợt gốc từ DB
// mỗi lần gọi (không cache) để phản ánh đúng dữ liệu đợt tại thời điểm hỏi.
func EvaluateRetry(order model.Order, now time.Time) (RetryEligibility, error) {
	if order.Status != model.OrderStatusPaymentPending {
		return RetryEligibility{Eligible: false, Message: "Đơn hàng không ở trạng thái chờ thanh toán"}, nil
	}
	if order.Fulfillment != model.FulfillmentPostal {
		// đơn không bị ràng theo đợt thì luôn trả lại được
		return RetryEligibility{Eligible: true}, nil
	}

	var slots []model.PostalOrderSlot
	if err := database.DB.Find(&slots).Error; err != nil {
		return RetryEligibility{}, err
	}

	eligible, origin := CanRetryPayment(order.CreatedAt, now, slots)
	result := RetryEligibility{Eligible: eligible, OriginSlot: origin}
	if eligible {
		return result, nil
	}

	next, err := EarliestUpcomingSlot(now)
	if err != nil {
		return RetryEligibility{}, err
	}
	result.NextSlot = next

	if origin == nil {
		result.Message = "Đơn hàng không thuộc đợt đặt bánh nào nên không thể thanh toán lại"
	} else {
		result.Message = "Đợt '" + origin.Name + "' đã đóng, đơn này không thể thanh toán lại"
	}
	return result, nil
}
