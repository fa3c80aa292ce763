package helper

import (
	"dessert_shop/model"
	"strings"
)

const (
	deliveryBaseFee     = int64(20000) // nội thành
	deliveryProvinceFee = int64(25000) // cộng thêm khi giao tỉnh khác
	postalFlatFee       = int64(35000) // cước gửi bưu điện trọn gói
	freeDeliveryFrom    = int64(800000)
)

// CalculateDeliveryFee tính phụ phí giao hàng đúng một lần lúc tạo đơn.
// Giá trị được lưu trên đơn và không bao giờ tính lại dù biểu phí đổi sau này.
func CalculateDeliveryFee(fulfillment string, addr *model.Address, subtotal int64) *int64 {
	switch fulfillment {
	case model.FulfillmentPostal:
		fee := postalFlatFee
		return &fee
	case model.FulfillmentDelivery:
		fee := deliveryBaseFee
		if addr != nil && addr.Province != nil && !strings.EqualFold(*addr.Province, "Hồ Chí Minh") {
			fee += deliveryProvinceFee
		}
		if subtotal >= freeDeliveryFrom {
			fee = 0
		}
		return &fee
	}
	// PICKUP không có phụ phí
	return nil
}

// Subtotal cộng tổng tiền hàng từ snapshot đơn giá
func Subtotal(items []model.OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// OrderTotal = tiền hàng + phụ phí (nếu có)
func OrderTotal(subtotal int64, deliveryFee *int64) int64 {
	if deliveryFee != nil {
		return subtotal + *deliveryFee
	}
	return subtotal
}
