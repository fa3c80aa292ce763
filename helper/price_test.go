package helper

import (
	"dessert_shop/model"
	"dessert_shop/utils"
	"testing"
)

func TestCalculateDeliveryFee(t *testing.T) {
	cases := []struct {
		name        string
		fulfillment string
		province    *string
		subtotal    int64
		want        *int64
	}{
		{"tự đến lấy không phụ phí", model.FulfillmentPickup, nil, 100000, nil},
		{"bưu điện cước trọn gói", model.FulfillmentPostal, utils.StringPtr("Hà Nội"), 100000, utils.Ptr(int64(35000))},
		{"giao nội thành", model.FulfillmentDelivery, utils.StringPtr("Hồ Chí Minh"), 100000, utils.Ptr(int64(20000))},
		{"giao tỉnh khác cộng thêm cước", model.FulfillmentDelivery, utils.StringPtr("Đà Nẵng"), 100000, utils.Ptr(int64(45000))},
		{"đơn lớn miễn phí giao", model.FulfillmentDelivery, utils.StringPtr("Đà Nẵng"), 900000, utils.Ptr(int64(0))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var addr *model.Address
			if tc.province != nil {
				addr = &model.Address{Province: tc.province}
			}
			got := CalculateDeliveryFee(tc.fulfillment, addr, tc.subtotal)
			switch {
			case tc.want == nil && got != nil:
				t.Errorf("mong nil, nhận %d", *got)
			case tc.want != nil && got == nil:
				t.Errorf("mong %d, nhận nil", *tc.want)
			case tc.want != nil && got != nil && *tc.want != *got:
				t.Errorf("mong %d, nhận %d", *tc.want, *got)
			}
		})
	}
}

func TestOrderTotal(t *testing.T) {
	items := []model.OrderItem{
		{UnitPrice: 45000, Quantity: 2},
		{UnitPrice: 120000, Quantity: 1},
	}
	subtotal := Subtotal(items)
	if subtotal != 210000 {
		t.Fatalf("Subtotal = %d, mong 210000", subtotal)
	}
	if got := OrderTotal(subtotal, utils.Ptr(int64(35000))); got != 245000 {
		t.Errorf("OrderTotal có phụ phí = %d, mong 245000", got)
	}
	if got := OrderTotal(subtotal, nil); got != subtotal {
		t.Errorf("OrderTotal không phụ phí = %d, mong %d", got, subtotal)
	}
}
