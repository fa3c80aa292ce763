package helper

import (
	"dessert_shop/model"
	"testing"
	"time"
)

func TestCanRetryPayment(t *testing.T) {
	// Đợt D: nhận đặt 01-10/01, gửi hàng 15-20/01
	slotD := makeSlot(1, "Đợt D", 1, 10, 15, 20)
	createdAt := time.Date(2025, time.January, 3, 9, 0, 0, 0, ShopLocation)

	t.Run("còn trong khoảng nhận đặt của đợt gốc thì trả lại được", func(t *testing.T) {
		now := time.Date(2025, time.January, 5, 14, 0, 0, 0, ShopLocation)
		ok, origin := CanRetryPayment(createdAt, now, []model.PostalOrderSlot{slotD})
		if !ok {
			t.Error("mong đủ điều kiện")
		}
		if origin == nil || origin.Name != "Đợt D" {
			t.Errorf("mong đợt gốc là Đợt D, nhận %+v", origin)
		}
	})

	t.Run("đợt gốc đóng rồi thì hết", func(t *testing.T) {
		now := time.Date(2025, time.January, 12, 14, 0, 0, 0, ShopLocation)
		ok, origin := CanRetryPayment(createdAt, now, []model.PostalOrderSlot{slotD})
		if ok {
			t.Error("quá khoảng nhận đặt của đợt gốc thì không trả lại được")
		}
		if origin == nil || origin.Name != "Đợt D" {
			t.Errorf("đợt gốc vẫn phải được trả về, nhận %+v", origin)
		}
	})

	t.Run("đợt mở sau không cứu được đơn của đợt cũ", func(t *testing.T) {
		// Đợt E mở 18-22/01 nhưng đơn thuộc Đợt D, phải tính theo D
		slotE := makeSlot(2, "Đợt E", 18, 22, 26, 29)
		now := time.Date(2025, time.January, 20, 14, 0, 0, 0, ShopLocation)
		ok, origin := CanRetryPayment(createdAt, now, []model.PostalOrderSlot{slotD, slotE})
		if ok {
			t.Error("điều kiện phải được ghim vào đợt gốc, không phải đợt đang mở")
		}
		if origin == nil || origin.Name != "Đợt D" {
			t.Errorf("mong đợt gốc là Đợt D, nhận %+v", origin)
		}
	})

	t.Run("không tìm được đợt gốc thì đóng luôn", func(t *testing.T) {
		orphanCreatedAt := time.Date(2025, time.January, 12, 9, 0, 0, 0, ShopLocation)
		now := time.Date(2025, time.January, 12, 14, 0, 0, 0, ShopLocation)
		ok, origin := CanRetryPayment(orphanCreatedAt, now, []model.PostalOrderSlot{slotD})
		if ok || origin != nil {
			t.Errorf("đơn mồ côi phải bị từ chối, nhận ok=%v origin=%+v", ok, origin)
		}
	})
}

func TestEvaluateRetry(t *testing.T) {
	db := setupTestDB(t)

	slotD := makeSlot(0, "Đợt D", 1, 10, 15, 20)
	slotE := makeSlot(0, "Đợt E", 18, 22, 26, 29)
	if err := db.Create(&slotD).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&slotE).Error; err != nil {
		t.Fatal(err)
	}

	newOrder := func(fulfillment, status string, createdAt time.Time) model.Order {
		order := model.Order{
			PublicCode:    "ORD-" + fulfillment[:3] + status[:3],
			Fulfillment:   fulfillment,
			Status:        status,
			PaymentStatus: model.PaymentStatusCreated,
		}
		order.CreatedAt = createdAt
		return order
	}
	createdAt := time.Date(2025, time.January, 3, 9, 0, 0, 0, ShopLocation)

	t.Run("đơn không chờ thanh toán thì không trả lại được", func(t *testing.T) {
		order := newOrder(model.FulfillmentPostal, model.OrderStatusPaid, createdAt)
		got, err := EvaluateRetry(order, time.Date(2025, time.January, 5, 0, 0, 0, 0, ShopLocation))
		if err != nil {
			t.Fatal(err)
		}
		if got.Eligible || got.Message == "" {
			t.Errorf("mong từ chối kèm giải thích, nhận %+v", got)
		}
	})

	t.Run("đơn thường không bị ràng theo đợt", func(t *testing.T) {
		order := newOrder(model.FulfillmentPickup, model.OrderStatusPaymentPending, createdAt)
		got, err := EvaluateRetry(order, time.Date(2025, time.June, 1, 0, 0, 0, 0, ShopLocation))
		if err != nil {
			t.Fatal(err)
		}
		if !got.Eligible {
			t.Errorf("đơn tự đến lấy phải luôn trả lại được, nhận %+v", got)
		}
	})

	t.Run("đơn bưu điện còn trong đợt gốc", func(t *testing.T) {
		order := newOrder(model.FulfillmentPostal, model.OrderStatusPaymentPending, createdAt)
		got, err := EvaluateRetry(order, time.Date(2025, time.January, 8, 10, 0, 0, 0, ShopLocation))
		if err != nil {
			t.Fatal(err)
		}
		if !got.Eligible {
			t.Fatalf("mong đủ điều kiện, nhận %+v", got)
		}
		if got.OriginSlot == nil || got.OriginSlot.Name != "Đợt D" {
			t.Errorf("mong đợt gốc Đợt D, nhận %+v", got.OriginSlot)
		}
	})

	t.Run("đợt gốc đóng thì gợi ý đợt kế tiếp", func(t *testing.T) {
		order := newOrder(model.FulfillmentPostal, model.OrderStatusPaymentPending, createdAt)
		got, err := EvaluateRetry(order, time.Date(2025, time.January, 12, 10, 0, 0, 0, ShopLocation))
		if err != nil {
			t.Fatal(err)
		}
		if got.Eligible {
			t.Fatalf("mong từ chối, nhận %+v", got)
		}
		if got.Message == "" {
			t.Error("từ chối phải kèm giải thích")
		}
		if got.NextSlot == nil || got.NextSlot.Name != "Đợt E" {
			t.Errorf("mong gợi ý Đợt E, nhận %+v", got.NextSlot)
		}
	})

	t.Run("đợt gốc đã tắt vẫn tra được để tính điều kiện", func(t *testing.T) {
		if err := db.Model(&model.PostalOrderSlot{}).Where("name = ?", "Đợt D").Update("active", false).Error; err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			db.Model(&model.PostalOrderSlot{}).Where("name = ?", "Đợt D").Update("active", true)
		})

		order := newOrder(model.FulfillmentPostal, model.OrderStatusPaymentPending, createdAt)
		got, err := EvaluateRetry(order, time.Date(2025, time.January, 8, 10, 0, 0, 0, ShopLocation))
		if err != nil {
			t.Fatal(err)
		}
		if !got.Eligible {
			t.Errorf("tắt đợt không được xoá lịch sử của đơn đã tạo, nhận %+v", got)
		}
	})
}
