package helper

import (
	"dessert_shop/database"
	"dessert_shop/model"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

var orderScheduler *cron.Cron

func StartOrderExpiryScheduler() {
	orderScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy mỗi 10 phút là đủ, cửa sổ đợt tính theo ngày
	_, err := orderScheduler.AddFunc("*/10 * * * *", CancelClosedPostalOrders)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	orderScheduler.Start()
	log.Println("Scheduler huỷ đơn quá đợt đã khởi động (mỗi 10 phút)")
}

// CancelClosedPostalOrders huỷ các đơn bưu điện còn chờ thanh toán mà đợt gốc
// đã đóng. Dùng chung hàm đánh giá với API retry-payment để chính sách không lệch nhau.
func CancelClosedPostalOrders() {
	now := time.Now()

	var orders []model.Order
	if err := database.DB.
		Where("fulfillment = ? AND status = ?", model.FulfillmentPostal, model.OrderStatusPaymentPending).
		Find(&orders).Error; err != nil {
		log.Printf("Lỗi truy vấn đơn chờ thanh toán: %v", err)
		return
	}

	cancelled := 0
	for _, order := range orders {
		eligibility, err := EvaluateRetry(order, now)
		if err != nil || eligibility.Eligible {
			continue
		}

		// Ghi có điều kiện: chỉ huỷ khi đơn vẫn đang chờ, tránh đè lên một lần capture vừa tới
		result := database.DB.Model(&model.Order{}).
			Where("id = ? AND status = ? AND payment_status IN ?",
				order.ID, model.OrderStatusPaymentPending,
				[]string{model.PaymentStatusPending, model.PaymentStatusCreated, model.PaymentStatusFailed}).
			Updates(map[string]interface{}{
				"status":       model.OrderStatusCancelled,
				"cancelled_at": now,
			})
		if result.Error != nil {
			log.Printf("Lỗi huỷ đơn %s: %v", order.PublicCode, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			cancelled++
		}
	}

	if cancelled > 0 {
		log.Printf("Đã huỷ %d đơn bưu điện quá đợt", cancelled)
	}
}

// Dừng scheduler khi tắt server
func StopOrderExpiryScheduler() {
	if orderScheduler != nil {
		orderScheduler.Stop()
		log.Println("Scheduler huỷ đơn đã dừng")
	}
}
