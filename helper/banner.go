package helper

import (
	"context"
	"dessert_shop/database"
	"encoding/json"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var bannerScheduler gocron.Scheduler

const upcomingSlotKey = "banner:upcoming_slot"

// RefreshUpcomingSlotBanner tính lại đợt đặt bánh sắp mở và cache cho storefront
func RefreshUpcomingSlotBanner() {
	if database.Redis == nil {
		return
	}

	slot, err := EarliestUpcomingSlot(time.Now())
	if err != nil {
		log.Printf("Lỗi tra đợt sắp mở: %v", err)
		return
	}

	ctx := context.Background()
	if slot == nil {
		database.Redis.Del(ctx, upcomingSlotKey)
		return
	}

	b, err := json.Marshal(map[string]string{
		"name":       slot.Name,
		"orderStart": slot.OrderStart.String(),
		"orderEnd":   slot.OrderEnd.String(),
	})
	if err != nil {
		return
	}
	if err := database.Redis.Set(ctx, upcomingSlotKey, b, 0).Err(); err != nil {
		log.Printf("Lỗi cache banner đợt sắp mở: %v", err)
	}
}

func StartSlotBannerScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(ShopLocation),
	)
	if err != nil {
		log.Fatal(err)
	}

	bannerScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(RefreshUpcomingSlotBanner),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("✅ Slot banner scheduler started (00:05 ICT)")

	// chạy ngay một lần lúc khởi động cho khỏi chờ tới nửa đêm
	go RefreshUpcomingSlotBanner()
}

func StopSlotBannerScheduler() {
	if bannerScheduler != nil {
		if err := bannerScheduler.Shutdown(); err != nil {
			log.Printf("Lỗi dừng slot banner scheduler: %v", err)
		}
	}
}
