package handler

import (
	"context"
	"dessert_shop/model"
	"dessert_shop/queue"
	"dessert_shop/utils"
	"fmt"
	"log"
	"os"
	"strings"
)

// OrderNotifier nối cạnh "vừa thanh toán" với các nơi nhận: email cho khách,
// Kafka cho pipeline vận hành, Redis pub/sub cho bảng đơn ở quầy.
// Reconciler đã đảm bảo mỗi đơn chỉ gọi vào đây đúng một lần.
type OrderNotifier struct {
	Producer *queue.Producer // nil nếu không cấu hình Kafka
}

func (n *OrderNotifier) OrderPaid(order *model.Order) {
	var names []string
	for _, item := range order.Items {
		names = append(names, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}

	utils.SendOrderPaidEmail(order.Email, utils.OrderPaidData{
		OrderCode:   order.PublicCode,
		Fulfillment: order.Fulfillment,
		Items:       strings.Join(names, ", "),
		TotalAmount: order.TotalAmount,
		DetailLink:  os.Getenv("APP_URL") + "/order/" + order.PublicCode,
	})

	PublishOrderEvent(order)

	if n.Producer != nil {
		if err := n.Producer.PublishOrderPaid(context.Background(), order); err != nil {
			log.Printf("Lỗi đẩy sự kiện Kafka cho đơn %s: %v", order.PublicCode, err)
		}
	}
}
