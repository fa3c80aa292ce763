package handler

import (
	"context"
	"dessert_shop/database"
	"dessert_shop/model"
	"encoding/json"
	"log"

	"github.com/gofiber/contrib/websocket"
)

const orderBoardChannel = "orders:board"

// PublishOrderEvent đẩy sự kiện đổi trạng thái đơn lên kênh Redis của bảng đơn
func PublishOrderEvent(order *model.Order) {
	if database.Redis == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"publicCode":    order.PublicCode,
		"status":        order.Status,
		"paymentStatus": order.PaymentStatus,
		"fulfillment":   order.Fulfillment,
		"totalAmount":   order.TotalAmount,
	})
	if err != nil {
		return
	}
	database.Redis.Publish(context.Background(), orderBoardChannel, payload)
}

// OrderBoardSocket stream trạng thái đơn cho màn hình ở quầy
func OrderBoardSocket(c *websocket.Conn) {
	defer c.Close()

	if database.Redis == nil {
		return
	}

	// Sub kênh Redis
	pubsub := database.Redis.Subscribe(context.Background(), orderBoardChannel)
	defer pubsub.Close()

	// Lắng nghe message từ Redis
	channel := pubsub.Channel()
	for msg := range channel {
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			log.Printf("WS write: %v", err)
			return
		}
	}
}
