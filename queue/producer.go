package queue

import (
	"context"
	"dessert_shop/model"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderPaidMessage là sự kiện đổi trạng thái đơn đẩy lên Kafka.
// Consumer (in nhãn, đối soát, CSKH) ở ngoài phạm vi backend này.
type OrderPaidMessage struct {
	PublicCode  string `json:"public_code"`
	Fulfillment string `json:"fulfillment"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"` // VND
	PaidAt      int64  `json:"paid_at"`
}

// Producer bọc Kafka writer với tham số an toàn:
// key theo mã đơn để cùng đơn rơi vào cùng partition, chờ đủ ISR xác nhận.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  5,
			WriteTimeout: 5 * time.Second,
			ReadTimeout:  5 * time.Second,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *Producer) Close() error { return p.w.Close() }

// PublishOrderPaid đẩy một sự kiện đơn-đã-thanh-toán, key theo mã đơn công khai
func (p *Producer) PublishOrderPaid(ctx context.Context, order *model.Order) error {
	msg := OrderPaidMessage{
		PublicCode:  order.PublicCode,
		Fulfillment: order.Fulfillment,
		Status:      order.Status,
		Amount:      order.TotalAmount,
	}
	if order.PaidAt != nil {
		msg.PaidAt = order.PaidAt.Unix()
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.PublicCode),
		Value: b,
	})
}
