package handler

import (
	"dessert_shop/database"
	"dessert_shop/model"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("không mở được sqlite test: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("không lấy được sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	database.Migrate(db)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})
	return db
}

// fakeGateway thay cổng thanh toán thật trong test: phát id tuần tự,
// chữ ký hợp lệ là chuỗi "valid"
type fakeGateway struct {
	mu      sync.Mutex
	counter int
	fail    bool // bật để giả lập cổng thanh toán sập
	created []model.GatewayOrderRequest
}

func (f *fakeGateway) CreateOrder(req model.GatewayOrderRequest) (*model.GatewayOrderResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("gateway không phản hồi")
	}
	f.counter++
	f.created = append(f.created, req)
	return &model.GatewayOrderResponse{
		Id:       fmt.Sprintf("gw_order_%d", f.counter),
		Amount:   req.Amount,
		Currency: "VND",
	}, nil
}

func (f *fakeGateway) VerifyClientSignature(gatewayOrderId, gatewayPaymentId, signature string) bool {
	return signature == "valid"
}

func (f *fakeGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return signature == "valid"
}

func (f *fakeGateway) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counter
}

// countingNotifier đếm số lần được báo "đơn vừa thanh toán"
type countingNotifier struct {
	mu     sync.Mutex
	orders []string
}

func (n *countingNotifier) OrderPaid(order *model.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order.PublicCode)
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.orders)
}

// seedPaymentPendingOrder tạo một đơn đang chờ thanh toán kèm bản ghi Payment
func seedPaymentPendingOrder(t *testing.T, db *gorm.DB, gatewayOrderId string) *model.Order {
	t.Helper()

	order := model.Order{
		PublicCode:     "ORD-" + gatewayOrderId,
		CustomerName:   "Nguyễn Văn A",
		Phone:          "0901234567",
		Fulfillment:    model.FulfillmentPickup,
		Subtotal:       150000,
		TotalAmount:    150000,
		Status:         model.OrderStatusPaymentPending,
		PaymentStatus:  model.PaymentStatusCreated,
		GatewayOrderId: &gatewayOrderId,
		SessionToken:   "session-" + gatewayOrderId,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed đơn: %v", err)
	}

	item := model.OrderItem{
		OrderId:   order.ID,
		ProductId: 1,
		Name:      "Bánh kem dâu",
		UnitPrice: 150000,
		Quantity:  1,
		ItemType:  model.ItemTypeRegular,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed sản phẩm trong đơn: %v", err)
	}

	payment := model.Payment{
		OrderId:        order.ID,
		Amount:         order.TotalAmount,
		Currency:       "VND",
		GatewayOrderId: gatewayOrderId,
		Status:         model.PaymentStatusCreated,
		ExpiresAt:      time.Now().Add(15 * time.Minute),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return &order
}
