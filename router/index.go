package router

import (
	"dessert_shop/handler"
	"dessert_shop/middleware"
	"dessert_shop/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, orderHandler *handler.OrderHandler, paymentHandler *handler.PaymentHandler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	product := v1.Group("/product", logger.New())
	product.Get("/", handler.GetProducts)

	slot := v1.Group("/slot", logger.New())
	slot.Get("/upcoming", handler.GetUpcomingSlot)
	slot.Get("/", middleware.Protected(), handler.GetSlots)
	slot.Get("/:slotId", middleware.Protected(), validate.GetById("slotId"), handler.GetSlotById)
	slot.Post("/", middleware.Protected(), validate.CreateSlot(), handler.CreateSlot)
	slot.Put("/:slotId", middleware.Protected(), validate.UpdateSlot("slotId"), handler.EditSlot)
	slot.Patch("/:slotId/deactivate", middleware.Protected(), validate.GetById("slotId"), handler.DeactivateSlot)

	order := v1.Group("/order", logger.New())
	order.Post("/", validate.CreateOrder(), orderHandler.CreateOrder)
	order.Get("/:orderCode", handler.GetOrderDetail)
	order.Get("/:orderCode/retry-payment", handler.GetRetryEligibility)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/verify", validate.VerifyPayment(), paymentHandler.VerifyPayment)
	payment.Post("/webhook", paymentHandler.GatewayWebhook)

	// Websocket bảng đơn cho quầy
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/orders", websocket.New(handler.OrderBoardSocket))
}
