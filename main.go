package main

import (
	"dessert_shop/config"
	"dessert_shop/database"
	"dessert_shop/handler"
	"dessert_shop/helper"
	"dessert_shop/queue"
	"dessert_shop/router"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Signature",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	var producer *queue.Producer
	if brokers := config.Config("KAFKA_BROKERS"); brokers != "" {
		producer = queue.NewProducer(strings.Split(brokers, ","), config.Config("KAFKA_TOPIC"))
	}

	gateway := handler.NewGatewayClient()
	notifier := &handler.OrderNotifier{Producer: producer}
	reconciler := &handler.Reconciler{DB: database.DB, Notifier: notifier}

	orderHandler := handler.NewOrderHandler(gateway)
	paymentHandler := handler.NewPaymentHandler(gateway, reconciler)

	helper.StartOrderExpiryScheduler()
	defer helper.StopOrderExpiryScheduler()
	helper.StartSlotBannerScheduler()
	defer helper.StopSlotBannerScheduler()

	router.SetupRoutes(app, orderHandler, paymentHandler)
	log.Fatal(app.Listen(":8002"))
}
