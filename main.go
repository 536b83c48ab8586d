package main

import (
	"context"
	"fmt"
	"log"

	"mealhub/configs"
	"mealhub/middlewares"
	"mealhub/pkg/events"
	"mealhub/pkg/gateway"
	"mealhub/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()
	configs.SetupDatabase()

	if err := configs.SeedAdmin(cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(); err != nil {
			log.Fatalf("seed demo failed: %v", err)
		}
	}

	// Event bus: services publish here after commit. Reactors and the Kafka
	// forwarder run out-of-band so they can never roll a transaction back.
	bus := events.NewBus()
	if cfg.KafkaBrokers != "" {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		forward := func(ctx context.Context, e events.Event) { kp.Publish(ctx, e) }
		for _, name := range []string{
			events.OrderCreated, events.OrderStatusChanged,
			events.DeliveryAssigned, events.PaymentCompleted,
		} {
			bus.Subscribe(name, forward)
		}
	}

	gw := gateway.NewChapa(cfg.ChapaBaseURL, cfg.ChapaSecretKey)
	svcs := routes.BuildServices(db, cfg, gw, bus)

	// Auto-dispatch: every new order immediately gets the nearest available
	// partner offered to it; no partner online is not an error here.
	bus.Subscribe(events.OrderCreated, func(ctx context.Context, e events.Event) {
		orderID, ok := e.Payload["orderId"].(uint)
		if !ok {
			return
		}
		a, err := svcs.Dispatch.AssignNearest(orderID)
		if err != nil {
			logrus.WithError(err).WithField("orderId", orderID).Error("auto dispatch")
			return
		}
		if a == nil {
			logrus.WithField("orderId", orderID).Info("auto dispatch: no partner available")
		}
	})

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, db, cfg, svcs)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
