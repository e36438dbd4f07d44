package main

import (
	"context"
	"log"
	"os"
	"time"

	"shop-service/internal/controllers/http"
	"shop-service/internal/infra/metrics"
	mmysql "shop-service/internal/infra/mysql"
	"shop-service/internal/infra/rabbitmq"
	mysqlrepo "shop-service/internal/repository/mysql"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	orderRepo := mysqlrepo.NewOrderRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	shippingRepo := mysqlrepo.NewShippingRepository(db)
	paymentRepo := mysqlrepo.NewPaymentRepository(db)
	customerRepo := mysqlrepo.NewCustomerRepository(db)
	addressRepo := mysqlrepo.NewAddressRepository(db)
	methodRepo := mysqlrepo.NewPaymentMethodRepository(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "order.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	cartService := services.NewCartService(orderRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, shippingRepo, paymentRepo, addressRepo, customerRepo, publisher)
	catalogService := services.NewCatalogService(productRepo)
	profileService := services.NewProfileService(customerRepo, addressRepo, methodRepo)

	if host := os.Getenv("REDIS_HOST"); host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         host + ":6379",
			DB:           0,
			PoolSize:     100,
			MinIdleConns: 10,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		catalogService.SetRedisClient(redisClient)

		go func() {
			time.Sleep(5 * time.Second)
			if err := catalogService.WarmupProductCache(context.Background(), []uint64{1, 2, 3, 4, 5}); err != nil {
				log.Printf("Failed to warm up cache: %v", err)
			} else {
				log.Println("Cache warmed up successfully")
			}
		}()
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	auth := http.NewAuthMiddleware(secret, 24*time.Hour)

	handler := http.NewHandler(cartService, orderService, catalogService, profileService, auth)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r, metrics.NewServerMetrics("api"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting shop service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
