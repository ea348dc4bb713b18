package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"salonbook/internal/config"
	"salonbook/internal/database"
	"salonbook/internal/middleware"
	"salonbook/internal/modules/admin"
	"salonbook/internal/modules/booking"
	"salonbook/internal/modules/catalog"
	"salonbook/internal/modules/events"
	"salonbook/internal/modules/payment"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/pkg/logger"
	"salonbook/internal/pkg/mailer"
	"salonbook/internal/pkg/metrics"
	"salonbook/internal/pkg/mollie"
	"salonbook/internal/pkg/ratelimit"
	"salonbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	l := logger.Init()
	defer func() { _ = l.Sync() }()

	metrics.Register()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zap.L().Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		zap.L().Fatal("migration failed", zap.Error(err))
	}

	salonRepo := repository.NewSalonRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow)
		zap.L().Info("rate limiting backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	mollieClient := mollie.New(cfg.MollieAPIKey, cfg.MollieBaseURL)
	mail := mailer.New(cfg.EmailServiceURL, cfg.EmailSecret)
	hub := events.NewHub()
	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	catalogService := catalog.NewService(salonRepo, serviceRepo, staffRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(
		bookingRepo, salonRepo, serviceRepo, staffRepo, paymentRepo,
		mollieClient, mail, hub,
	)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(
		bookingRepo, salonRepo, paymentRepo, mollieClient, mail, hub,
		payment.Config{SiteURL: cfg.SiteURL, WebhookURL: cfg.WebhookURL()},
	)
	paymentHandler := payment.NewHandler(paymentService)

	adminService := admin.NewService(salonRepo, staffRepo, bookingRepo)
	adminHandler := admin.NewHandler(adminService)

	eventsHandler := events.NewHandler(hub)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/salons/:slug", catalogHandler.GetSalon)
		api.GET("/slots", catalogHandler.ListSlots)

		api.POST("/bookings", middleware.RateLimit(limiter), bookingHandler.Create)
		api.GET("/bookings/:id", bookingHandler.Get)
		api.POST("/bookings/:id/cancel", bookingHandler.Cancel)

		api.POST("/payments", paymentHandler.Initiate)
		api.POST("/payments/webhook", paymentHandler.Webhook)
		api.GET("/payments/status/:bookingId", paymentHandler.Status)

		protected := api.Group("/admin")
		protected.Use(middleware.JWTAuth(jwtService), middleware.AdminOnly())
		{
			protected.GET("/agenda", adminHandler.DayAgenda)
			protected.POST("/bookings/:id/cancel", bookingHandler.Cancel)
			protected.POST("/bookings/:id/no-show", bookingHandler.NoShow)
			protected.PUT("/schedules", adminHandler.UpsertSchedule)
			protected.POST("/blocks", adminHandler.CreateBlock)
			protected.DELETE("/blocks/:id", adminHandler.DeleteBlock)
			protected.GET("/events", eventsHandler.Subscribe)
		}
	}

	zap.L().Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
