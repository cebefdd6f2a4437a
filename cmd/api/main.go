package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"cricketleague/internal/database"
	"cricketleague/internal/middleware"
	"cricketleague/internal/modules/admin"
	"cricketleague/internal/modules/events"
	"cricketleague/internal/modules/fees"
	"cricketleague/internal/modules/payment"
	"cricketleague/internal/modules/registration"
	jwtsvc "cricketleague/internal/pkg/jwt"
	"cricketleague/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "league.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	registrationRepo := repository.NewRegistrationRepository(db)
	attemptRepo := repository.NewPaymentAttemptRepository(db)
	feeConfigRepo := repository.NewFeeConfigRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	hub := events.NewHub()
	defer hub.Close()
	eventsHandler := events.NewHandler(hub, log.Printf)

	registrationService := registration.NewService(registrationRepo, hub)
	registrationHandler := registration.NewHandler(registrationService)

	feeService := fees.NewService(feeConfigRepo, log.Printf)
	feeHandler := fees.NewHandler(feeService)

	gateway := payment.NewRazorpayGateway(
		os.Getenv("RAZORPAY_KEY_ID"),
		os.Getenv("RAZORPAY_KEY_SECRET"),
		log.Printf,
	)
	paymentService := payment.NewService(
		attemptRepo,
		registrationService,
		registrationRepo,
		feeService,
		gateway,
		hub,
		log.Printf,
	)
	paymentHandler := payment.NewHandler(paymentService, log.Printf)

	adminService := admin.NewService(adminRepo, registrationRepo, attemptRepo, j)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		registrationHandler.RegisterRoutes(v1)
		feeHandler.RegisterRoutes(v1)
		paymentHandler.RegisterRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)

		// protected (admin endpoints)
		protected := v1.Group("/")
		protected.Use(authMiddleware(j))
		{
			adminHandler.RegisterProtectedRoutes(protected)
			eventsHandler.RegisterRoutes(protected)
		}
	}

	addr := ":" + envOrDefault("PORT", "8080")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func authMiddleware(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing Authorization header",
				},
			})
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid Authorization header",
				},
			})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Empty token",
				},
			})
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid token",
				},
			})
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)

		c.Next()
	}
}
