package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"inspectdesk/internal/config"
	"inspectdesk/internal/database"
	"inspectdesk/internal/middleware"
	"inspectdesk/internal/modules/admin"
	"inspectdesk/internal/modules/auth"
	"inspectdesk/internal/modules/damages"
	"inspectdesk/internal/modules/events"
	"inspectdesk/internal/modules/orders"
	"inspectdesk/internal/modules/registry"
	"inspectdesk/internal/modules/reports"
	jwtsvc "inspectdesk/internal/pkg/jwt"
	"inspectdesk/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	damageRepo := repository.NewDamageRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := events.NewHub()
	defer hub.Close()
	eventsHandler := events.NewHandler(hub, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService, cfg.UploadDir)

	orderService := orders.NewService(orderRepo, hub)
	orderHandler := orders.NewHandler(orderService)

	damageService := damages.NewService(damageRepo, hub)
	damageHandler := damages.NewHandler(damageService)

	reportService := reports.NewService(orderRepo, damageRepo, cfg.WeekStart)
	reportHandler := reports.NewHandler(reportService)

	adminService := admin.NewService(userRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static("/uploads", cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		eventsHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(authMiddleware(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			registry.Mount(protected, db, hub)
			orderHandler.RegisterRoutes(protected)
			damageHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			adminHandler.RegisterRoutes(protected)
		}
	}

	log.Printf("listening on :%s env=%s week_start=%s", cfg.Port, cfg.AppEnv, cfg.WeekStart)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func authMiddleware(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing or invalid Authorization header",
				},
			})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
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

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}
