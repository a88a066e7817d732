package api

import (
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"fleet-maintenance-backend/config"
	"fleet-maintenance-backend/internal/mw"
	"fleet-maintenance-backend/internal/service"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, svc *service.Service, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(svc, webpushOptions)

	authCfg := mw.AuthConfig{
		Disabled: cfg.Auth.Disabled,
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
	}
	adminOnly := mw.RequireRole(authCfg, cfg.Auth.AdminRole)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(rateLimiter)

	maintenance := api.Group("/maintenance")
	maintenance.Use(mw.Authenticated(authCfg))
	{
		maintenance.GET("", handler.ListItems)
		maintenance.POST("", handler.CreateItem)
		maintenance.GET("/summary", caching, handler.Summary)
		maintenance.GET("/overdue", handler.OverdueItems)
		maintenance.GET("/upcoming", handler.UpcomingItems)
		maintenance.GET("/search", handler.SearchItems)
		maintenance.GET("/vehicle/:vehicleId/history", caching, handler.VehicleHistory)
		maintenance.POST("/status/update-bulk", adminOnly, handler.BulkRefreshStatuses)
		maintenance.GET("/analytics/costs", caching, handler.CostAnalytics)
		maintenance.GET("/analytics/trends", caching, handler.Trends)

		maintenance.GET("/technicians", handler.ListTechnicians)
		maintenance.POST("/technicians", handler.CreateTechnician)
		maintenance.GET("/technicians/:id", handler.GetTechnician)
		maintenance.PUT("/technicians/:id", handler.UpdateTechnician)
		maintenance.DELETE("/technicians/:id", adminOnly, handler.DeleteTechnician)

		maintenance.GET("/parts", handler.ListParts)
		maintenance.POST("/parts", handler.CreatePart)
		maintenance.GET("/parts/low-stock", handler.LowStockParts)
		maintenance.GET("/parts/:id", handler.GetPart)
		maintenance.PUT("/parts/:id", handler.UpdatePart)
		maintenance.DELETE("/parts/:id", adminOnly, handler.DeletePart)

		maintenance.GET("/recurring-schedules", handler.ListSchedules)
		maintenance.POST("/recurring-schedules", handler.CreateSchedule)
		maintenance.GET("/recurring-schedules/:id", handler.GetSchedule)
		maintenance.PUT("/recurring-schedules/:id", handler.UpdateSchedule)
		maintenance.POST("/recurring-schedules/:id/execute", handler.ExecuteSchedule)
		maintenance.DELETE("/recurring-schedules/:id", adminOnly, handler.DeleteSchedule)

		maintenance.GET("/:id", handler.GetItem)
		maintenance.PUT("/:id", handler.UpdateItem)
		maintenance.PATCH("/:id", handler.UpdateItem)
		maintenance.DELETE("/:id", adminOnly, handler.DeleteItem)
	}

	alerts := api.Group("/alerts")
	{
		alerts.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
		alerts.GET("/subscriptions", handler.GetSubscription)
		alerts.PUT("/subscriptions", handler.PutSubscription)
		alerts.DELETE("/subscriptions", handler.DeleteSubscription)
	}

	return r
}
