package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/cmd/docs"
	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/middleware"
	"github.com/SscSPs/currency_exchange_tracker/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const apiBasePath = "/api/v1"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// metrics serves /metrics; pass nil to use the default Prometheus registry.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metrics http.Handler,
) error {
	if err := registerValidators(); err != nil {
		return err
	}
	basketLimiter, err := middleware.NewIPLimiter(cfg.BasketRateLimit)
	if err != nil {
		return err
	}
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r.Use(corsMiddleware(cfg))
	r.SetHTMLTemplate(dashboardTemplates)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics))
	r.GET("/", newDashboardHandler(services.Dashboard).showDashboard)

	setupAPIV1Routes(r, services, middleware.RateLimit(basketLimiter))
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, basketLimit gin.HandlerFunc) {
	v1 := r.Group(apiBasePath)

	registerDashboardRoutes(v1, services.Dashboard)
	registerExchangeRoutes(v1, services.Dashboard, services.Reports)
	registerBasketRoutes(v1, services.Basket, basketLimit)
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = apiBasePath
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
