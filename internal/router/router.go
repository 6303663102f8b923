package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "quotedesk/docs" // registers the OpenAPI document
	"quotedesk/internal/domain"
	"quotedesk/internal/handler"
	"quotedesk/internal/metrics"
	"quotedesk/internal/middleware"
	"quotedesk/internal/port"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	validator port.TokenValidator,
	log *zap.Logger,
	m *metrics.Metrics,
	metricsHandler http.Handler,
	corsOrigins []string,
	quotationH *handler.QuotationHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log, m))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(validator))

	quotations := v1.Group("/quotations")
	quotations.POST("/preview", quotationH.Preview)
	quotations.POST("", quotationH.Create)
	quotations.GET("", quotationH.List)
	quotations.GET("/export", exportH.Register)
	quotations.GET("/:id", quotationH.GetByID)
	quotations.PUT("/:id", quotationH.Update)
	quotations.PATCH("/:id/context", quotationH.ChangeContext)
	quotations.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), quotationH.Delete)

	// Exports and delivery
	quotations.GET("/:id/workbook", exportH.Workbook)
	quotations.POST("/:id/archive", exportH.Archive)
	quotations.POST("/:id/send", exportH.Send)

	return r
}
