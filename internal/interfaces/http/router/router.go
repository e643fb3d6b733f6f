package router

import (
	"github.com/gin-gonic/gin"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/auth"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/config"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/logger"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/handler"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Sale      *handler.SaleHandler
	Inventory *handler.InventoryHandler
	Owner     *handler.OwnerHandler
	Invoice   *handler.InvoiceHandler
	Report    *handler.ReportHandler
}

// New builds the gin engine with middleware and all routes registered.
// Everything under /api/v1 except the login endpoint requires a token.
func New(cfg *config.Config, jwtService *auth.JWTService, zapLogger *zap.Logger, handlers Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(zapLogger),
		logger.Recovery(zapLogger),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
		middleware.Secure(),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	handlers.System.RegisterRoutes(engine)

	api := engine.Group("/api/v1")
	handlers.Auth.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.JWTAuth(jwtService))
	handlers.Auth.RegisterRoutes(protected)
	handlers.Sale.RegisterRoutes(protected)
	handlers.Inventory.RegisterRoutes(protected)
	handlers.Owner.RegisterRoutes(protected)
	handlers.Invoice.RegisterRoutes(protected)
	handlers.Report.RegisterRoutes(protected)

	return engine
}
