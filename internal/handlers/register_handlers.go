package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"

	"github.com/smirnov-vv/ipledger/cmd/docs"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/middleware"
	"github.com/smirnov-vv/ipledger/internal/platform/config"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires every HTTP route onto the engine: the public auth and
// health routes, the JWT-protected /api/v1 group and the admin subgroup.
// Admin authorization itself is enforced in the services; the /admin prefix
// only groups the routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store portsrepo.Store, sc *portssvc.ServiceContainer, limiterInstance *limiter.Limiter) {
	registerOperationKindValidator()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth", middleware.RateLimit(limiterInstance))
	registerAuthRoutes(auth, cfg.BotToken, sc.User, sc.Token)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		registerOperationRoutes(v1, store, sc.Operation, sc.Ledger)
		registerDebtRoutes(v1, store, sc.Debt, sc.Operation)
		registerEntityRoutes(v1, sc.Entity)
		registerUserRoutes(v1, sc.User)
		registerReportingRoutes(v1, sc.Reporting)

		admin := v1.Group("/admin")
		registerEntityAdminRoutes(admin, sc.Entity)
		registerUserAdminRoutes(admin, sc.User)
	}

	registerSwaggerRoutes(r, cfg)
}

// registerOperationKindValidator registers the "opkind" binding rule used by
// dto.OperationRequest.
func registerOperationKindValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("opkind", func(fl validator.FieldLevel) bool {
		kind := domain.OperationKind(fl.Field().String())
		for _, known := range domain.KnownOperationKinds {
			if kind == known {
				return true
			}
		}
		return false
	})
}

func registerSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// No swagger in prod.
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
