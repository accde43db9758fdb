package handlers

import (
	"log/slog"

	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/middleware"
	"github.com/awqafio/waqf_ledger/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	r.Use(cors.New(corsConfig(cfg)))

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.ActorMiddleware(), rateLimitMiddleware(cfg))

	registerAccountRoutes(v1, services.Account)
	registerFiscalYearRoutes(v1, services.FiscalYear)
	registerTemplateRoutes(v1, services.Template)
	registerEntryRoutes(v1, services.Posting)
}

// rateLimitMiddleware builds an IP-keyed limiter from the configured rate.
func rateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		slog.Warn("Invalid RATE_LIMIT value, falling back to default",
			slog.String("configured", cfg.RateLimit),
			slog.String("default", config.DefaultRateLimit))
		rate, _ = limiter.NewRateFromFormatted(config.DefaultRateLimit)
	}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Actor-ID")
	return corsCfg
}

// registerCustomValidators installs request-level validation rules that gin's
// binding layer applies before requests reach the services.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// Amounts must be strictly positive before they reach the engine.
	_ = v.RegisterValidation("positivedecimal", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.GreaterThan(decimal.Zero)
	})
}
