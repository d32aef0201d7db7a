package handler

import (
	"time"

	"github.com/brandongraves08/packstack/internal/adapter/http/middleware"
	redisStore "github.com/brandongraves08/packstack/internal/adapter/storage/redis"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	jsonBodyLimit  = 1 << 20  // 1 MB for JSON endpoints
	imageBodyLimit = 16 << 20 // 16 MB for image uploads
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Providers      *service.ProviderSet
	ComparisonSvc  ports.ComparisonService
	AssistantSvc   ports.AssistantService
	ContentFilter  ports.ContentFilter
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	WeatherSvc     ports.WeatherService
	SearchCache    ports.SearchCache // nil = caching disabled
	CacheTTL       time.Duration
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(cors.Default())

	// Health check
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Assistant ---
	assistantHandler := NewAssistantHandler(deps.AssistantSvc, deps.ContentFilter)
	v1.POST("/chat", middleware.MaxBodySize(jsonBodyLimit), rl("assistant"), assistantHandler.Chat)
	v1.POST("/analyze", middleware.MaxBodySize(imageBodyLimit), rl("assistant"), assistantHandler.Analyze)

	// --- Catalog ---
	catalogHandler := NewCatalogHandler(deps.Providers, deps.SearchCache, deps.CacheTTL, deps.Logger)
	amazon := v1.Group("/amazon")
	{
		amazon.GET("/search", rl("catalog"), catalogHandler.SearchAmazon)
		amazon.GET("/products/:asin", rl("catalog"), catalogHandler.GetAmazonProduct)
	}
	walmart := v1.Group("/walmart")
	{
		walmart.GET("/search", rl("catalog"), catalogHandler.SearchWalmart)
		walmart.GET("/products/:id", rl("catalog"), catalogHandler.GetWalmartProduct)
		walmart.GET("/products/:id/stores", rl("catalog"), catalogHandler.GetWalmartStores)
	}

	// --- Comparison ---
	comparisonHandler := NewComparisonHandler(deps.ComparisonSvc)
	v1.GET("/comparison", rl("comparison"), comparisonHandler.Compare)

	// --- Auth ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth", middleware.MaxBodySize(jsonBodyLimit))
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.GET("/profile", middleware.JWTAuth(deps.TokenSvc, deps.Logger), authHandler.GetProfile)
	}

	// --- Weather ---
	weatherHandler := NewWeatherHandler(deps.WeatherSvc)
	v1.GET("/weather", weatherHandler.GetForecast)

	return r
}
