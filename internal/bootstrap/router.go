package bootstrap

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/portfolio-site/portfolio-backend/internal/api/http"
	apimw "github.com/portfolio-site/portfolio-backend/internal/api/http/middleware"
	"github.com/portfolio-site/portfolio-backend/internal/auth"
	authhttp "github.com/portfolio-site/portfolio-backend/internal/auth/http"
	authmw "github.com/portfolio-site/portfolio-backend/internal/auth/middleware"
	projecthttp "github.com/portfolio-site/portfolio-backend/internal/projects/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Logger         *zap.Logger
	DB             *sql.DB
	Redis          *redis.Client
	Projects       projecthttp.Service
	AllowedOrigins []string
	TrustedProxies []string
	RateLimitRPS   float64
	RateLimitBurst int

	// Optional identity sources. Nil disables the corresponding sign-in path.
	Verifier auth.TokenVerifier
	Sessions *auth.SessionManager
	OAuth    *authhttp.Handler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	logger := dep.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	// nil disables forwarded headers, so the rate limiter keys on the socket peer
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, ignoring forwarded headers", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID(logger))
	r.Use(apimw.CORS(dep.AllowedOrigins))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	if dep.Verifier != nil {
		r.Use(authmw.FirebaseIdentity(dep.Verifier, logger))
	}
	if dep.Sessions != nil {
		r.Use(authmw.SessionIdentity(dep.Sessions))
	}

	if dep.OAuth != nil {
		dep.OAuth.Register(r.Group("/auth"))
	}

	api := r.Group("/api/v1")

	limiter := apimw.NewRateLimiter(dep.RateLimitRPS, dep.RateLimitBurst)
	projecthttp.New(dep.Projects).Register(api.Group("/projects"), limiter.Middleware())

	return r
}
