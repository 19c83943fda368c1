package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/innovatefest/hackathon-api/internal/auth"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/middleware"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/services"
	"github.com/innovatefest/hackathon-api/pkg/config"
)

// Dependencies are what the routes need beyond the engine
type Dependencies struct {
	Services *services.Services
	JWT      *auth.JWTService
	DB       HealthChecker
	Timeout  time.Duration
}

// NewRouter creates the engine with the middleware chain. Security headers
// are sent in production or when ENABLE_SECURITY is set. limiter may be
// nil, which disables rate limiting.
func NewRouter(cfg *config.Config, log logger.Logger, limiter middleware.RateLimiter) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		return nil, err
	}

	r.Use(gin.Recovery())
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.MetricsMiddleware())
	if cfg.IsSecurityEnabled() {
		r.Use(middleware.SecurityHeadersMiddleware())
	}
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))
	if limiter != nil {
		r.Use(middleware.RateLimitingMiddleware(limiter, log))
	}

	return r, nil
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, deps Dependencies) {
	svc := deps.Services

	authHandler := NewAuthHandler(svc.Auth, deps.Timeout)
	importHandler := NewImportHandler(svc.Roster, deps.Timeout)
	teamHandler := NewTeamHandler(svc.Teams, deps.Timeout)
	judgeHandler := NewJudgeHandler(svc.Scoring, deps.Timeout)
	certificateHandler := NewCertificateHandler(svc.Certificates, deps.Timeout)
	dashboardHandler := NewDashboardHandler(svc.Dashboard, deps.Timeout)
	healthHandler := NewHealthHandler(deps.DB)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/auth/login", authHandler.Login)
		public.GET("/health", healthHandler.Health)
		public.GET("/certificates/verify/:id", certificateHandler.Verify)
	}

	adminOnly := auth.RequireRole(models.RoleAdmin)

	// Protected routes
	protected := r.Group("/api")
	protected.Use(auth.JWTMiddleware(deps.JWT))
	{
		protected.POST("/users", adminOnly, authHandler.CreateUser)

		// Teams
		protected.POST("/teams/import", adminOnly, importHandler.Import)
		protected.GET("/teams/search", teamHandler.Search)
		protected.GET("/teams/leaderboard", adminOnly, teamHandler.Leaderboard)
		protected.GET("/teams/:id", teamHandler.Get)
		protected.PUT("/teams/:id", adminOnly, teamHandler.Update)

		// Judging
		protected.GET("/scoring/criteria", judgeHandler.Criteria)
		protected.GET("/judges/:judgeId/teams", auth.RequireSelfOrAdmin("judgeId"), judgeHandler.ListTeams)
		protected.POST("/judges/:judgeId/score", auth.RequireSelf("judgeId"), judgeHandler.SubmitScore)
		protected.POST("/judges/:judgeId/assignments", adminOnly, judgeHandler.AssignTeams)

		// Certificates
		protected.POST("/certificates/generate", adminOnly, certificateHandler.Generate)

		protected.GET("/dashboard/stats", dashboardHandler.Stats)
	}
}
