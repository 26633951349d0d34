package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/englishhub/sitting-backend/internal/auth"
	"github.com/englishhub/sitting-backend/internal/config"
	"github.com/englishhub/sitting-backend/internal/handler"
	"github.com/englishhub/sitting-backend/internal/middleware"
	"github.com/englishhub/sitting-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Session *handler.SessionHandler
	WS      *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	tokens *auth.TokenService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for sitting starts (10 per minute per IP); a start may
	// fan out two content service calls, so it is the one expensive route.
	startLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Sitting Group (JWT) ────────────────────────────────────────
	sittings := router.Group("/api/v1/sittings")
	sittings.Use(
		middleware.RequireUserJWT(tokens),
		middleware.NoStore(),
	)
	{
		sittings.POST("/exams/:exam_id/start", startLimiter.Middleware(), handlers.Session.StartSitting)
		sittings.GET("/exams/:exam_id/paper", handlers.Session.GetPaper)
		sittings.GET("/exams/:exam_id/state", handlers.Session.GetState)
		sittings.PUT("/exams/:exam_id/answers", handlers.Session.PutAnswer)
		sittings.POST("/exams/:exam_id/flags", handlers.Session.ToggleFlag)
		sittings.POST("/exams/:exam_id/parts/:part/activate", handlers.Session.ActivatePart)
		sittings.POST("/exams/:exam_id/navigate", handlers.Session.Navigate)
		sittings.POST("/exams/:exam_id/submit/intent", handlers.Session.SubmitIntent)
		sittings.POST("/exams/:exam_id/submit/cancel", handlers.Session.SubmitCancel)
		sittings.POST("/exams/:exam_id/submit/confirm", handlers.Session.SubmitConfirm)
		sittings.POST("/exams/:exam_id/submit/retry", handlers.Session.SubmitRetry)
	}

	// ─── 2. WebSocket Group (WS Auth) ──────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(tokens))
	{
		ws.GET("/sittings/exams/:exam_id/stream", handlers.WS.SittingStream)
	}

	return router
}
