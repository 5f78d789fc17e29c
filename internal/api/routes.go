package api

import (
	"alcyxob/coach-log/internal/domain"
	"alcyxob/coach-log/internal/metrics"
	"alcyxob/coach-log/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps bundles what SetupRoutes wires. AuthService and MediaService
// are optional: nil leaves the API open and the media routes unregistered.
type RouterDeps struct {
	SessionService service.SessionService
	AuthService    service.AuthService
	MediaService   service.MediaService
	Metrics        *metrics.Manager
	Gatherer       prometheus.Gatherer
}

func SetupRoutes(router *gin.Engine, deps RouterDeps) {
	sessionHandler := NewSessionHandler(deps.SessionService)
	logHandler := NewLogHandler(deps.SessionService)
	feedbackHandler := NewFeedbackHandler(deps.SessionService)

	router.Use(MetricsMiddleware(deps.Metrics))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")

	// Coach-only routes need a role; without auth everyone acts as anyone.
	coachOnly := []gin.HandlerFunc{}
	protected := apiV1.Group("")
	if deps.AuthService != nil {
		authHandler := NewAuthHandler(deps.AuthService)
		apiV1.POST("/auth/login", authHandler.Login)

		protected.Use(AuthMiddleware(deps.AuthService))
		coachOnly = append(coachOnly, RoleMiddleware(domain.RoleCoach))
	}

	{
		protected.GET("/session", sessionHandler.GetSession)
		protected.PUT("/selection/exercise", sessionHandler.SelectExercise)
		protected.PUT("/selection/day", sessionHandler.SelectDay)

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("/active", sessionHandler.GetActiveExercise)
			exerciseGroup.GET("/:exerciseId/trend", sessionHandler.GetTrend)
			exerciseGroup.GET("/:exerciseId/embed", sessionHandler.GetEmbed)
			exerciseGroup.PUT("/:exerciseId/notes", append(coachOnly, sessionHandler.SetExerciseNotes)...)
		}

		// --- Set Log Routes ---
		logGroup := protected.Group("/logs")
		{
			logGroup.GET("", logHandler.ListLogs)
			logGroup.POST("", logHandler.AddLog)
			logGroup.PATCH("/:logId", logHandler.UpdateLog)
			logGroup.DELETE("/:logId", logHandler.RemoveLog)
		}

		// --- Feedback Routes ---
		feedbackGroup := protected.Group("/feedback")
		{
			feedbackGroup.GET("", feedbackHandler.ListFeedback)
			feedbackGroup.POST("", feedbackHandler.AddFeedback)
		}

		if deps.MediaService != nil {
			mediaHandler := NewMediaHandler(deps.MediaService)
			mediaGroup := protected.Group("/media")
			{
				mediaGroup.POST("/upload-url", mediaHandler.RequestUploadURL)
				mediaGroup.GET("/download-url", mediaHandler.GetDownloadURL)
			}
		}
	}
}
