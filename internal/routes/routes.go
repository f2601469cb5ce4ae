package routes

import (
	"bloodbank-backend/internal/handlers"
	"bloodbank-backend/internal/middleware"
	"bloodbank-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options carries the handlers and the middleware settings for SetupRoutes.
type Options struct {
	Requests *handlers.RequestHandler
	Uploads  *handlers.UploadHandler
	Health   *handlers.HealthHandler

	UploadDir      string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         zerolog.Logger
}

func SetupRoutes(r *gin.Engine, opts Options) {
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))

	r.GET("/ping", opts.Health.Ping)
	r.GET("/health", opts.Health.Health)

	// Uploaded reports are served back from the URL returned by /api/upload.
	r.Static(storage.URLPrefix, opts.UploadDir)

	api := r.Group("/api")
	{
		requests := api.Group("/requests")
		{
			requests.POST("", opts.Requests.CreateRequest)
			requests.GET("", opts.Requests.GetRequests)
			requests.GET("/user", opts.Requests.GetRequestsByUser)
			requests.GET("/pending", opts.Requests.GetPendingRequests)
			requests.GET("/:id", opts.Requests.GetRequestByID)
			requests.PUT("/:id", opts.Requests.UpdateRequestStatus)
		}

		api.POST("/upload", opts.Uploads.UploadFile)
	}
}
