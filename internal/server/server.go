package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ctchen222/ShareBnB/internal/api/controller"
	"ctchen222/ShareBnB/internal/api/middleware"
	"ctchen222/ShareBnB/internal/api/response"
	"ctchen222/ShareBnB/internal/auth"
	"ctchen222/ShareBnB/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "sharebnb-api"

// Pinger reports whether the datastore is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options holds everything the HTTP layer is built from. Revoker and Images may
// be nil; POST /logout and GET /images/*key are only mounted when they are set.
type Options struct {
	Users    *controller.UserController
	Listings *controller.ListingController
	Messages *controller.MessageController
	Images   *controller.ImageController

	Verifier middleware.TokenVerifier
	Revoker  auth.Revoker
	Metrics  *metrics.Metrics
	DB       Pinger

	// CORSOrigins enables CORS for these origins; "*" allows any. Empty disables CORS.
	CORSOrigins []string
}

type Server struct {
	engine *gin.Engine
}

func NewServer(opts Options) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	if len(opts.CORSOrigins) > 0 {
		engine.Use(corsMiddleware(opts.CORSOrigins))
	}
	engine.Use(
		otelgin.Middleware(serviceName),
		middleware.RequestLogger(),
	)
	if opts.Metrics != nil {
		engine.Use(opts.Metrics.Middleware())
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	s := &Server{engine: engine}
	s.registerRoutes(opts)
	return s
}

func (s *Server) registerRoutes(opts Options) {
	r := s.engine
	r.NoRoute(func(c *gin.Context) {
		response.ErrorResponse(c, http.StatusNotFound, response.MsgNotFound)
	})
	r.GET("/healthz", healthz(opts.DB))

	r.POST("/signup", opts.Users.Signup)
	r.POST("/login", opts.Users.Login)
	if opts.Images != nil {
		r.GET("/images/*key", opts.Images.GetImage)
	}

	protected := r.Group("/", middleware.RequireToken(opts.Verifier, opts.Revoker))
	if opts.Revoker != nil {
		protected.POST("/logout", opts.Users.Logout)
	}

	users := protected.Group("/users")
	users.GET("/:username", opts.Users.GetUser)
	users.PATCH("/:username", opts.Users.UpdateUser)
	users.DELETE("/:username/delete", opts.Users.DeleteUser)

	listings := protected.Group("/listings")
	listings.GET("", opts.Listings.Search)
	listings.POST("", opts.Listings.CreateListing)
	listings.GET("/:id", opts.Listings.GetListing)
	listings.PATCH("/:id", opts.Listings.UpdateListing)
	listings.DELETE("/:id", opts.Listings.DeleteListing)

	messages := protected.Group("/messages")
	messages.GET("", opts.Messages.Inbox)
	messages.POST("", opts.Messages.SendMessage)
	messages.DELETE("/:id", opts.Messages.DeleteMessage)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	cfg.MaxAge = 12 * time.Hour
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.PingContext(c.Request.Context()); err != nil {
				slog.ErrorContext(c.Request.Context(), "Health check failed", "error", err)
				response.ErrorResponse(c, http.StatusServiceUnavailable, "datastore unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Engine returns the HTTP handler serving every route.
func (s *Server) Engine() http.Handler {
	return s.engine
}
