// Package httpapi exposes the account and session operations over HTTP.
// Identity is carried by a signed session cookie; every request resolves its
// identity from its own cookie only, never from shared state.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authd/internal/logging"
	"github.com/dmitrijs2005/authd/internal/server/auth"
	"github.com/dmitrijs2005/authd/internal/server/config"
	"github.com/dmitrijs2005/authd/internal/server/models"
)

// userService is the slice of the services layer the HTTP surface needs.
type userService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Reissue(ctx context.Context, username string) (string, *models.User, error)
	WhoAmI(ctx context.Context, claims *auth.Claims) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
}

type Server struct {
	address     string
	users       userService
	logger      logging.Logger
	jwtSecret   []byte
	ginMode     string
	corsOrigins []string
	staticDir   string
}

func NewServer(cfg *config.Config, l logging.Logger, us userService) *Server {
	return &Server{
		address:     cfg.EndpointAddr,
		users:       us,
		logger:      l.With("module", "httpapi"),
		jwtSecret:   []byte(cfg.SecretKey),
		ginMode:     cfg.GinMode,
		corsOrigins: strings.Split(cfg.CORSAllowedOrigins, ","),
		staticDir:   cfg.StaticDir,
	}
}

// Handler builds the gin engine with all routes and middleware attached.
func (s *Server) Handler() *gin.Engine {
	gin.SetMode(s.ginMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.corsOrigins
	// Cookies do not cross origins without this.
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/signup", s.handleSignup)
		api.POST("/login", s.handleLogin)
		api.POST("/logout", s.requireAuth(), s.handleLogout)
		api.POST("/token", s.handleToken)
		api.GET("/me", s.handleMe)
		api.GET("/dupl_check", s.handleDuplCheck)
		api.GET("/users/:username", s.handleUserByName)
	}

	if s.staticDir != "" {
		// Front-end files live outside the /api tree; serve them as the
		// fallback so they cannot shadow API routes.
		fileServer := http.FileServer(http.Dir(s.staticDir))
		r.NoRoute(gin.WrapH(fileServer))
	}

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// canceled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "authd"})
}
