package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/slumbersage/gjirafa50/logger"
)

// Options configures the HTTP server
type Options struct {
	Addr       string
	Production bool
}

// Server is the public HTTP API
type Server struct {
	products   ProductService
	categories CategorySource
	keys       KeyValidator
	router     *gin.Engine
	http       *http.Server
	log        *logger.Logger
}

// New creates the server and registers its routes
func New(opts Options, products ProductService, categories CategorySource, keys KeyValidator) *Server {
	if opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		products:   products,
		categories: categories,
		keys:       keys,
		router:     gin.New(),
		log:        logger.ForServer(),
	}
	s.routes()

	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(RequestID(), RequestLogger(s.log), Recovery(s.log), cors.Default())

	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api", APIKeyAuth(s.keys, s.log))
	{
		api.GET("/search", s.handleSearch)
		api.GET("/product/details", s.handleProductDetails)
		api.GET("/categories", s.handleCategories)
		api.GET("/banners", s.handleBanners)
		api.GET("/happy-hours", s.handleHappyHours)
	}
}

// Handler returns the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
