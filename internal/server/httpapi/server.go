// Package httpapi exposes the tracker services over a JSON HTTP API built
// on gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/climatetracker/internal/logging"
	"github.com/dmitrijs2005/climatetracker/internal/server/chart"
	"github.com/dmitrijs2005/climatetracker/internal/server/services"
	"github.com/gin-gonic/gin"
)

// shutdownTimeout bounds how long in-flight requests may take to finish
// once the server is asked to stop.
const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	tracker   *services.TrackerService
	exports   *services.ExportService
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us *services.UserService, ts *services.TrackerService,
	es *services.ExportService, secretKey string) *Server {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		tracker:   ts,
		exports:   es,
		jwtSecret: []byte(secretKey),
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	api.GET("/ping", s.ping)

	usersGroup := api.Group("/users")
	usersGroup.POST("/register", s.register)
	usersGroup.POST("/login", s.login)
	usersGroup.POST("/refresh", s.refresh)

	authed := api.Group("", s.accessTokenRequired())
	authed.POST("/emissions/preview", s.preview)
	authed.POST("/emissions", s.calculate)
	authed.GET("/emissions/history", s.history)
	authed.GET("/emissions/chart.svg", s.chartHandler(chart.FormatSVG))
	authed.GET("/emissions/chart.png", s.chartHandler(chart.FormatPNG))
	authed.POST("/emissions/export", s.export)
	authed.GET("/leaderboard", s.leaderboard)
	authed.GET("/prediction", s.prediction)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API route not found"})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(context.Background(), "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	err = srv.Serve(listen)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}
