package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/vaultbeam/pool-stats-backend/config"
	"github.com/vaultbeam/pool-stats-backend/service/stats"
)

// StatusStore exposes the part of the snapshot store the status endpoint
// needs.
type StatusStore interface {
	LatestBlockHeight(ctx context.Context) (int64, error)
}

// Network bundles one network's stats engine and snapshot store.
type Network struct {
	Name  string
	Stats *stats.Service
	Store StatusStore
}

type Server struct {
	*echo.Echo
	cfg      config.ServerConfig
	networks []Network
	byName   map[string]Network
	logger   *zap.Logger
}

func New(cfg config.ServerConfig, networks []Network, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.JSONSerializer = jsonSerializer{}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	byName := make(map[string]Network, len(networks))
	for _, n := range networks {
		byName[n.Name] = n
	}
	s := &Server{e, cfg, networks, byName, logger}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.GET("/status", s.GetStatus)
	s.GET("/stats", s.GetStats)
	s.GET("/stats/:network", s.GetNetworkStats)
}

func (s *Server) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(ctx)
}
