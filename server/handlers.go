package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vaultbeam/pool-stats-backend/schema"
)

// GetStats computes yield statistics for every configured network. Networks
// share no state, so they run concurrently; any store failure aborts the
// whole request rather than returning a partial set.
func (s *Server) GetStats(c echo.Context) error {
	resp := schema.GetStatsResponse{
		Networks: make(map[string][]schema.PoolsStats, len(s.networks)),
	}
	var mtx sync.Mutex
	g, ctx := errgroup.WithContext(c.Request().Context())
	for _, n := range s.networks {
		n := n
		g.Go(func() error {
			ps, err := n.Stats.AllPoolStats(ctx)
			if err != nil {
				return fmt.Errorf("compute %s pool stats: %w", n.Name, err)
			}
			mtx.Lock()
			resp.Networks[n.Name] = ps
			mtx.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to compute pool stats", zap.Error(err))
		return err
	}
	resp.UpdatedAt = time.Now().UTC()
	return c.JSON(http.StatusOK, resp)
}

// GetNetworkStats computes yield statistics for a single network.
func (s *Server) GetNetworkStats(c echo.Context) error {
	name := c.Param("network")
	n, ok := s.byName[name]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown network %q", name))
	}
	ps, err := n.Stats.AllPoolStats(c.Request().Context())
	if err != nil {
		s.logger.Error("failed to compute pool stats", zap.String("network", name), zap.Error(err))
		return fmt.Errorf("compute %s pool stats: %w", name, err)
	}
	return c.JSON(http.StatusOK, schema.GetNetworkStatsResponse{
		Network:   name,
		Stats:     ps,
		UpdatedAt: time.Now().UTC(),
	})
}

// GetStatus reports the newest snapshot block height per network.
func (s *Server) GetStatus(c echo.Context) error {
	resp := schema.GetStatusResponse{
		Networks: make(map[string]schema.GetStatusResponseNetwork, len(s.networks)),
	}
	for _, n := range s.networks {
		h, err := n.Store.LatestBlockHeight(c.Request().Context())
		if err != nil {
			return fmt.Errorf("get %s latest block height: %w", n.Name, err)
		}
		resp.Networks[n.Name] = schema.GetStatusResponseNetwork{LatestBlockHeight: h}
	}
	return c.JSON(http.StatusOK, resp)
}
