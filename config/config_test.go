package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`server:
  bind_addr: 127.0.0.1:9000
  mongodb:
    uri: mongodb://db:27017
    db: stats
  networks:
    - name: ethereum
      snapshot_collection: poolsshots_ethereum
    - name: bsc
      snapshot_collection: poolsshots_bsc
`), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.Server.BindAddr)
	require.Equal(t, "mongodb://db:27017", cfg.Server.MongoDB.URI)
	require.Equal(t, "stats", cfg.Server.MongoDB.DB)
	require.Equal(t, []NetworkConfig{
		{Name: "ethereum", SnapshotCollection: "poolsshots_ethereum"},
		{Name: "bsc", SnapshotCollection: "poolsshots_bsc"},
	}, cfg.Server.Networks)
	require.NoError(t, cfg.Server.Validate())
}

func TestServerConfigValidate(t *testing.T) {
	valid := func() ServerConfig {
		cfg := DefaultServerConfig
		cfg.Networks = []NetworkConfig{
			{Name: "ethereum", SnapshotCollection: "poolsshots_ethereum"},
		}
		return cfg
	}
	require.NoError(t, valid().Validate())

	for _, tc := range []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"empty bind addr", func(cfg *ServerConfig) { cfg.BindAddr = "" }},
		{"no networks", func(cfg *ServerConfig) { cfg.Networks = nil }},
		{"network without name", func(cfg *ServerConfig) { cfg.Networks[0].Name = "" }},
		{"network without collection", func(cfg *ServerConfig) { cfg.Networks[0].SnapshotCollection = "" }},
		{"duplicate network names", func(cfg *ServerConfig) {
			cfg.Networks = append(cfg.Networks, cfg.Networks[0])
		}},
		{"empty mongodb uri", func(cfg *ServerConfig) { cfg.MongoDB.URI = "" }},
		{"empty mongodb db", func(cfg *ServerConfig) { cfg.MongoDB.DB = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
