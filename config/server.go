package config

import (
	"fmt"

	"go.uber.org/zap"
)

var DefaultServerConfig = ServerConfig{
	Debug:    false,
	BindAddr: "0.0.0.0:8080",
	MongoDB:  DefaultMongoDBConfig,
	Log:      zap.NewProductionConfig(),
}

type ServerConfig struct {
	Debug    bool            `yaml:"debug"`
	BindAddr string          `yaml:"bind_addr"`
	Networks []NetworkConfig `yaml:"networks"`
	MongoDB  MongoDBConfig   `yaml:"mongodb"`
	Log      zap.Config      `yaml:"log"`
}

func (cfg ServerConfig) Validate() error {
	if cfg.BindAddr == "" {
		return fmt.Errorf("'bind_addr' is required")
	}
	if len(cfg.Networks) == 0 {
		return fmt.Errorf("'networks' is empty")
	}
	seen := make(map[string]struct{})
	for _, nc := range cfg.Networks {
		if err := nc.Validate(); err != nil {
			return fmt.Errorf("validate 'networks' field: %w", err)
		}
		if _, ok := seen[nc.Name]; ok {
			return fmt.Errorf("duplicate network name %q", nc.Name)
		}
		seen[nc.Name] = struct{}{}
	}
	if err := cfg.MongoDB.Validate(); err != nil {
		return fmt.Errorf("validate 'mongodb' field: %w", err)
	}
	return nil
}

// NetworkConfig binds a network name to the collection its snapshots live in.
type NetworkConfig struct {
	Name               string `yaml:"name"`
	SnapshotCollection string `yaml:"snapshot_collection"`
}

func (cfg NetworkConfig) Validate() error {
	if cfg.Name == "" {
		return fmt.Errorf("'name' is required")
	}
	if cfg.SnapshotCollection == "" {
		return fmt.Errorf("network %q: 'snapshot_collection' is required", cfg.Name)
	}
	return nil
}

var DefaultMongoDBConfig = MongoDBConfig{
	URI: "mongodb://localhost:27017",
	DB:  "poolstats",
}

type MongoDBConfig struct {
	URI string `yaml:"uri"`
	DB  string `yaml:"db"`
}

func (cfg MongoDBConfig) Validate() error {
	if cfg.URI == "" {
		return fmt.Errorf("'uri' is required")
	}
	if cfg.DB == "" {
		return fmt.Errorf("'db' is required")
	}
	return nil
}
