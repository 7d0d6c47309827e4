package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/vaultbeam/pool-stats-backend/config"
	"github.com/vaultbeam/pool-stats-backend/service/store"
)

func EnsureIndexesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensure-indexes",
		Short: "create snapshot collection indexes for all configured networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load("config.yml")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Server.Validate(); err != nil {
				return fmt.Errorf("validate server config: %w", err)
			}

			logger, err := cfg.Server.Log.Build()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer logger.Sync()

			mc, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Server.MongoDB.URI))
			if err != nil {
				return fmt.Errorf("connect mongodb: %w", err)
			}
			defer mc.Disconnect(context.Background())

			for _, nc := range cfg.Server.Networks {
				ss := store.NewService(cfg.Server.MongoDB, mc, nc.SnapshotCollection)
				names, err := ss.EnsureDBIndexes(context.Background())
				if err != nil {
					return fmt.Errorf("ensure indexes for network %q: %w", nc.Name, err)
				}
				logger.Info("ensured indexes", zap.String("network", nc.Name), zap.Strings("indexes", names))
			}

			return nil
		},
	}
	return cmd
}
