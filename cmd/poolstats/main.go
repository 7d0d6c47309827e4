package main

import (
	"os"

	"github.com/vaultbeam/pool-stats-backend/cmd/poolstats/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
