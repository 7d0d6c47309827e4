package cmd

import "github.com/spf13/cobra"

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poolstats",
		Short: "pool yield stats backend",
	}
	cmd.AddCommand(ServerCmd())
	cmd.AddCommand(EnsureIndexesCmd())
	return cmd
}
