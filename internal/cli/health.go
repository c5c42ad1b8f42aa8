package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the game server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			start := time.Now()
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}
			result.Server = cfg.ServerURL
			result.LatencyMs = time.Since(start).Milliseconds()

			NewOutputTo(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}
