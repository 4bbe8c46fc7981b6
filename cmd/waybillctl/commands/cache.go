package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCacheCommand creates the cache admin command group.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the local response cache",
	}

	cmd.AddCommand(newCacheStatsCommand())
	cmd.AddCommand(newCacheClearCommand())
	cmd.AddCommand(newCacheSweepCommand())

	return cmd
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache traffic counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			stats := client.Cache().GetStats()

			if handled, err := renderStructured(stats); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Metric", "Value")

			_ = table.Append("Hits", formatInt(stats.Hits))
			_ = table.Append("Misses", formatInt(stats.Misses))
			_ = table.Append("Sets", formatInt(stats.Sets))
			_ = table.Append("Hit rate", fmt.Sprintf("%.1f%%", stats.GetHitRate()*100))

			return table.Render()
		},
	}
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Evict all cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Cache().Clear(context.Background())
			if err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}

			fmt.Println("Cache cleared")

			return nil
		},
	}
}

func newCacheSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Evict expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			client.Cache().SweepExpired()
			fmt.Println("Expired entries swept")

			return nil
		},
	}
}
