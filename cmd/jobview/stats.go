package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/almehdi/jobview/internal/aggregate"
)

var statsBy string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate counts for the latest batch",
	Long:  "Groups the latest snapshot by a dimension and prints {key, count} pairs the way the charts would show them.",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsBy, "by", "", "grouping dimension (default from config; one of: company, work_style, location, status, applied_day, received_day, received_hour)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	name := statsBy
	if name == "" {
		name = cfg.Stats.DefaultDimension
	}
	dim, err := aggregate.ParseDimension(name)
	if err != nil {
		return err
	}

	apps, _, err := latestBatch(cfg)
	if err != nil {
		return fmt.Errorf("no snapshot (run `jobview import` or `jobview fetch` first): %w", err)
	}

	buckets := aggregate.GroupBy(apps, dim)

	fmt.Printf("%-30s %s\n", string(dim), "count")
	fmt.Println(strings.Repeat("─", 36))
	for _, bucket := range buckets {
		fmt.Printf("%-30s %d\n", clip(bucket.Key, 30), bucket.Count)
	}
	return nil
}
