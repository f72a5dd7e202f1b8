package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/almehdi/jobview/internal/remote"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch applications from the remote store",
	Long:  "Reads the hosted application store, resolves locations, and archives the enriched batch. Requires remote.base_url in the config.",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if cfg.Remote.BaseURL == "" {
		return fmt.Errorf("remote.base_url is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := remote.NewClient(cfg.Remote.BaseURL, &http.Client{Timeout: 30 * time.Second})

	lastUpdate, err := client.LastUpdate(ctx)
	if err != nil {
		// Non-blocking: the timestamp is informational only.
		logger.Warn("could not read last-update timestamp", "error", err)
	} else if lastUpdate != "" {
		logger.Info("remote store", "last_update", lastUpdate)
	}

	batch, err := client.FetchApplications(ctx)
	if err != nil {
		// A failed fetch leaves any archived batch intact.
		return fmt.Errorf("remote fetch failed (existing snapshot left untouched): %w", err)
	}
	logger.Info("remote batch fetched", "records", len(batch))

	result, err := resolveAndSave(ctx, cfg, logger, "remote:"+cfg.Remote.BaseURL, batch)
	if err != nil {
		return err
	}

	printBatch(result.Applications)
	printStats(result.Stats)
	return nil
}
