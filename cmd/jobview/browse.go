package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/almehdi/jobview/internal/aggregate"
	"github.com/almehdi/jobview/internal/browse"
	"github.com/almehdi/jobview/internal/config"
	"github.com/almehdi/jobview/internal/remote"
	"github.com/almehdi/jobview/internal/resolve"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the latest batch interactively (TUI)",
	Long:  "Opens the searchable application table over the latest snapshot. With a remote store configured, `r` re-fetches and re-resolves in the background.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	apps, stats, err := latestBatch(cfg)
	if err != nil {
		return fmt.Errorf("no snapshot to browse (run `jobview import` or `jobview fetch` first): %w", err)
	}

	dim, err := aggregate.ParseDimension(cfg.Stats.DefaultDimension)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; log output would corrupt the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var refresh browse.RefreshFunc
	if cfg.Remote.BaseURL != "" {
		refresh = makeRefresh(cfg, silentLogger)
	}

	return browse.Run(apps, stats, dim, refresh)
}

// makeRefresh builds the background refresh used by the TUI: fetch the
// remote batch, resolve it, archive it. The TUI discards stale results via
// its generation token, so a slow run can never clobber a newer one.
func makeRefresh(cfg *config.Config, logger *slog.Logger) browse.RefreshFunc {
	return func(ctx context.Context) (resolve.Result, error) {
		client := remote.NewClient(cfg.Remote.BaseURL, &http.Client{Timeout: 30 * time.Second})
		batch, err := client.FetchApplications(ctx)
		if err != nil {
			return resolve.Result{}, err
		}
		return resolveAndSave(ctx, cfg, logger, "remote:"+cfg.Remote.BaseURL, batch)
	}
}
