package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/almehdi/jobview/internal/config"
	"github.com/almehdi/jobview/internal/geocode"
	"github.com/almehdi/jobview/internal/model"
	"github.com/almehdi/jobview/internal/ratelimit"
	"github.com/almehdi/jobview/internal/resolve"
	"github.com/almehdi/jobview/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobview",
	Short: "Personal job-application dashboard",
	Long:  "jobview imports a job-application export, resolves locations to map coordinates, and presents the batch as a searchable table, stats, and map.",
	// Default to `browse` so that `jobview` with no args opens the dashboard.
	RunE: runBrowse,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBVIEW_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBVIEW_CONFIG env var > "./config.yaml".
// A missing default file is not an error; built-in defaults apply so
// importing a file works with zero setup.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("JOBVIEW_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// buildPipeline wires the geocode client, the serial rate limiter, and the
// resolution pipeline from config.
func buildPipeline(cfg *config.Config, logger *slog.Logger) *resolve.Pipeline {
	client := geocode.NewClient(
		geocode.WithBaseURL(cfg.Geocoder.BaseURL),
		geocode.WithUserAgent(cfg.Geocoder.UserAgent),
		geocode.WithHTTPClient(&http.Client{Timeout: cfg.Geocoder.Timeout}),
	)
	limiter := ratelimit.New(cfg.Geocoder.MinInterval)
	return resolve.NewPipeline(client, limiter, cfg.Geocoder.RetryTransport, logger)
}

// resolveAndSave runs the pipeline over a batch and archives the result.
func resolveAndSave(ctx context.Context, cfg *config.Config, logger *slog.Logger, source string, batch []model.Application) (resolve.Result, error) {
	pipeline := buildPipeline(cfg, logger)
	result, err := pipeline.Run(ctx, batch)
	if err != nil {
		return resolve.Result{}, fmt.Errorf("resolve locations: %w", err)
	}

	snapshots, err := store.Open(cfg.Snapshot.Path)
	if err != nil {
		return resolve.Result{}, err
	}
	defer snapshots.Close()

	if _, err := snapshots.Save(source, result.Applications, result.Stats); err != nil {
		return resolve.Result{}, fmt.Errorf("save snapshot: %w", err)
	}
	return result, nil
}

// latestBatch loads the most recent snapshot.
func latestBatch(cfg *config.Config) ([]model.Application, model.ResolutionStats, error) {
	snapshots, err := store.Open(cfg.Snapshot.Path)
	if err != nil {
		return nil, model.ResolutionStats{}, err
	}
	defer snapshots.Close()
	return snapshots.Latest()
}

func printStats(stats model.ResolutionStats) {
	fmt.Printf("\n%d applications: %d pre-resolved, %d geocoded, %d without position\n",
		stats.Total, stats.PreResolved, stats.NewlyResolved, stats.Failed)
}

func printBatch(apps []model.Application) {
	fmt.Printf("%-30s %-20s %-22s %-12s %s\n", "Title", "Company", "Location", "Status", "Applied")
	fmt.Println(strings.Repeat("─", 108))

	for _, app := range apps {
		fmt.Printf("%-30s %-20s %-22s %-12s %s\n",
			clip(app.Title, 30), clip(app.Company, 20), clip(app.Location, 22),
			clip(app.Status, 12), app.AppliedAt.Raw)
	}
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
