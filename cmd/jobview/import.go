package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/almehdi/jobview/internal/importer"
	"github.com/almehdi/jobview/internal/model"
)

var importCmd = &cobra.Command{
	Use:   "import <export.json>",
	Short: "Import a job-application export and resolve locations",
	Long:  "Reads a JSON export (flat array or nested company tree), normalizes it, geocodes missing positions, and archives the enriched batch.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	batch, err := importer.Parse(data)
	if err != nil {
		var formatErr *model.FormatError
		if errors.As(err, &formatErr) {
			// A bad file must not disturb the archived batch.
			return fmt.Errorf("%s: %w (existing snapshot left untouched)", args[0], err)
		}
		return err
	}
	logger.Info("export parsed", "file", args[0], "records", len(batch))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := resolveAndSave(ctx, cfg, logger, "file:"+args[0], batch)
	if err != nil {
		return err
	}

	printBatch(result.Applications)
	printStats(result.Stats)
	return nil
}
