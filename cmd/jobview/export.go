package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/almehdi/jobview/internal/export"
	"github.com/almehdi/jobview/internal/model"
)

var (
	exportCSVPath string
	exportMapPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the latest batch as CSV and/or a map page",
	Long:  "Writes the latest snapshot to a CSV file and/or a standalone HTML map of the resolved locations.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "write the batch to this CSV file")
	exportCmd.Flags().StringVar(&exportMapPath, "map", "", "write a standalone map page to this HTML file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportCSVPath == "" && exportMapPath == "" {
		return fmt.Errorf("nothing to do: pass --csv and/or --map")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	apps, _, err := latestBatch(cfg)
	if err != nil {
		return fmt.Errorf("no snapshot (run `jobview import` or `jobview fetch` first): %w", err)
	}

	if exportCSVPath != "" {
		if err := writeFile(exportCSVPath, apps, export.WriteCSV); err != nil {
			return err
		}
		fmt.Printf("wrote %d records to %s\n", len(apps), exportCSVPath)
	}

	if exportMapPath != "" {
		if err := writeFile(exportMapPath, apps, export.WriteMapHTML); err != nil {
			return err
		}
		resolved := 0
		for _, app := range apps {
			if app.Coords != nil {
				resolved++
			}
		}
		fmt.Printf("wrote map with %d markers to %s\n", resolved, exportMapPath)
	}
	return nil
}

func writeFile(path string, apps []model.Application, write func(w io.Writer, apps []model.Application) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, apps); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
