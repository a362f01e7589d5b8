package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"procure/internal/config"
	"procure/internal/logger"
	"procure/internal/sheets"
	"procure/internal/stockreport"
	"procure/pkg/models"
)

var stockReportCmd = &cobra.Command{
	Use:   "stock-report [inventory.json]",
	Short: "Derive a stock valuation report from inventory data",
	Long: `Build the stock valuation report from an inventory JSON file: summary
statistics plus one row per material (unit cost from standard price,
falling back to average cost), sorted by total value descending.

Outputs: a terminal summary (always), and optionally CSV, a printable
HTML document, an XLSX workbook, or a Google Sheets worksheet.`,
	Example: `  # Summary to the terminal
  procure stock-report inventory.json

  # Dated CSV export next to the input
  procure stock-report inventory.json --csv

  # Printable document and Excel workbook
  procure stock-report inventory.json --html report.html --xlsx report.xlsx

  # Push to the configured Google Sheet
  procure stock-report inventory.json --sheets`,
	Args: cobra.ExactArgs(1),
	RunE: runStockReport,
}

func init() {
	rootCmd.AddCommand(stockReportCmd)

	stockReportCmd.Flags().Bool("csv", false, "Write the dated CSV export (stock-valuation-YYYY-MM-DD.csv)")
	stockReportCmd.Flags().String("csv-out", "", "Write CSV to a specific path")
	stockReportCmd.Flags().String("html", "", "Write the printable HTML document to this path")
	stockReportCmd.Flags().String("xlsx", "", "Write an XLSX workbook to this path")
	stockReportCmd.Flags().Bool("sheets", false, "Push the report to the configured Google Sheet")
	stockReportCmd.Flags().Int("timeout", 60, "Timeout in seconds for the Sheets export")
}

func runStockReport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("stock-report")

	items, err := loadInventory(args[0])
	if err != nil {
		return err
	}

	report := stockreport.Build(items)

	log.Info().
		Int("materials", report.Summary.TotalMaterials).
		Int("low_stock", report.Summary.LowStockCount).
		Int("out_of_stock", report.Summary.OutOfStockCount).
		Str("total_value", report.Summary.TotalValue.StringFixed(3)).
		Msg("Stock valuation report built")

	printStockSummary(report)

	if wantCSV, _ := cmd.Flags().GetBool("csv"); wantCSV {
		if err := writeCSVFile(stockreport.CSVFilename(time.Now()), report, log); err != nil {
			return err
		}
	}
	if path, _ := cmd.Flags().GetString("csv-out"); path != "" {
		if err := writeCSVFile(path, report, log); err != nil {
			return err
		}
	}

	if path, _ := cmd.Flags().GetString("html"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create HTML output: %w", err)
		}
		defer file.Close()
		if err := stockreport.WriteHTML(file, report, time.Now()); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("Printable report written")
	}

	if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create XLSX output: %w", err)
		}
		defer file.Close()
		if err := stockreport.WriteXLSX(file, report); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("XLSX report written")
	}

	if wantSheets, _ := cmd.Flags().GetBool("sheets"); wantSheets {
		if err := pushToSheets(cmd, report, log); err != nil {
			return err
		}
	}

	return nil
}

func pushToSheets(cmd *cobra.Command, report stockreport.Report, log zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	if cfg.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is not configured; cannot export to Google Sheets")
	}

	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	service, err := sheets.NewService(ctx, cfg.GoogleSheetURL)
	if err != nil {
		return fmt.Errorf("failed to create sheets service: %w", err)
	}
	if err := service.WriteStockReport(ctx, report, cfg.GoogleSheetWorksheet); err != nil {
		return fmt.Errorf("failed to write report to Google Sheets: %w", err)
	}

	fmt.Printf("Report pushed to worksheet %q\n", cfg.GoogleSheetWorksheet)
	return nil
}

func writeCSVFile(path string, report stockreport.Report, log zerolog.Logger) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV output: %w", err)
	}
	defer file.Close()

	if err := stockreport.WriteCSV(file, report); err != nil {
		return err
	}
	log.Info().Str("file", path).Int("rows", len(report.Rows)).Msg("CSV export written")
	fmt.Printf("CSV written to %s\n", path)
	return nil
}

func loadInventory(path string) ([]models.InventoryItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}
	var items []models.InventoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse inventory file: %w", err)
	}
	return items, nil
}

func printStockSummary(report stockreport.Report) {
	fmt.Printf("Materials:    %d\n", report.Summary.TotalMaterials)
	fmt.Printf("In stock:     %d\n", report.Summary.InStockCount)
	fmt.Printf("Low stock:    %d\n", report.Summary.LowStockCount)
	fmt.Printf("Out of stock: %d\n", report.Summary.OutOfStockCount)
	fmt.Printf("Total value:  %s\n", report.Summary.TotalValue.StringFixed(3))
}
