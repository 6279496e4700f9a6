package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer receives console output; nil means os.Stdout
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate creates output in the specified format
func Generate(result *dto.PlanResult, config Config) error {
	switch config.Format {
	case FormatText, "":
		return generateTextOutput(result, config)
	case FormatJSON:
		return generateJSONOutput(result, config)
	case FormatCSV:
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateTextOutput(result *dto.PlanResult, config Config) error {
	out := config.writer()
	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "plan.txt")
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create text file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = io.MultiWriter(out, f)
		defer func() {
			if config.Verbose {
				fmt.Fprintf(config.writer(), "Results saved to: %s\n", filename)
			}
		}()
	}

	fmt.Fprintf(out, "Production Plan %s\n", result.PlanID)
	fmt.Fprintf(out, "=====================================================\n\n")
	fmt.Fprintf(out, "Generated: %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "Recipes: %d  Ingredients: %d  Shortages: %d\n",
		len(result.Items), result.Requirements.Len(), len(result.Shortages()))
	if config.Verbose {
		fmt.Fprintf(out, "Elapsed: %v\n", result.Elapsed)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Recipe\tQuantity\tScale\tAdjustment")
	fmt.Fprintln(tw, "------\t--------\t-----\t----------")
	for _, r := range result.Resolutions {
		qty := 0.0
		for _, item := range result.Items {
			if item.RecipeID == r.RecipeID {
				qty = item.Quantity
				break
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\n", r.RecipeID, entities.FormatAmount(qty), r.ScaleFactor, r.AdjustmentFactor)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if err := WriteStockReport(out, result.StockReport); err != nil {
		return err
	}

	if result.Cost != nil {
		fmt.Fprintf(out, "\nEstimated cost: %s\n", result.Cost.Total.StringFixed(2))
		for _, id := range result.Cost.Unpriced {
			fmt.Fprintf(out, "  unpriced: %s\n", id)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(out, "\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}
	return nil
}

// WriteStockReport prints one line per required ingredient
func WriteStockReport(w io.Writer, lines []entities.StockLine) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Ingredient\tRequired\tAvailable\tStatus")
	fmt.Fprintln(tw, "----------\t--------\t---------\t------")
	for _, line := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			line.IngredientID, line.RequiredDisplay, line.AvailableDisplay, status(line))
	}
	return tw.Flush()
}

func status(line entities.StockLine) string {
	switch {
	case line.Unknown:
		return "UNKNOWN"
	case !line.Sufficient:
		return "SHORT " + entities.FormatAmount(line.ShortfallGrams) + " g"
	case line.BelowMinimum:
		return "ok (below minimum)"
	default:
		return "ok"
	}
}

func generateJSONOutput(result *dto.PlanResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		_, err = fmt.Fprintln(config.writer(), string(jsonData))
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "plan.json")
	if err := os.WriteFile(filename, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "JSON results saved to: %s\n", filename)
	}
	return nil
}

func generateCSVOutput(result *dto.PlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	requirementsFile := filepath.Join(config.OutputDir, "requirements.csv")
	if err := writeRequirementsCSV(result, requirementsFile); err != nil {
		return fmt.Errorf("failed to write requirements CSV: %w", err)
	}

	stockFile := filepath.Join(config.OutputDir, "stock_report.csv")
	if err := writeStockCSV(result.StockReport, stockFile); err != nil {
		return fmt.Errorf("failed to write stock report CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "CSV results saved to:\n  Requirements: %s\n  Stock report: %s\n",
			requirementsFile, stockFile)
	}
	return nil
}

func writeRequirementsCSV(result *dto.PlanResult, filename string) error {
	costs := make(map[entities.IngredientID]string)
	if result.Cost != nil {
		for _, line := range result.Cost.Lines {
			costs[line.IngredientID] = line.Cost.StringFixed(2)
		}
	}

	records := [][]string{{"ingredient_id", "mass_grams", "cost"}}
	for _, entry := range result.Requirements.Entries() {
		records = append(records, []string{
			string(entry.IngredientID),
			formatFloat(entry.MassGrams),
			costs[entry.IngredientID],
		})
	}
	return writeCSV(filename, records)
}

func writeStockCSV(lines []entities.StockLine, filename string) error {
	records := [][]string{{"ingredient_id", "required_grams", "available_grams", "shortfall_grams", "sufficient", "below_minimum", "unknown"}}
	for _, line := range lines {
		records = append(records, []string{
			string(line.IngredientID),
			formatFloat(line.RequiredGrams),
			formatFloat(line.AvailableGrams),
			formatFloat(line.ShortfallGrams),
			strconv.FormatBool(line.Sufficient),
			strconv.FormatBool(line.BelowMinimum),
			strconv.FormatBool(line.Unknown),
		})
	}
	return writeCSV(filename, records)
}

func writeCSV(filename string, records [][]string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
