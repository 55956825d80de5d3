package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"beondiet/internal/db"
	"beondiet/internal/services"
)

var (
	numberPattern   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
	requiredColumns = []string{"name", "carbs", "protein", "fat", "kcal"}
)

var importCmd = &cobra.Command{
	Use:   "import-ingredients <csv>",
	Short: "Create or update ingredients from a CSV file",
	Long: `Import ingredients from a CSV file with the header
name,carbs,protein,fat,kcal (macros per 100 g). Existing ingredients are
matched by name and updated; recipes using them are re-aggregated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.AutoMigrate(database); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		summary, err := importIngredients(cmd.Context(), newServices(database, settings).Ingredients, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d ingredients from %s (%d created, %d updated)\n",
			summary.created+summary.updated, filepath.Base(args[0]), summary.created, summary.updated)
		return nil
	},
}

type importSummary struct {
	created int
	updated int
}

func importIngredients(ctx context.Context, ingredients *services.IngredientService, path string) (importSummary, error) {
	var summary importSummary
	if strings.TrimSpace(path) == "" {
		return summary, errors.New("csv path must not be empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return summary, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	records, err := readCSV(file)
	if err != nil {
		return summary, fmt.Errorf("read csv: %w", err)
	}

	for idx, record := range records {
		in, err := buildIngredient(record)
		if err != nil {
			return summary, fmt.Errorf("record %d (%s): %w", idx+1, record["name"], err)
		}
		_, created, err := ingredients.Upsert(ctx, in)
		if err != nil {
			return summary, fmt.Errorf("record %d (%s): %w", idx+1, in.Name, err)
		}
		if created {
			summary.created++
		} else {
			summary.updated++
		}
	}
	return summary, nil
}

// readCSV returns the data rows keyed by lower-cased header names.
func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := make([]string, len(rows[0]))
	present := make(map[string]bool, len(rows[0]))
	for idx, key := range rows[0] {
		header[idx] = strings.ToLower(strings.TrimSpace(key))
		present[header[idx]] = true
	}
	for _, column := range requiredColumns {
		if !present[column] {
			return nil, fmt.Errorf("missing column %q", column)
		}
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[key] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}
	return records, nil
}

func buildIngredient(record map[string]string) (services.IngredientInput, error) {
	in := services.IngredientInput{
		Name: cleanWhitespace.ReplaceAllString(strings.TrimSpace(record["name"]), " "),
	}
	if in.Name == "" {
		return in, errors.New("name is empty")
	}

	targets := []struct {
		column string
		dst    *float64
	}{
		{"carbs", &in.Carbs},
		{"protein", &in.Protein},
		{"fat", &in.Fat},
		{"kcal", &in.Kcal},
	}
	for _, target := range targets {
		value, err := parseNumber(record[target.column])
		if err != nil {
			return in, fmt.Errorf("%s: %w", target.column, err)
		}
		*target.dst = value
	}
	return in, nil
}

// parseNumber reads the first number in value, accepting a decimal comma and
// trailing units such as "12,5 g".
func parseNumber(value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if value == "" {
		return 0, nil
	}
	match := numberPattern.FindString(value)
	if match == "" {
		return 0, fmt.Errorf("no number in %q", value)
	}
	return strconv.ParseFloat(match, 64)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
