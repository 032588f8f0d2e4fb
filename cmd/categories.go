package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/slumbersage/gjirafa50/internal/scraper"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Fetch the category tree once and print it as JSON",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().String("q", "", "Case-insensitive category name filter")
	categoriesCmd.Flags().Int("min", -1, "Minimum number of subcategories")
	categoriesCmd.Flags().Int("max", -1, "Maximum number of subcategories")
	categoriesCmd.Flags().Bool("include-empty", false, "Include categories without subcategories")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	q, _ := cmd.Flags().GetString("q")
	minSubs, _ := cmd.Flags().GetInt("min")
	maxSubs, _ := cmd.Flags().GetInt("max")
	includeEmpty, _ := cmd.Flags().GetBool("include-empty")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
	defer cancel()

	categories, err := newScraper().Categories(ctx)
	if err != nil {
		return fmt.Errorf("categories failed: %w", err)
	}

	filter := scraper.CategoryFilter{Query: q, IncludeEmpty: includeEmpty}
	if minSubs >= 0 {
		filter.MinSubcategories = &minSubs
	}
	if maxSubs >= 0 {
		filter.MaxSubcategories = &maxSubs
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(categories.Filter(filter))
}
