package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/donut"
	"github.com/theirongolddev/budgetring/internal/model"

	"github.com/spf13/cobra"
)

var flagSummaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the budget as a table with share bars",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&flagSummaryJSON, "json", false, "Print the fetched document as JSON")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Fetching %s...\n", loader)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout())
	defer cancel()

	categories, err := loader.Fetch(ctx)
	if err != nil {
		return err
	}
	// Same acceptance rule as the chart.
	if _, err := donut.Partition(categories); err != nil {
		return err
	}

	if flagSummaryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(model.BudgetDocument{MyBudget: categories})
	}

	if len(categories) == 0 {
		fmt.Println("\n  The budget has no categories.")
		return nil
	}

	total := model.TotalBudget(categories)
	colors := donut.NewColorAssigner(nil)

	fmt.Println()
	fmt.Println(cli.RenderBanner(loader.String(), len(categories), total))
	fmt.Println()

	rows := make([]cli.CategoryRow, len(categories))
	labelW := 0
	for i, c := range categories {
		rows[i] = cli.CategoryRow{Title: c.Title, Budget: c.Budget, Share: model.Share(c.Budget, total)}
		if len(c.Title) > labelW {
			labelW = len(c.Title)
		}
	}
	fmt.Println(cli.RenderCategoryTable(rows, total))
	fmt.Println()

	if labelW > 20 {
		labelW = 20
	}
	for i, c := range categories {
		fmt.Println(cli.RenderShareBar(c.Title, c.Budget, model.Share(c.Budget, total),
			colors.ColorOf(i), labelW, 30))
	}
	fmt.Println()

	return nil
}
