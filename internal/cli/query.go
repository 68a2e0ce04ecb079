package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	queryText       string
	queryTopK       int
	queryJSON       bool
	queryCandidates string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Rank search results for one query",
	Long: `Fetch search results for a query and print the most relevant ones.

Examples:
  searchrank query -q "machine learning"
  searchrank query -q "golang generics" --top-k 5 --json
  searchrank query -q "machine learning" --candidates results.json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.Flags().StringVar(&queryCandidates, "candidates", "", "rank a JSON candidate list instead of calling the search provider")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := buildService(ctx, cfg, rootDir, queryCandidates, &logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	topK := cfg.Rank.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	results, err := svc.recommender.Recommend(ctx, queryText, topK)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if queryJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(out, string(output))
		return nil
	}

	fmt.Fprintf(out, "Top %d results for: %s\n\n", len(results), queryText)
	for _, r := range results {
		fmt.Fprintf(out, "--- [%d] %s (similarity: %.4f) ---\n", r.Rank, r.Title, r.Score)
		fmt.Fprintln(out, r.Link)
		fmt.Fprintln(out, r.Snippet)
		fmt.Fprintln(out)
	}
	return nil
}
