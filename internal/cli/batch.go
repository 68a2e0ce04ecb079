package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"searchrank/internal/api"
	"searchrank/internal/domain"
)

var (
	batchFile        string
	batchOutput      string
	batchConcurrency int
	batchTopK        int
	batchCandidates  string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank search results for many queries",
	Long: `Read one query per line and write one JSON object per query.
Failed queries are reported in the "error" field and do not stop the batch.

Examples:
  searchrank batch -f queries.txt
  searchrank batch -f queries.txt -c 4 -o results.jsonl`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "file with one query per line, - for stdin (required)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output file (default stdout)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, "queries processed in parallel")
	batchCmd.Flags().IntVarP(&batchTopK, "top-k", "k", 0, "number of results per query (default from config)")
	batchCmd.Flags().StringVar(&batchCandidates, "candidates", "", "rank a JSON candidate list instead of calling the search provider")
	batchCmd.MarkFlagRequired("file")
}

// batchResult is one line of batch output.
type batchResult struct {
	Query   string                `json:"query"`
	Results []domain.RankedResult `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	queries, err := readQueries(batchFile)
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("no queries in %s", batchFile)
	}

	svc, err := buildService(ctx, cfg, rootDir, batchCandidates, &logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	if batchOutput != "" {
		file, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	topK := cfg.Rank.TopK
	if batchTopK > 0 {
		topK = batchTopK
	}

	bar := progressbar.NewOptions(len(queries),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Ranking[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	results, err := rankAll(ctx, svc.recommender, queries, topK, batchConcurrency, func() {
		bar.Add(1)
	})
	if err != nil {
		return err
	}

	failed := 0
	enc := json.NewEncoder(out)
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	logger.Info().Int("queries", len(queries)).Int("failed", failed).Msg("Batch complete")
	return nil
}

// rankAll runs every query with at most concurrency in flight. Results keep
// the input order. Only context cancellation aborts the batch.
func rankAll(ctx context.Context, rec api.Recommender, queries []string, topK, concurrency int, progress func()) ([]batchResult, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]batchResult, len(queries))
	var progressMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			ranked, err := rec.Recommend(gctx, q, topK)
			results[i] = batchResult{Query: q, Results: ranked}
			if err != nil {
				results[i].Error = err.Error()
			}

			if progress != nil {
				progressMu.Lock()
				progress()
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readQueries(path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open queries: %w", err)
		}
		defer file.Close()
		r = file
	}

	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	return queries, nil
}
