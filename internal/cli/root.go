package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"searchrank/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "searchrank",
	Short: "Rank web search results by relevance to a query",
	Long: `searchrank fetches candidate results from Google Custom Search, scores each
one against the query with TF-IDF cosine similarity and returns the most
relevant results.

Example usage:
  searchrank serve                           # Start the HTTP API
  searchrank query -q "machine learning"     # One-shot recommendation
  searchrank batch -f queries.txt -c 4       # Rank many queries, JSON lines out`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("No .env file found, using environment variables")
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = setupLogging(cfg.Logging)
		return nil
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./searchrank.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "working directory for config and vocabulary (default is current directory)")
}

func setupLogging(lc config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if lc.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return log.Logger
}
