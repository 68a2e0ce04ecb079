package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"searchrank/internal/api"
)

var (
	serveAddr       string
	serveCandidates string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve GET /api/ai-recommendation?query=...&top_k=... along with /api/health,
/metrics and /apidocs.json.

Examples:
  searchrank serve
  searchrank serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveCandidates, "candidates", "", "serve a fixed JSON candidate list instead of calling the search provider")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc, err := buildService(ctx, cfg, rootDir, serveCandidates, &logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	serverCfg := cfg.Server
	if serveAddr != "" {
		serverCfg.Addr = serveAddr
	}

	handler := api.NewHandler(svc.recommender, cfg.Rank.TopK, cfg.Rank.MaxTopK, api.NewMetrics(), &logger)
	server := api.NewServer(serverCfg, api.NewContainer(handler, &logger))

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Starting server")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("Server stopped")
	return nil
}
