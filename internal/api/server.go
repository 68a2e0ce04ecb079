package api

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"searchrank/config"
	"searchrank/internal/api/middleware"
)

// NewContainer wires the filters and routes of the API.
func NewContainer(handler *Handler, logger *zerolog.Logger) *restful.Container {
	container := restful.NewContainer()
	container.Filter(middleware.NewLogger(logger))
	container.Filter(handler.metrics.Filter)
	container.Filter(middleware.RecoverPanic)
	RegisterRoutes(container, handler)
	return container
}

// NewServer returns an HTTP server for the container with CORS applied.
func NewServer(cfg config.ServerConfig, container *restful.Container) *http.Server {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      corsHandler.Handler(container),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
