package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"searchrank/internal/api/middleware"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api").
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("/ai-recommendation").
			To(handler.Recommend).
			Doc("Rank web search results by relevance to the query").
			Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
			Param(ws.QueryParameter("query", "Free-text search query").DataType("string").Required(true)).
			Param(ws.QueryParameter("top_k", "Number of results to return (default from config)").DataType("integer").Required(false)).
			Writes(RecommendationResponse{}).
			Returns(200, "OK", RecommendationResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "No Results", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}).
			Returns(502, "Search Provider Failure", middleware.ErrorResponse{}))

	container.Add(ws)

	container.Handle("/metrics", promhttp.HandlerFor(handler.metrics.Registry(), promhttp.HandlerOpts{}))

	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}))
}
