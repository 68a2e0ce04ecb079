package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// HandleError writes err as an ErrorResponse with the given status.
func HandleError(resp *restful.Response, err error, status int) {
	body := ErrorResponse{
		Code:   status,
		Status: http.StatusText(status),
		Error:  err.Error(),
	}
	if writeErr := resp.WriteHeaderAndEntity(status, body); writeErr != nil {
		log.Error().Err(writeErr).Msg("Failed to write error response")
	}
}

// NewLogger returns a filter that logs one line per request.
func NewLogger(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		start := time.Now()
		chain.ProcessFilter(req, resp)

		event := logger.Info()
		if resp.StatusCode() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", req.Request.Method).
			Str("path", req.Request.URL.Path).
			Int("status", resp.StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}

// RecoverPanic converts a panic in a handler into a 500 response.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Str("path", req.Request.URL.Path).
				Msg("Recovered from panic")
			HandleError(resp, fmt.Errorf("internal server error"), http.StatusInternalServerError)
		}
	}()
	chain.ProcessFilter(req, resp)
}
