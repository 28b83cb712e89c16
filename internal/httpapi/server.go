// Package httpapi exposes the analysis service over HTTP.
package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/mcsdevv/webanalyzer/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewServer creates and configures the HTTP server.
func NewServer(cfg config.ServerConfig, logger *zap.Logger, svc Analyzer) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/api/analyze", analyzeHandler(svc))

	handler := requestIDMiddleware(loggingMiddleware(logger.Named("httpapi"), mux))

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// healthHandler reports liveness.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "webanalyzer-api",
	})
}

// writeJSON writes data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes the standard {"error": message} payload.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
