// Package httpapi is a thin contract-only shim over engine.Engine,
// exposing the two external endpoints spec §6 documents for reference
// (out of scope for the core, per spec §1, but cheap to carry here).
// Routing is github.com/go-chi/chi/v5, grounded on mnohosten-laura-db's
// router setup.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oss-search/barrelsearch/internal/config"
	"github.com/oss-search/barrelsearch/internal/engine"
	"github.com/oss-search/barrelsearch/internal/query"
)

// NewRouter builds the chi router exposing POST /api/process-csv and
// POST /api/get-query-result, plus the CORS allow-list and favicon 204
// handler the original (main.py) carries (SPEC_FULL.md §4, items 3-4).
func NewRouter(e *engine.Engine, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/api/process-csv", processCSVHandler(e))
	r.Post("/api/get-query-result", getQueryResultHandler(e))

	return r
}

func corsMiddleware(allowed []string) func(http.Handler) http.Handler {
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			for _, o := range allowed {
				if o == "*" || (origin != "" && o == origin) {
					w.Header().Set("Access-Control-Allow-Origin", o)
					break
				}
			}
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type messageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// processCSVHandler accepts a multipart CSV upload and runs
// engine.Engine.Ingest over it (spec §6: "multipart upload; body is a
// CSV. Response {message} on success, {error} on failure.").
func processCSVHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Error: err.Error()})
			return
		}
		defer file.Close()

		tmp, err := os.CreateTemp("", "barrelsearch-upload-*.csv")
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, messageResponse{Error: err.Error()})
			return
		}
		defer os.Remove(tmp.Name())

		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			writeJSON(w, http.StatusInternalServerError, messageResponse{Error: err.Error()})
			return
		}
		tmp.Close()

		result, err := e.Ingest(tmp.Name())
		if err != nil {
			slog.Error("ingest failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, messageResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{
			Message: "ingested rows",
		})
		slog.Info("csv processed", slog.Int("rows", result.RowsIngested), slog.Int("new_terms", result.NewTerms))
	}
}

type queryRequest struct {
	Text string `json:"text"`
}

type queryResponse struct {
	Query         string      `json:"query"`
	RankedResults interface{} `json:"ranked_results"`
}

// getQueryResultHandler runs engine.Engine.Query and returns the ranked
// list, or 404 if nothing matched (spec §6).
func getQueryResultHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Error: err.Error()})
			return
		}

		hits, err := e.Query(req.Text)
		if err != nil {
			if isNoResultsError(err) {
				writeJSON(w, http.StatusNotFound, messageResponse{Error: err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, messageResponse{Error: err.Error()})
			return
		}
		if len(hits) == 0 {
			writeJSON(w, http.StatusNotFound, messageResponse{Error: "no results"})
			return
		}

		writeJSON(w, http.StatusOK, queryResponse{Query: req.Text, RankedResults: hits})
	}
}

// isNoResultsError reports whether err is one of the query-time misses
// spec §7 says "return a structured empty result, not an error":
// EmptyQuery, UnknownTerm, or word-not-found.
func isNoResultsError(err error) bool {
	if errors.Is(err, query.ErrEmptyQuery) || errors.Is(err, query.ErrWordNotFound) {
		return true
	}
	var unknown *query.UnknownTermError
	return errors.As(err, &unknown)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
