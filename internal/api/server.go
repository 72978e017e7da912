package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/openmeteo"
	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/probability"
	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/store"
	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/summary"
)

type Server struct {
	analyzer   *probability.Analyzer
	geocode    *openmeteo.GeocodeClient
	store      *store.Store
	summarizer *summary.Summarizer
	port       string
}

func NewServer(analyzer *probability.Analyzer, geocode *openmeteo.GeocodeClient, st *store.Store, port string) *Server {
	// The summarizer is optional; without an API key the endpoint reports
	// itself unavailable.
	var summarizer *summary.Summarizer
	if s, err := summary.NewSummarizer(); err != nil {
		log.Printf("server: summaries disabled: %v", err)
	} else {
		summarizer = s
	}

	return &Server{
		analyzer:   analyzer,
		geocode:    geocode,
		store:      st,
		summarizer: summarizer,
		port:       port,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/locations", s.handleLocations)
	mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

type HealthStatus struct {
	Status           string     `json:"status"`
	Snapshots        int        `json:"snapshots"`
	LastSnapshotAt   *time.Time `json:"last_snapshot_at,omitempty"`
	SummariesEnabled bool       `json:"summaries_enabled"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthStatus{
		Status:           "ok",
		SummariesEnabled: s.summarizer != nil,
	}

	if s.store != nil {
		n, err := s.store.CountSnapshots()
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}
		health.Snapshots = n

		snap, err := s.store.LatestSnapshot()
		if err == nil && snap != nil {
			t := snap.CreatedAt
			health.LastSnapshotAt = &t
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		log.Printf("health: write response: %v", err)
	}
}
