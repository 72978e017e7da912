package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/metrics"
	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/probability"
	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/store"
)

// parseAnalyzeRequest builds an analysis request from query parameters.
// Either lat+lon or place must be given; a place name is resolved through
// geocoding and the first candidate wins. The returned label names the
// location for display purposes.
func (s *Server) parseAnalyzeRequest(ctx context.Context, r *http.Request) (probability.Request, string, error) {
	q := r.URL.Query()
	var req probability.Request

	label := q.Get("place")
	latStr, lonStr := q.Get("lat"), q.Get("lon")

	switch {
	case latStr != "" && lonStr != "":
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return req, "", fmt.Errorf("invalid lat %q", latStr)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return req, "", fmt.Errorf("invalid lon %q", lonStr)
		}
		req.Latitude, req.Longitude = lat, lon
		if label == "" {
			label = fmt.Sprintf("%.4f,%.4f", lat, lon)
		}
	case label != "":
		candidates, err := s.geocode.Search(ctx, label, 1)
		if err != nil {
			return req, "", fmt.Errorf("geocode %q: %w", label, err)
		}
		if len(candidates) == 0 {
			return req, "", fmt.Errorf("no location found for %q", label)
		}
		req.Latitude, req.Longitude = candidates[0].Latitude, candidates[0].Longitude
		label = candidates[0].Name
	default:
		return req, "", fmt.Errorf("lat+lon or place required")
	}

	req.Date = time.Now().UTC()
	if dateStr := q.Get("date"); dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return req, "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateStr)
		}
		req.Date = d
	}

	if vars := q.Get("variables"); vars != "" {
		for _, v := range strings.Split(vars, ",") {
			if v = strings.TrimSpace(v); v != "" {
				req.Variables = append(req.Variables, v)
			}
		}
	}

	return req, label, nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, _, err := s.parseAnalyzeRequest(r.Context(), r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.saveSnapshot(req, result)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// saveSnapshot persists the analysis best-effort; a storage failure never
// fails the request.
func (s *Server) saveSnapshot(req probability.Request, result *probability.Result) {
	if s.store == nil {
		return
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		log.Printf("server: marshal snapshot result: %v", err)
		return
	}

	_, err = s.store.SaveSnapshot(store.Snapshot{
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		TargetDate:  req.Date,
		DataSource:  string(result.DataSource),
		Probability: result.Probability,
		SeriesJSON:  string(result.HistoricalRaw),
		ResultJSON:  string(resultJSON),
	})
	if err != nil {
		log.Printf("server: save snapshot: %v", err)
		return
	}
	metrics.SnapshotsSaved.Inc()
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q parameter required", http.StatusBadRequest)
		return
	}

	limit := 5
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 20 {
			limit = n
		}
	}

	locations, err := s.geocode.Search(r.Context(), query, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(locations)
}

type snapshotResponse struct {
	CreatedAt   time.Time       `json:"created_at"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	TargetDate  string          `json:"target_date"`
	DataSource  string          `json:"data_source"`
	Probability int             `json:"probability"`
	Result      json.RawMessage `json:"result"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "snapshot store disabled", http.StatusNotFound)
		return
	}

	snap, err := s.store.LatestSnapshot()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if snap == nil {
		http.Error(w, "no snapshot yet", http.StatusNotFound)
		return
	}

	resp := snapshotResponse{
		CreatedAt:   snap.CreatedAt,
		Latitude:    snap.Latitude,
		Longitude:   snap.Longitude,
		TargetDate:  snap.TargetDate.Format("2006-01-02"),
		DataSource:  snap.DataSource,
		Probability: snap.Probability,
		Result:      json.RawMessage(snap.ResultJSON),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type summaryResponse struct {
	Place   string `json:"place"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil {
		http.Error(w, "summaries unavailable", http.StatusServiceUnavailable)
		return
	}

	req, label, err := s.parseAnalyzeRequest(r.Context(), r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	text, err := s.summarizer.Summarize(r.Context(), label, req.Date, result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaryResponse{
		Place:   label,
		Date:    req.Date.Format("2006-01-02"),
		Summary: text,
	})
}
