package web

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/JonMunkholm/pricelist/internal/core"
	"github.com/JonMunkholm/pricelist/internal/export"
	"github.com/JonMunkholm/pricelist/internal/logging"
	"github.com/JonMunkholm/pricelist/internal/web/templates"
)

// SearchResponse is the JSON body of /api/search.
type SearchResponse struct {
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Message string        `json:"message,omitempty"`
	Records []core.Record `json:"records"`
}

// FilesResponse is the JSON body of /api/files.
type FilesResponse struct {
	RunID   string             `json:"run_id"`
	Records int                `json:"records"`
	Files   []core.FileSummary `json:"files"`
}

// HealthResponse is the JSON body of /healthz.
type HealthResponse struct {
	Status          string `json:"status"`
	Records         int    `json:"records"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	ActiveSnapshots int    `json:"active_snapshots"`
}

// handleIndex renders the full table, or the search hits when q is set.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	records := s.table.Records()
	if query != "" {
		records = s.table.Search(query)
	}

	page := templates.Document(templates.DocumentParams{
		Title:    export.DocumentTitle,
		RunID:    s.table.RunID().String(),
		LoadedAt: s.table.LoadedAt(),
		Query:    query,
		Search:   true,
		Records:  records,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleSearch returns search hits ordered by price per kg.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	resp := SearchResponse{Query: query, Records: []core.Record{}}
	hits, err := s.table.Find(query)
	if err != nil {
		resp.Message = core.MapError(err).Message
	} else {
		resp.Records = hits
	}
	resp.Count = len(resp.Records)

	logging.FromContext(r.Context()).Debug("search",
		"query", query,
		"hits", resp.Count,
	)
	writeJSON(w, r, resp)
}

// handleFiles reports the per-file load outcome.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, FilesResponse{
		RunID:   s.table.RunID().String(),
		Records: s.table.Len(),
		Files:   s.table.Files(),
	})
}

// handleSnapshot streams the table as a MessagePack snapshot.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.table.Empty() {
		s.respondError(w, r, core.ErrEmptyExport, http.StatusNotFound)
		return
	}

	if err := s.snapshots.acquire(r.Context()); err != nil {
		w.Header().Set("Retry-After", "5")
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.snapshots.release()

	var buf bytes.Buffer
	if err := export.WriteSnapshot(&buf, s.table); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/msgpack")
	w.Header().Set("Content-Disposition", `attachment; filename="prices.msgpack"`)
	w.Write(buf.Bytes())
}

// handleHealth reports liveness along with the table size and the number of
// snapshot downloads in flight.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, HealthResponse{
		Status:          "ok",
		Records:         s.table.Len(),
		UptimeSeconds:   int64(s.uptime().Seconds()),
		ActiveSnapshots: s.snapshots.activeCount(),
	})
}
