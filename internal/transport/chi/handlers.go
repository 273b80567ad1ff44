package chi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/audex/internal/domain"
	"github.com/kailas-cloud/audex/internal/domain/intent"
	"github.com/kailas-cloud/audex/internal/domain/schema"
)

// ListSchema handles GET /schema.
func (s *Server) ListSchema(w http.ResponseWriter, _ *http.Request) {
	cats := schema.Categories()
	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		out[i] = categoryToResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCategory handles GET /schema/{category}.
func (s *Server) GetCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")
	c, ok := schema.ParseCategory(name)
	if !ok {
		writeError(w, http.StatusNotFound, CodeUnknownCategory, fmt.Sprintf("unknown category %q", name))
		return
	}
	writeJSON(w, http.StatusOK, categoryToResponse(c))
}

// GetFilters handles GET /filters.
func (s *Server) GetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.filtersResponse(r))
}

// ClearFilters handles DELETE /filters.
func (s *Server) ClearFilters(w http.ResponseWriter, r *http.Request) {
	s.audience.ClearFilters(r.Context())
	writeJSON(w, http.StatusOK, s.filtersResponse(r))
}

// SetFilter handles PUT /filters/{key}.
func (s *Server) SetFilter(w http.ResponseWriter, r *http.Request) {
	f, ok := s.lookupField(w, r)
	if !ok {
		return
	}
	var req valueRequest
	if !decodeBody(w, r, &req) {
		return
	}

	v, err := valueFromJSON(f, req.Value)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := s.audience.SetFilter(r.Context(), f.Key(), v); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.filtersResponse(r))
}

// ToggleFilter handles POST /filters/{key}/toggle.
func (s *Server) ToggleFilter(w http.ResponseWriter, r *http.Request) {
	f, ok := s.lookupField(w, r)
	if !ok {
		return
	}
	var req valueRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var member string
	if err := json.Unmarshal(req.Value, &member); err != nil || member == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "value must be a non-empty string")
		return
	}
	if err := s.audience.ToggleFilterMember(r.Context(), f.Key(), member); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.filtersResponse(r))
}

// GetAudience handles GET /audience.
func (s *Server) GetAudience(w http.ResponseWriter, r *http.Request) {
	limit := s.maxAudienceList
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = min(n, s.maxAudienceList)
	}

	users := s.audience.Audience(r.Context())
	total := s.audience.Population().Len()
	resp := audienceResponse{Truncated: len(users) > limit}
	resp.Size = len(users)
	resp.Total = total
	if total > 0 {
		resp.Percentage = float64(len(users)) * 100 / float64(total)
	}
	if len(users) > limit {
		users = users[:limit]
	}
	resp.Users = users
	writeJSON(w, http.StatusOK, resp)
}

// GetUser handles GET /audience/users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	m, err := s.audience.User(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// GetAudienceSize handles GET /audience/size.
func (s *Server) GetAudienceSize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.audience.Stats(r.Context()))
}

// ExportAudience handles GET /audience/export.
func (s *Server) ExportAudience(w http.ResponseWriter, r *http.Request) {
	rep := s.audience.ExportAudience(r.Context())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="audience-%s.json"`, rep.Timestamp.Format("20060102-150405")))
	writeJSON(w, http.StatusOK, rep)
}

// Interpret handles POST /interpret.
func (s *Server) Interpret(w http.ResponseWriter, r *http.Request) {
	var req interpretRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.audience.Interpret(r.Context(), req.Text))
}

// Suggestions handles GET /interpret/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, suggestionsResponse{Queries: intent.SuggestedQueries()})
}

// ExportState handles GET /state.
func (s *Server) ExportState(w http.ResponseWriter, r *http.Request) {
	text, err := s.audience.ExportState(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

// ImportState handles PUT /state. The body is the exported text itself.
func (s *Server) ImportState(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.audience.ImportState(r.Context(), string(body)); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.filtersResponse(r))
}

// ListSaved handles GET /saved.
func (s *Server) ListSaved(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.saved.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	out := make([]snapshotResponse, len(snaps))
	for i, snap := range snaps {
		out[i] = snapshotToResponse(snap)
	}
	writeJSON(w, http.StatusOK, out)
}

// SaveState handles PUT /saved/{name}.
func (s *Server) SaveState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.saved.Save(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// LoadState handles POST /saved/{name}/load.
func (s *Server) LoadState(w http.ResponseWriter, r *http.Request) {
	if _, err := s.saved.Load(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.filtersResponse(r))
}

// DeleteSaved handles DELETE /saved/{name}.
func (s *Server) DeleteSaved(w http.ResponseWriter, r *http.Request) {
	if err := s.saved.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookupField(w http.ResponseWriter, r *http.Request) (schema.Field, bool) {
	raw := chi.URLParam(r, "key")
	f, ok := schema.Lookup(schema.Key(raw))
	if !ok {
		s.handleDomainError(w, r, domain.NewUnknownField(raw))
		return schema.Field{}, false
	}
	return f, true
}

func (s *Server) filtersResponse(r *http.Request) filtersResponse {
	v := s.audience.View(r.Context())
	return filtersResponse{Filters: v.Filters, Summary: v.Summary, Stats: v.Stats}
}
