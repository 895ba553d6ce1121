// Package server implements the HTTP handlers for the listing service.
//
// Responses reuse the backend's envelope shape, with pagination meta computed
// client-side by the listing controllers.
//
// Routes:
//
//	GET    /api/v1/jobs                  → current filtered job page
//	GET    /api/v1/jobs/filters          → active filter state
//	PUT    /api/v1/jobs/filters          → toggle one filter value
//	DELETE /api/v1/jobs/filters          → clear all filters
//	PUT    /api/v1/jobs/filters/replace  → replace the whole filter state
//	PUT    /api/v1/jobs/page             → change the job page
//	GET    /api/v1/jobs/facets           → available filter options
//	GET    /api/v1/companies             → current company page
//	PUT    /api/v1/companies/page        → change the company page
//	POST   /api/v1/refresh               → re-fetch all collections now
//	GET    /api/v1/presets               → list saved filter presets
//	POST   /api/v1/presets               → save the current or a given filter state
//	DELETE /api/v1/presets/{id}          → delete a preset
//	POST   /api/v1/presets/{id}/apply    → apply a preset to the job listing
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"jobboard/listing-service/internal/filter"
	"jobboard/listing-service/internal/listing"
	"jobboard/listing-service/internal/model"
	"jobboard/listing-service/internal/preset"
)

// Handler holds shared dependencies.
type Handler struct {
	jobs      *listing.Controller[model.Job]
	companies *listing.Controller[model.Company]
	skills    *listing.Controller[model.Skill]
	presets   *preset.Store
	refresh   func(ctx context.Context)
}

// NewHandler returns a configured Handler. refresh re-fetches every
// collection and is the manual recovery path when a listing is in ERROR.
func NewHandler(
	jobs *listing.Controller[model.Job],
	companies *listing.Controller[model.Company],
	skills *listing.Controller[model.Skill],
	presets *preset.Store,
	refresh func(ctx context.Context),
) *Handler {
	return &Handler{
		jobs:      jobs,
		companies: companies,
		skills:    skills,
		presets:   presets,
		refresh:   refresh,
	}
}

// RegisterRoutes mounts all listing-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/jobs", h.handleJobs)
	mux.HandleFunc("/api/v1/jobs/filters", h.handleJobFilters)
	mux.HandleFunc("/api/v1/jobs/filters/replace", h.handleReplaceFilters)
	mux.HandleFunc("/api/v1/jobs/page", h.handleJobPage)
	mux.HandleFunc("/api/v1/jobs/facets", h.handleFacets)
	mux.HandleFunc("/api/v1/companies", h.handleCompanies)
	mux.HandleFunc("/api/v1/companies/page", h.handleCompanyPage)
	mux.HandleFunc("/api/v1/refresh", h.handleRefresh)
	mux.HandleFunc("/api/v1/presets", h.handlePresets)
	mux.HandleFunc("/api/v1/presets/", h.handlePresetAction)
}

// ─── Job listing ─────────────────────────────────────────────────────────────

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeListing(w, h.jobs.View())
}

func (h *Handler) handleJobFilters(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeOK(w, "active filters", h.jobs.View().Filters)

	case http.MethodPut:
		var body struct {
			Category string `json:"category"`
			Value    string `json:"value"`
			Included *bool  `json:"included"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Value == "" || body.Included == nil {
			writeError(w, http.StatusBadRequest, "body must contain category, value and included")
			return
		}
		cat, err := filter.ParseCategory(body.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.jobs.SetFilterValue(cat, body.Value, *body.Included)
		writeListing(w, h.jobs.View())

	case http.MethodDelete:
		h.jobs.ClearFilters()
		writeListing(w, h.jobs.View())

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleReplaceFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var state filter.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.jobs.ReplaceFilters(state)
	writeListing(w, h.jobs.View())
}

func (h *Handler) handleJobPage(w http.ResponseWriter, r *http.Request) {
	h.changePage(w, r, func(page int) error { return h.jobs.SetPage(page) }, func() { writeListing(w, h.jobs.View()) })
}

func (h *Handler) handleFacets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	skillNames := make([]string, 0)
	for _, s := range h.skills.Items() {
		if s.Name != "" {
			skillNames = append(skillNames, s.Name)
		}
	}

	writeOK(w, "filter options", map[string]any{
		"employmentTypes": model.Levels,
		"skills":          skillNames,
		"salaryRanges":    filter.SalaryRangeNames,
	})
}

// ─── Company listing ─────────────────────────────────────────────────────────

func (h *Handler) handleCompanies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeListing(w, h.companies.View())
}

func (h *Handler) handleCompanyPage(w http.ResponseWriter, r *http.Request) {
	h.changePage(w, r, func(page int) error { return h.companies.SetPage(page) }, func() { writeListing(w, h.companies.View()) })
}

// ─── Refresh ─────────────────────────────────────────────────────────────────

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.refresh(r.Context())
	writeListing(w, h.jobs.View())
}

// ─── Presets ─────────────────────────────────────────────────────────────────

func (h *Handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		presets, err := h.presets.List(r.Context())
		if err != nil {
			log.Printf("[server] list presets error: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		writeOK(w, "saved presets", presets)

	case http.MethodPost:
		var body struct {
			Name    string        `json:"name"`
			Filters *filter.State `json:"filters"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
			writeError(w, http.StatusBadRequest, "body must contain name")
			return
		}
		// Omitting filters saves the job listing's current selection.
		state := h.jobs.View().Filters
		if body.Filters != nil {
			state = *body.Filters
		}
		p, err := h.presets.Create(r.Context(), body.Name, state)
		if err != nil {
			log.Printf("[server] create preset error: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		writeEnvelope(w, http.StatusCreated, "preset saved", p)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handlePresetAction handles DELETE /presets/{id} and POST /presets/{id}/apply
func (h *Handler) handlePresetAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/"), "/"), "/")

	switch {
	case len(parts) == 2 && r.Method == http.MethodDelete:
		if err := h.presets.Delete(r.Context(), parts[1]); err != nil {
			if errors.Is(err, preset.ErrNotFound) {
				writeError(w, http.StatusNotFound, "preset not found")
				return
			}
			log.Printf("[server] delete preset error: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		writeOK(w, "preset deleted", nil)

	case len(parts) == 3 && parts[2] == "apply" && r.Method == http.MethodPost:
		p, err := h.presets.Get(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, preset.ErrNotFound) {
				writeError(w, http.StatusNotFound, "preset not found")
				return
			}
			log.Printf("[server] get preset error: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		h.jobs.ReplaceFilters(p.Filters)
		writeListing(w, h.jobs.View())

	default:
		writeError(w, http.StatusNotFound, "invalid path")
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (h *Handler) changePage(w http.ResponseWriter, r *http.Request, set func(int) error, respond func()) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Page == 0 {
		writeError(w, http.StatusBadRequest, "body must contain page")
		return
	}
	if err := set(body.Page); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond()
}

// envelope mirrors the backend's response wrapper.
type envelope struct {
	StatusCode int     `json:"statusCode"`
	Error      *string `json:"error"`
	Message    string  `json:"message"`
	Data       any     `json:"data"`
}

// writeListing maps a listing view to an envelope response. A listing still
// loading is 503; one that failed to load at all is 502 with the fetch error.
func writeListing[T any](w http.ResponseWriter, v listing.View[T]) {
	switch v.Phase {
	case listing.PhaseIdle, listing.PhaseLoading:
		writeError(w, http.StatusServiceUnavailable, "collection is loading")
	case listing.PhaseError:
		msg := v.Err
		if msg == "" {
			msg = "failed to fetch collection"
		}
		writeError(w, http.StatusBadGateway, msg)
	default:
		writeOK(w, fmt.Sprintf("page %d of %d", v.Page.Number, v.Page.TotalPages), model.Page[T]{
			Meta: model.Meta{
				Page:     v.Page.Number,
				PageSize: v.Page.Size,
				Pages:    v.Page.TotalPages,
				Total:    v.Page.Total,
			},
			Result: v.Page.Items,
		})
	}
}

func writeOK(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusOK, message, data)
}

func writeEnvelope(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(envelope{
		StatusCode: code,
		Message:    message,
		Data:       data,
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(envelope{
		StatusCode: code,
		Error:      &msg,
		Message:    msg,
	})
}
