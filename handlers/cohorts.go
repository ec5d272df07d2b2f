// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/volunteer-hub/middleware"
	"github.com/danielhkuo/volunteer-hub/models"
	"github.com/danielhkuo/volunteer-hub/store"
)

type CohortHandler struct {
	store *store.Store
}

func NewCohortHandler(st *store.Store) *CohortHandler {
	return &CohortHandler{store: st}
}

// Create handles POST /cohorts
func (h *CohortHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CohortInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	term, ok := models.CanonicalTerm(req.Term)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"cohort term must be one of: Fall, Spring, Summer, Winter")
		return
	}
	req.Term = term

	if err := validate.Struct(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	cohort, err := h.store.CreateCohort(r.Context(), req)
	if err != nil {
		if store.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Cohort already exists")
			return
		}
		slog.Error("failed to create cohort", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create cohort")
		return
	}

	slog.Info("cohort created", "cohort_id", cohort.ID, "term", cohort.Term, "year", cohort.Year)

	middleware.JSONResponse(w, http.StatusCreated, cohort)
}

// List handles GET /cohorts
func (h *CohortHandler) List(w http.ResponseWriter, r *http.Request) {
	cohorts, err := h.store.ListCohorts(r.Context())
	if err != nil {
		slog.Error("failed to list cohorts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, cohorts)
}

// Delete handles DELETE /cohorts
// Deletes a cohort by its (year, term) natural key; junction rows cascade.
func (h *CohortHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteCohortRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	term, ok := models.CanonicalTerm(req.Term)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"cohort term must be one of: Fall, Spring, Summer, Winter")
		return
	}
	req.Term = term

	if err := validate.Struct(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	err := h.store.DeleteCohort(r.Context(), req.Year, req.Term)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound,
			fmt.Sprintf("Cohort with year %d and term %s not found", req.Year, req.Term))
		return
	}
	if err != nil {
		slog.Error("failed to delete cohort", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete cohort")
		return
	}

	slog.Info("cohort deleted", "year", req.Year, "term", req.Term)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Cohort deleted successfully"})
}
