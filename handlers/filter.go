// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/volunteer-hub/filter"
	"github.com/danielhkuo/volunteer-hub/middleware"
	"github.com/danielhkuo/volunteer-hub/models"
	"github.com/danielhkuo/volunteer-hub/store"
)

type FilterHandler struct {
	engine *filter.Engine
}

func NewFilterHandler(st *store.Store) *FilterHandler {
	return &FilterHandler{engine: filter.NewEngine(st)}
}

// Filter handles POST /volunteers/filter
// Body: {"filters": [{"field", "mini_op", "values"}...], "op": "AND"|"OR"}.
// Returns the volunteers matching the composed filter. Malformed input is
// a 400 before any database access; a database failure is a 500.
func (h *FilterHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var req models.FilterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	volunteers, err := h.engine.FilterVolunteers(r.Context(), req.Filters, req.Op)
	if err != nil {
		var verr *filter.ValidationError
		if errors.As(err, &verr) {
			middleware.ErrorResponse(w, http.StatusBadRequest, verr.Reason)
			return
		}
		slog.Error("filter evaluation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, volunteers)
}
