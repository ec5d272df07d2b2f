// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/volunteer-hub/middleware"
	"github.com/danielhkuo/volunteer-hub/models"
	"github.com/danielhkuo/volunteer-hub/store"
)

type RoleHandler struct {
	store *store.Store
}

func NewRoleHandler(st *store.Store) *RoleHandler {
	return &RoleHandler{store: st}
}

// Create handles POST /roles
// Accepts a single role object or an array of role objects.
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := middleware.ParseJSONBody(r, &raw); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	inputs, err := parseRoleInputs(raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	roles, err := h.store.CreateRoles(r.Context(), inputs)
	if err != nil {
		if store.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Role already exists")
			return
		}
		slog.Error("failed to create roles", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create roles")
		return
	}

	slog.Info("roles created", "count", len(roles))

	middleware.JSONResponse(w, http.StatusCreated, roles)
}

// List handles GET /roles
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.store.ListRoles(r.Context())
	if err != nil {
		slog.Error("failed to list roles", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, roles)
}

// Delete handles DELETE /roles
// Deletes a role by its (name, type) natural key; junction rows cascade.
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	err := h.store.DeleteRole(r.Context(), req.Name, req.Type)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound,
			fmt.Sprintf("Role with name %s and type %s not found", req.Name, req.Type))
		return
	}
	if err != nil {
		slog.Error("failed to delete role", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete role")
		return
	}

	slog.Info("role deleted", "name", req.Name, "type", req.Type)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Role deleted successfully"})
}

// parseRoleInputs normalizes a single object or array body into a
// validated, trimmed role input list.
func parseRoleInputs(raw json.RawMessage) ([]models.RoleInput, error) {
	var inputs []models.RoleInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		var single models.RoleInput
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, errors.New("body must be a role object or an array of role objects")
		}
		inputs = []models.RoleInput{single}
	}

	if len(inputs) == 0 {
		return nil, errors.New("roles input cannot be empty")
	}

	for i := range inputs {
		inputs[i].Name = strings.TrimSpace(inputs[i].Name)
		inputs[i].Type = strings.TrimSpace(inputs[i].Type)
		if err := validate.Struct(&inputs[i]); err != nil {
			return nil, errors.New(validationMessage(err))
		}
	}
	return inputs, nil
}
