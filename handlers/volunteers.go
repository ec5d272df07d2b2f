// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/volunteer-hub/middleware"
	"github.com/danielhkuo/volunteer-hub/models"
	"github.com/danielhkuo/volunteer-hub/store"
)

var validate = validator.New()

type VolunteerHandler struct {
	store *store.Store
}

func NewVolunteerHandler(st *store.Store) *VolunteerHandler {
	return &VolunteerHandler{store: st}
}

// Create handles POST /volunteers
// Creates a volunteer with an associated role and cohort atomically. The
// role and cohort are get-or-create by natural key.
func (h *VolunteerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVolunteerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Volunteer.NameOrg = strings.TrimSpace(req.Volunteer.NameOrg)
	term, ok := models.CanonicalTerm(req.Cohort.Term)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"cohort term must be one of: Fall, Spring, Summer, Winter")
		return
	}
	req.Cohort.Term = term
	req.Role.Name = strings.TrimSpace(req.Role.Name)

	if err := validate.Struct(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	id, err := h.store.CreateVolunteerWithMemberships(r.Context(), req.Volunteer, req.Role, req.Cohort)
	if errors.Is(err, store.ErrDuplicateVolunteer) {
		middleware.ErrorResponse(w, http.StatusConflict, store.ErrDuplicateVolunteer.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create volunteer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create volunteer")
		return
	}

	slog.Info("volunteer created", "volunteer_id", id, "role", req.Role.Name, "cohort", req.Cohort.Term)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateVolunteerResponse{ID: id})
}

// List handles GET /volunteers
func (h *VolunteerHandler) List(w http.ResponseWriter, r *http.Request) {
	volunteers, err := h.store.ListVolunteers(r.Context())
	if err != nil {
		slog.Error("failed to list volunteers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, volunteers)
}

// Table handles GET /volunteers/table
// Returns every volunteer joined with its roles and cohorts.
func (h *VolunteerHandler) Table(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListVolunteersTable(r.Context())
	if err != nil {
		slog.Error("failed to build volunteers table", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// Get handles GET /volunteers/{id}
func (h *VolunteerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVolunteerID(w, r)
	if !ok {
		return
	}

	volunteer, err := h.store.GetVolunteer(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Volunteer not found")
		return
	}
	if err != nil {
		slog.Error("failed to get volunteer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, volunteer)
}

// Update handles PATCH /volunteers/{id}
// Applies a partial update. Only whitelisted fields are accepted and at
// least one must be present.
func (h *VolunteerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVolunteerID(w, r)
	if !ok {
		return
	}

	var body map[string]json.RawMessage
	if err := middleware.ParseJSONBody(r, &body); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	patch, err := validateVolunteerPatch(body)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	volunteer, err := h.store.UpdateVolunteer(r.Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Volunteer not found")
		return
	}
	if err != nil {
		slog.Error("failed to update volunteer", "error", err, "volunteer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update volunteer")
		return
	}

	slog.Info("volunteer updated", "volunteer_id", id)

	middleware.JSONResponse(w, http.StatusOK, volunteer)
}

// Delete handles DELETE /volunteers/{id}
func (h *VolunteerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVolunteerID(w, r)
	if !ok {
		return
	}

	err := h.store.DeleteVolunteer(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Volunteer not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete volunteer", "error", err, "volunteer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete volunteer")
		return
	}

	slog.Info("volunteer deleted", "volunteer_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteVolunteerResponse{
		ID:      id,
		Message: "Volunteer deleted successfully",
	})
}

// AssignRole handles POST /volunteers/{id}/roles
// Lookup-only: the role must already exist; assignment is idempotent.
func (h *VolunteerHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVolunteerID(w, r)
	if !ok {
		return
	}

	var req models.AssignRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if _, err := h.store.GetVolunteer(r.Context(), id); err != nil {
		h.respondLookupError(w, err, "Volunteer not found")
		return
	}

	roleID, err := h.store.LookupRole(r.Context(), req.Name, req.Type)
	if err != nil {
		h.respondLookupError(w, err,
			fmt.Sprintf("Role not found: %s (%s)", req.Name, req.Type))
		return
	}

	if err := h.store.AssignRole(r.Context(), id, roleID); err != nil {
		slog.Error("failed to assign role", "error", err, "volunteer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to assign role")
		return
	}

	slog.Info("role assigned", "volunteer_id", id, "role_id", roleID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Role assigned"})
}

// AssignCohort handles POST /volunteers/{id}/cohorts
// Lookup-only: the cohort must already exist; assignment is idempotent.
func (h *VolunteerHandler) AssignCohort(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVolunteerID(w, r)
	if !ok {
		return
	}

	var req models.AssignCohortRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	term, termOK := models.CanonicalTerm(req.Term)
	if !termOK {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"cohort term must be one of: Fall, Spring, Summer, Winter")
		return
	}
	req.Term = term

	if err := validate.Struct(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if _, err := h.store.GetVolunteer(r.Context(), id); err != nil {
		h.respondLookupError(w, err, "Volunteer not found")
		return
	}

	cohortID, err := h.store.LookupCohort(r.Context(), req.Year, req.Term)
	if err != nil {
		h.respondLookupError(w, err,
			fmt.Sprintf("Cohort not found: %s %d", req.Term, req.Year))
		return
	}

	if err := h.store.AssignCohort(r.Context(), id, cohortID); err != nil {
		slog.Error("failed to assign cohort", "error", err, "volunteer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to assign cohort")
		return
	}

	slog.Info("cohort assigned", "volunteer_id", id, "cohort_id", cohortID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Cohort assigned"})
}

func (h *VolunteerHandler) respondLookupError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, notFoundMsg)
		return
	}
	slog.Error("lookup failed", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}

func parseVolunteerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Volunteer id must be a positive integer")
		return 0, false
	}
	return id, true
}

// Fields a PATCH body may carry, with the shape each accepts.
var patchStringFields = []string{"email", "phone", "pronouns", "pseudonym", "position", "notes"}

// validateVolunteerPatch checks a raw PATCH body against the allowed-field
// whitelist and returns a column patch for the store. name_org, when
// present, must be a non-empty string; optional string fields accept null;
// opt_in_communication must be a boolean.
func validateVolunteerPatch(body map[string]json.RawMessage) (map[string]any, error) {
	allowed := map[string]bool{"name_org": true, "opt_in_communication": true}
	for _, f := range patchStringFields {
		allowed[f] = true
	}

	var unknown []string
	for key := range body {
		if !allowed[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown field(s): %s", strings.Join(unknown, ", "))
	}

	patch := make(map[string]any)

	if raw, present := body["name_org"]; present {
		var name *string
		if err := json.Unmarshal(raw, &name); err != nil || name == nil {
			return nil, errors.New("field name_org must be a non-empty string")
		}
		if strings.TrimSpace(*name) == "" {
			return nil, errors.New("field name_org cannot be empty")
		}
		patch["name_org"] = *name
	}

	for _, key := range patchStringFields {
		raw, present := body[key]
		if !present {
			continue
		}
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("field %s must be a string or null", key)
		}
		if key == "position" && value != nil {
			if *value != models.PositionMember && *value != models.PositionVolunteer && *value != models.PositionStaff {
				return nil, errors.New("field position must be one of: member, volunteer, staff")
			}
		}
		if value == nil {
			patch[key] = nil
		} else {
			patch[key] = *value
		}
	}

	if raw, present := body["opt_in_communication"]; present {
		var optIn *bool
		if err := json.Unmarshal(raw, &optIn); err != nil || optIn == nil {
			return nil, errors.New("field opt_in_communication must be a boolean")
		}
		patch["opt_in_communication"] = *optIn
	}

	if len(patch) == 0 {
		return nil, errors.New("at least one updatable field is required")
	}
	return patch, nil
}

// validationMessage flattens a validator error into a single-line reason.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		switch first.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", first.Field())
		case "oneof":
			return fmt.Sprintf("%s must be one of: %s", first.Field(), strings.ReplaceAll(first.Param(), " ", ", "))
		case "email":
			return fmt.Sprintf("%s must be a valid email address", first.Field())
		case "gte", "lte":
			return fmt.Sprintf("%s must be between 1900 and 2100", first.Field())
		}
		return fmt.Sprintf("%s is invalid", first.Field())
	}
	return "invalid request body"
}
