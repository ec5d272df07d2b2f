package models

import (
	"strings"
	"time"
)

// Volunteer position constants
const (
	PositionMember    = "member"
	PositionVolunteer = "volunteer"
	PositionStaff     = "staff"
)

// Role type constants
const (
	RoleTypePrior          = "prior"
	RoleTypeCurrent        = "current"
	RoleTypeFutureInterest = "future_interest"
)

// Cohort term constants (canonical title-case form)
const (
	TermFall   = "Fall"
	TermSpring = "Spring"
	TermSummer = "Summer"
	TermWinter = "Winter"
)

// CanonicalTerm normalizes a cohort term to title case ("fall" -> "Fall").
// Returns the canonical term and whether the input was a valid term.
func CanonicalTerm(term string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(term)) {
	case "fall":
		return TermFall, true
	case "spring":
		return TermSpring, true
	case "summer":
		return TermSummer, true
	case "winter":
		return TermWinter, true
	}
	return "", false
}

// Request types

type VolunteerInput struct {
	NameOrg            string  `json:"name_org" validate:"required"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Phone              *string `json:"phone"`
	Pronouns           *string `json:"pronouns"`
	Pseudonym          *string `json:"pseudonym"`
	Position           *string `json:"position" validate:"omitempty,oneof=member volunteer staff"`
	Notes              *string `json:"notes"`
	OptInCommunication *bool   `json:"opt_in_communication"`
}

type RoleInput struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=prior current future_interest"`
	IsActive *bool  `json:"is_active"`
}

type CohortInput struct {
	Year     int    `json:"year" validate:"required,gte=1900,lte=2100"`
	Term     string `json:"term" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

// CreateVolunteerRequest creates a volunteer with an associated role and
// cohort in one atomic operation. Role and cohort are get-or-create by
// natural key.
type CreateVolunteerRequest struct {
	Volunteer VolunteerInput `json:"volunteer"`
	Role      RoleInput      `json:"role"`
	Cohort    CohortInput    `json:"cohort"`
}

// FilterRequest is the body of the multi-column filter endpoint.
type FilterRequest struct {
	Filters []FilterClause `json:"filters"`
	Op      string         `json:"op"`
}

// FilterClause is one raw filter criterion as received over the wire.
// Values holds strings for general and role clauses, and 2-element
// [term, year] tuples for cohort clauses.
type FilterClause struct {
	Field  string `json:"field"`
	MiniOp string `json:"mini_op"`
	Values []any  `json:"values"`
}

type AssignRoleRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=prior current future_interest"`
}

type AssignCohortRequest struct {
	Year int    `json:"year" validate:"required,gte=1900,lte=2100"`
	Term string `json:"term" validate:"required"`
}

type DeleteRoleRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
}

type DeleteCohortRequest struct {
	Year int    `json:"year" validate:"required"`
	Term string `json:"term" validate:"required"`
}

// Response types

type CreateVolunteerResponse struct {
	ID int `json:"id"`
}

type DeleteVolunteerResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// MessageResponse carries a confirmation message for operations with no
// other payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse is the standard success envelope: {"data": ...}
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse is the standard failure envelope: {"error": "..."}
type ErrorResponse struct {
	Error string `json:"error"`
}

// Domain types

type Volunteer struct {
	ID                 int       `json:"id"`
	NameOrg            string    `json:"name_org"`
	Email              *string   `json:"email"`
	Phone              *string   `json:"phone"`
	Pronouns           *string   `json:"pronouns"`
	Pseudonym          *string   `json:"pseudonym"`
	Position           *string   `json:"position"`
	Notes              *string   `json:"notes"`
	OptInCommunication bool      `json:"opt_in_communication"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Role struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Cohort struct {
	ID        int       `json:"id"`
	Year      int       `json:"year"`
	Term      string    `json:"term"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// VolunteerTableEntry is a volunteer with all associated roles and cohorts,
// used by the table listing endpoint.
type VolunteerTableEntry struct {
	Volunteer Volunteer `json:"volunteer"`
	Roles     []Role    `json:"roles"`
	Cohorts   []Cohort  `json:"cohorts"`
}
