// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/volunteer-hub/models"
)

var roleColumns = []string{"id", "name", "type", "is_active", "created_at"}

// ListRoles returns every role.
func (s *Store) ListRoles(ctx context.Context) ([]models.Role, error) {
	query, args, err := psql.Select(roleColumns...).From("roles").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build role query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// CreateRoles inserts the given roles and returns the created rows.
func (s *Store) CreateRoles(ctx context.Context, inputs []models.RoleInput) ([]models.Role, error) {
	builder := psql.Insert("roles").Columns("name", "type", "is_active")
	for _, in := range inputs {
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		builder = builder.Values(in.Name, in.Type, active)
	}

	query, args, err := builder.
		Suffix("RETURNING id, name, type, is_active, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build role insert: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert roles: %w", err)
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inserted role: %w", err)
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// DeleteRole removes a role by its (name, type) natural key. Junction rows
// cascade. Returns ErrNotFound when no such role exists.
func (s *Store) DeleteRole(ctx context.Context, name, roleType string) error {
	query, args, err := psql.Delete("roles").
		Where(sq.Eq{"name": name, "type": roleType}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build role delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// LookupRole resolves a role (name, type) natural key to its id.
// Lookup-only: returns ErrNotFound when absent, never creates.
func (s *Store) LookupRole(ctx context.Context, name, roleType string) (int, error) {
	query, args, err := psql.Select("id").
		From("roles").
		Where(sq.Eq{"name": name, "type": roleType}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build role lookup: %w", err)
	}

	var id int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up role: %w", err)
	}
	return id, nil
}

// AssignRole links a volunteer to a role. Idempotent: assigning the same
// pair twice leaves exactly one junction row.
func (s *Store) AssignRole(ctx context.Context, volunteerID, roleID int) error {
	query, args, err := psql.Insert("volunteer_roles").
		Columns("volunteer_id", "role_id").
		Values(volunteerID, roleID).
		Suffix("ON CONFLICT (volunteer_id, role_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build role assignment: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}
