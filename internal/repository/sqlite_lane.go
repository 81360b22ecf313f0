package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/showrunnerhq/showrunner/internal/db"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

const laneColumns = `id, slug, name, description, color, icon, sort_order,
		is_default, auto_assign, scope, owner_id, created_at, updated_at`

// SQLiteLaneRepo implements LaneRepo using a SQLite database.
type SQLiteLaneRepo struct {
	db db.DBTX
}

// NewSQLiteLaneRepo creates a new SQLiteLaneRepo.
func NewSQLiteLaneRepo(conn db.DBTX) *SQLiteLaneRepo {
	return &SQLiteLaneRepo{db: conn}
}

func (r *SQLiteLaneRepo) Create(ctx context.Context, l *domain.LaneDefinition) error {
	autoAssign, err := conditionSetToJSON(l.AutoAssign)
	if err != nil {
		return err
	}
	query := `INSERT INTO lanes (` + laneColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		l.ID, l.Slug, l.Name, l.Description, l.Color, l.Icon, l.SortOrder,
		boolToInt(l.IsDefault), autoAssign, string(l.Scope), l.OwnerID,
		l.CreatedAt.Format(time.RFC3339), l.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting lane: %w", err)
	}
	return nil
}

func (r *SQLiteLaneRepo) GetByID(ctx context.Context, id string) (*domain.LaneDefinition, error) {
	query := `SELECT ` + laneColumns + ` FROM lanes WHERE id = ?`
	return r.scanLane(r.db.QueryRowContext(ctx, query, id))
}

// GetBySlug resolves a slug for a user: a user-owned lane shadows a global
// lane with the same slug.
func (r *SQLiteLaneRepo) GetBySlug(ctx context.Context, slug, ownerID string) (*domain.LaneDefinition, error) {
	query := `SELECT ` + laneColumns + ` FROM lanes
		WHERE slug = ? AND (owner_id = ? OR scope = 'global')
		ORDER BY CASE WHEN owner_id = ? THEN 0 ELSE 1 END
		LIMIT 1`
	return r.scanLane(r.db.QueryRowContext(ctx, query, slug, ownerID, ownerID))
}

// ListVisible returns global lanes plus the user's own, ordered by sort_order.
func (r *SQLiteLaneRepo) ListVisible(ctx context.Context, ownerID string) ([]*domain.LaneDefinition, error) {
	query := `SELECT ` + laneColumns + ` FROM lanes
		WHERE scope = 'global' OR owner_id = ?
		ORDER BY sort_order, slug`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing lanes: %w", err)
	}
	defer rows.Close()

	var lanes []*domain.LaneDefinition
	for rows.Next() {
		l, err := r.scanLaneRow(rows)
		if err != nil {
			return nil, err
		}
		lanes = append(lanes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lanes: %w", err)
	}
	return lanes, nil
}

func (r *SQLiteLaneRepo) Update(ctx context.Context, l *domain.LaneDefinition) error {
	autoAssign, err := conditionSetToJSON(l.AutoAssign)
	if err != nil {
		return err
	}
	query := `UPDATE lanes SET slug = ?, name = ?, description = ?, color = ?, icon = ?,
		sort_order = ?, is_default = ?, auto_assign = ?, scope = ?, owner_id = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		l.Slug, l.Name, l.Description, l.Color, l.Icon,
		l.SortOrder, boolToInt(l.IsDefault), autoAssign, string(l.Scope), l.OwnerID,
		l.UpdatedAt.Format(time.RFC3339), l.ID)
	if err != nil {
		return fmt.Errorf("updating lane: %w", err)
	}
	return nil
}

func (r *SQLiteLaneRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM lanes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lane: %w", err)
	}
	return nil
}

func (r *SQLiteLaneRepo) scanLane(row *sql.Row) (*domain.LaneDefinition, error) {
	var l domain.LaneDefinition
	var isDefaultInt int
	var autoAssignStr sql.NullString
	var scopeStr, createdAtStr, updatedAtStr string

	err := row.Scan(&l.ID, &l.Slug, &l.Name, &l.Description, &l.Color, &l.Icon,
		&l.SortOrder, &isDefaultInt, &autoAssignStr, &scopeStr, &l.OwnerID,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("lane: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning lane: %w", err)
	}
	return r.populateLane(&l, isDefaultInt, autoAssignStr, scopeStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteLaneRepo) scanLaneRow(rows *sql.Rows) (*domain.LaneDefinition, error) {
	var l domain.LaneDefinition
	var isDefaultInt int
	var autoAssignStr sql.NullString
	var scopeStr, createdAtStr, updatedAtStr string

	err := rows.Scan(&l.ID, &l.Slug, &l.Name, &l.Description, &l.Color, &l.Icon,
		&l.SortOrder, &isDefaultInt, &autoAssignStr, &scopeStr, &l.OwnerID,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning lane row: %w", err)
	}
	return r.populateLane(&l, isDefaultInt, autoAssignStr, scopeStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteLaneRepo) populateLane(
	l *domain.LaneDefinition,
	isDefaultInt int,
	autoAssignStr sql.NullString,
	scopeStr, createdAtStr, updatedAtStr string,
) (*domain.LaneDefinition, error) {
	l.IsDefault = intToBool(isDefaultInt)
	l.Scope = domain.LaneScope(scopeStr)

	if autoAssignStr.Valid && autoAssignStr.String != "" {
		var set domain.ConditionSet
		if err := json.Unmarshal([]byte(autoAssignStr.String), &set); err != nil {
			return nil, fmt.Errorf("unmarshaling lane auto-assign rules: %w", err)
		}
		l.AutoAssign = &set
	}

	var err error
	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing lane created_at: %w", err)
	}
	if l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing lane updated_at: %w", err)
	}
	return l, nil
}

// conditionSetToJSON serializes an optional condition set; nil stores as NULL.
func conditionSetToJSON(set *domain.ConditionSet) (interface{}, error) {
	if set == nil {
		return nil, nil
	}
	b, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("marshaling condition set: %w", err)
	}
	return string(b), nil
}
