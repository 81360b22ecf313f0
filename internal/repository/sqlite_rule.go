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

const ruleColumns = `id, owner_id, project_id, name, description, enabled, sort_order,
		conditions, confidence, action_note, created_at, updated_at`

// SQLiteAssignmentRuleRepo implements AssignmentRuleRepo using a SQLite database.
type SQLiteAssignmentRuleRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRuleRepo creates a new SQLiteAssignmentRuleRepo.
func NewSQLiteAssignmentRuleRepo(conn db.DBTX) *SQLiteAssignmentRuleRepo {
	return &SQLiteAssignmentRuleRepo{db: conn}
}

func (r *SQLiteAssignmentRuleRepo) Create(ctx context.Context, rule *domain.AssignmentRule) error {
	conditions, err := json.Marshal(rule.Conditions)
	if err != nil {
		return fmt.Errorf("marshaling rule conditions: %w", err)
	}
	query := `INSERT INTO assignment_rules (` + ruleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rule.ID, rule.OwnerID, rule.ProjectID, rule.Name, rule.Description,
		boolToInt(rule.Enabled), rule.SortOrder, string(conditions),
		string(rule.Confidence), rule.ActionNote,
		rule.CreatedAt.Format(time.RFC3339), rule.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting assignment rule: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRuleRepo) GetByID(ctx context.Context, id string) (*domain.AssignmentRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM assignment_rules WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	rule, err := r.scanRule(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("assignment rule: %w", ErrNotFound)
		}
		return nil, err
	}
	return rule, nil
}

// ListByOwner returns a user's rules in ascending sort order, the order in
// which they are evaluated.
func (r *SQLiteAssignmentRuleRepo) ListByOwner(ctx context.Context, ownerID string, enabledOnly bool) ([]*domain.AssignmentRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM assignment_rules WHERE owner_id = ?`
	if enabledOnly {
		query += ` AND enabled = 1`
	}
	query += ` ORDER BY sort_order, created_at`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing assignment rules: %w", err)
	}
	defer rows.Close()

	var rules []*domain.AssignmentRule
	for rows.Next() {
		rule, err := r.scanRule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment rule row: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignment rules: %w", err)
	}
	return rules, nil
}

func (r *SQLiteAssignmentRuleRepo) Update(ctx context.Context, rule *domain.AssignmentRule) error {
	conditions, err := json.Marshal(rule.Conditions)
	if err != nil {
		return fmt.Errorf("marshaling rule conditions: %w", err)
	}
	query := `UPDATE assignment_rules SET name = ?, description = ?, enabled = ?,
		sort_order = ?, conditions = ?, confidence = ?, action_note = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		rule.Name, rule.Description, boolToInt(rule.Enabled),
		rule.SortOrder, string(conditions), string(rule.Confidence), rule.ActionNote,
		rule.UpdatedAt.Format(time.RFC3339), rule.ID)
	if err != nil {
		return fmt.Errorf("updating assignment rule: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRuleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM assignment_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assignment rule: %w", err)
	}
	return nil
}

// scanRule scans one rule via the given Scan function (row or rows).
func (r *SQLiteAssignmentRuleRepo) scanRule(scan func(dest ...any) error) (*domain.AssignmentRule, error) {
	var rule domain.AssignmentRule
	var enabledInt int
	var conditionsStr, confidenceStr, createdAtStr, updatedAtStr string

	err := scan(&rule.ID, &rule.OwnerID, &rule.ProjectID, &rule.Name, &rule.Description,
		&enabledInt, &rule.SortOrder, &conditionsStr, &confidenceStr, &rule.ActionNote,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	rule.Enabled = intToBool(enabledInt)
	rule.Confidence = domain.ConfidenceLevel(confidenceStr)
	if conditionsStr != "" {
		if err := json.Unmarshal([]byte(conditionsStr), &rule.Conditions); err != nil {
			return nil, fmt.Errorf("unmarshaling rule conditions: %w", err)
		}
	}
	if rule.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing rule created_at: %w", err)
	}
	if rule.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing rule updated_at: %w", err)
	}
	return &rule, nil
}
