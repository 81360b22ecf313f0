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

const approvalColumns = `id, project_id, type, status, payload, requested_by, created_by,
		approver_id, approved_at, declined_at, resolution_note, created_at, updated_at`

// SQLiteApprovalRepo implements ApprovalRepo using a SQLite database.
type SQLiteApprovalRepo struct {
	db db.DBTX
}

// NewSQLiteApprovalRepo creates a new SQLiteApprovalRepo.
func NewSQLiteApprovalRepo(conn db.DBTX) *SQLiteApprovalRepo {
	return &SQLiteApprovalRepo{db: conn}
}

func (r *SQLiteApprovalRepo) Create(ctx context.Context, a *domain.Approval) error {
	payload, err := json.Marshal(a.Payload)
	if err != nil {
		return fmt.Errorf("marshaling approval payload: %w", err)
	}
	query := `INSERT INTO approvals (` + approvalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.ProjectID, string(a.Type), string(a.Status), string(payload),
		a.RequestedBy, a.CreatedBy, a.ApproverID,
		nullableTimeToString(a.ApprovedAt), nullableTimeToString(a.DeclinedAt),
		a.ResolutionNote,
		a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting approval: %w", err)
	}
	return nil
}

func (r *SQLiteApprovalRepo) GetByID(ctx context.Context, id string) (*domain.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE id = ?`
	return r.scanApproval(r.db.QueryRowContext(ctx, query, id))
}

// ListPending returns pending approvals, optionally filtered by project,
// oldest first.
func (r *SQLiteApprovalRepo) ListPending(ctx context.Context, projectID string) ([]*domain.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE status = 'pending'`
	args := []any{}
	if projectID != "" {
		query += ` AND project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pending approvals: %w", err)
	}
	defer rows.Close()

	var approvals []*domain.Approval
	for rows.Next() {
		a, err := r.scanApprovalRow(rows)
		if err != nil {
			return nil, err
		}
		approvals = append(approvals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating approvals: %w", err)
	}
	return approvals, nil
}

// UpdateResolution writes only the terminal metadata fields; the payload and
// creation fields are immutable after insert.
func (r *SQLiteApprovalRepo) UpdateResolution(ctx context.Context, a *domain.Approval) error {
	query := `UPDATE approvals SET status = ?, approver_id = ?, approved_at = ?,
		declined_at = ?, resolution_note = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(a.Status), a.ApproverID,
		nullableTimeToString(a.ApprovedAt), nullableTimeToString(a.DeclinedAt),
		a.ResolutionNote, a.UpdatedAt.Format(time.RFC3339), a.ID)
	if err != nil {
		return fmt.Errorf("updating approval resolution: %w", err)
	}
	return nil
}

func (r *SQLiteApprovalRepo) scanApproval(row *sql.Row) (*domain.Approval, error) {
	var a domain.Approval
	var typeStr, statusStr, payloadStr string
	var approvedAtStr, declinedAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&a.ID, &a.ProjectID, &typeStr, &statusStr, &payloadStr,
		&a.RequestedBy, &a.CreatedBy, &a.ApproverID,
		&approvedAtStr, &declinedAtStr, &a.ResolutionNote,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("approval: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning approval: %w", err)
	}
	return r.populateApproval(&a, typeStr, statusStr, payloadStr,
		approvedAtStr, declinedAtStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteApprovalRepo) scanApprovalRow(rows *sql.Rows) (*domain.Approval, error) {
	var a domain.Approval
	var typeStr, statusStr, payloadStr string
	var approvedAtStr, declinedAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := rows.Scan(&a.ID, &a.ProjectID, &typeStr, &statusStr, &payloadStr,
		&a.RequestedBy, &a.CreatedBy, &a.ApproverID,
		&approvedAtStr, &declinedAtStr, &a.ResolutionNote,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning approval row: %w", err)
	}
	return r.populateApproval(&a, typeStr, statusStr, payloadStr,
		approvedAtStr, declinedAtStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteApprovalRepo) populateApproval(
	a *domain.Approval,
	typeStr, statusStr, payloadStr string,
	approvedAtStr, declinedAtStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Approval, error) {
	a.Type = domain.ApprovalType(typeStr)
	a.Status = domain.ApprovalStatus(statusStr)
	a.ApprovedAt = parseNullableTime(approvedAtStr)
	a.DeclinedAt = parseNullableTime(declinedAtStr)

	if payloadStr != "" {
		if err := json.Unmarshal([]byte(payloadStr), &a.Payload); err != nil {
			return nil, fmt.Errorf("unmarshaling approval payload: %w", err)
		}
	}

	var err error
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing approval created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing approval updated_at: %w", err)
	}
	return a, nil
}
