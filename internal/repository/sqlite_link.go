package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/showrunnerhq/showrunner/internal/db"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

const linkColumns = `id, project_id, record_id, confidence, source, rule_id, override,
		created_at, updated_at`

// SQLiteRecordLinkRepo implements RecordLinkRepo using a SQLite database.
type SQLiteRecordLinkRepo struct {
	db db.DBTX
}

// NewSQLiteRecordLinkRepo creates a new SQLiteRecordLinkRepo.
func NewSQLiteRecordLinkRepo(conn db.DBTX) *SQLiteRecordLinkRepo {
	return &SQLiteRecordLinkRepo{db: conn}
}

// Upsert inserts a link row or refreshes the existing (project, record) row.
// An upsert clears any override flag: an explicit new link wins over a past
// manual removal.
func (r *SQLiteRecordLinkRepo) Upsert(ctx context.Context, l *domain.RecordLink) error {
	query := `INSERT INTO project_record_links (` + linkColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, record_id) DO UPDATE SET
			confidence = excluded.confidence,
			source     = excluded.source,
			rule_id    = excluded.rule_id,
			override   = 0,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.ProjectID, l.RecordID, l.Confidence, l.Source, l.RuleID,
		boolToInt(l.Override),
		l.CreatedAt.Format(time.RFC3339), l.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting record link: %w", err)
	}
	return nil
}

func (r *SQLiteRecordLinkRepo) Get(ctx context.Context, projectID, recordID string) (*domain.RecordLink, error) {
	query := `SELECT ` + linkColumns + ` FROM project_record_links
		WHERE project_id = ? AND record_id = ?`
	row := r.db.QueryRowContext(ctx, query, projectID, recordID)

	l, err := r.scanLink(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("record link: %w", ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

func (r *SQLiteRecordLinkRepo) ListByRecord(ctx context.Context, recordID string) ([]*domain.RecordLink, error) {
	query := `SELECT ` + linkColumns + ` FROM project_record_links
		WHERE record_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("listing record links: %w", err)
	}
	defer rows.Close()

	var links []*domain.RecordLink
	for rows.Next() {
		l, err := r.scanLink(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning record link row: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record links: %w", err)
	}
	return links, nil
}

// SetOverride flags (or unflags) a (project, record) pair so rule evaluation
// will not recreate a manually removed link.
func (r *SQLiteRecordLinkRepo) SetOverride(ctx context.Context, projectID, recordID string, override bool) error {
	query := `UPDATE project_record_links SET override = ?, updated_at = ?
		WHERE project_id = ? AND record_id = ?`
	_, err := r.db.ExecContext(ctx, query, boolToInt(override), nowUTC(), projectID, recordID)
	if err != nil {
		return fmt.Errorf("setting record link override: %w", err)
	}
	return nil
}

func (r *SQLiteRecordLinkRepo) scanLink(scan func(dest ...any) error) (*domain.RecordLink, error) {
	var l domain.RecordLink
	var overrideInt int
	var createdAtStr, updatedAtStr string

	err := scan(&l.ID, &l.ProjectID, &l.RecordID, &l.Confidence, &l.Source, &l.RuleID,
		&overrideInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	l.Override = intToBool(overrideInt)
	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing link created_at: %w", err)
	}
	if l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing link updated_at: %w", err)
	}
	return &l, nil
}
