package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/showrunnerhq/showrunner/internal/db"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

const dependencyColumns = `id, project_id, from_item_id, to_item_id, kind, note, created_at`

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO timeline_dependencies (` + dependencyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.ProjectID, d.FromItemID, d.ToItemID,
		string(d.Kind), d.Note, d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) DeleteIncoming(ctx context.Context, toItemID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM timeline_dependencies WHERE to_item_id = ?`, toItemID)
	if err != nil {
		return fmt.Errorf("deleting incoming dependencies: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListIncoming(ctx context.Context, toItemID string) ([]domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM timeline_dependencies
		WHERE to_item_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, toItemID)
	if err != nil {
		return nil, fmt.Errorf("listing incoming dependencies: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM timeline_dependencies
		WHERE project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project dependencies: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

// scanDependencies scans multiple dependency rows from *sql.Rows.
func (r *SQLiteDependencyRepo) scanDependencies(rows *sql.Rows) ([]domain.Dependency, error) {
	var deps []domain.Dependency
	for rows.Next() {
		var d domain.Dependency
		var kindStr, createdAtStr string
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.FromItemID, &d.ToItemID,
			&kindStr, &d.Note, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		d.Kind = domain.DependencyKind(kindStr)
		var err error
		if d.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing dependency created_at: %w", err)
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
