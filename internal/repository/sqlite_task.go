package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/showrunnerhq/showrunner/internal/db"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

const taskColumns = `id, project_id, title, description, assignee_id, status,
		created_by, created_at, updated_at`

// SQLiteProjectTaskRepo implements ProjectTaskRepo using a SQLite database.
type SQLiteProjectTaskRepo struct {
	db db.DBTX
}

// NewSQLiteProjectTaskRepo creates a new SQLiteProjectTaskRepo.
func NewSQLiteProjectTaskRepo(conn db.DBTX) *SQLiteProjectTaskRepo {
	return &SQLiteProjectTaskRepo{db: conn}
}

func (r *SQLiteProjectTaskRepo) Create(ctx context.Context, t *domain.ProjectTask) error {
	query := `INSERT INTO project_tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.ProjectID, t.Title, t.Description, t.AssigneeID, string(t.Status),
		t.CreatedBy, t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting project task: %w", err)
	}
	return nil
}

func (r *SQLiteProjectTaskRepo) GetByID(ctx context.Context, id string) (*domain.ProjectTask, error) {
	query := `SELECT ` + taskColumns + ` FROM project_tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	t, err := r.scanTask(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project task: %w", ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteProjectTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectTask, error) {
	query := `SELECT ` + taskColumns + ` FROM project_tasks
		WHERE project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.ProjectTask
	for rows.Next() {
		t, err := r.scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning project task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteProjectTaskRepo) scanTask(scan func(dest ...any) error) (*domain.ProjectTask, error) {
	var t domain.ProjectTask
	var statusStr, createdAtStr, updatedAtStr string

	err := scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.AssigneeID, &statusStr,
		&t.CreatedBy, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	t.Status = domain.TaskStatus(statusStr)
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing task created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing task updated_at: %w", err)
	}
	return &t, nil
}
