package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/showrunnerhq/showrunner/internal/db"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

// timelineItemColumns is the canonical SELECT column list for timeline_items.
const timelineItemColumns = `id, project_id, type, lane, kind, title, description,
		starts_at, ends_at, due_at, timezone, status,
		priority_score, priority_components, labels, links,
		created_by, created_at, updated_at`

// SQLiteTimelineItemRepo implements TimelineItemRepo using a SQLite database.
type SQLiteTimelineItemRepo struct {
	db db.DBTX
}

// NewSQLiteTimelineItemRepo creates a new SQLiteTimelineItemRepo.
func NewSQLiteTimelineItemRepo(conn db.DBTX) *SQLiteTimelineItemRepo {
	return &SQLiteTimelineItemRepo{db: conn}
}

func (r *SQLiteTimelineItemRepo) Create(ctx context.Context, it *domain.TimelineItem) error {
	components, err := floatMapToJSON(it.PriorityComponents)
	if err != nil {
		return err
	}
	labels, err := stringMapToJSON(it.Labels)
	if err != nil {
		return err
	}
	links, err := stringMapToJSON(it.Links)
	if err != nil {
		return err
	}

	query := `INSERT INTO timeline_items (` + timelineItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		it.ID,
		it.ProjectID,
		string(it.Type),
		it.Lane,
		it.Kind,
		it.Title,
		it.Description,
		nullableTimeToString(it.StartsAt),
		nullableTimeToString(it.EndsAt),
		nullableTimeToString(it.DueAt),
		it.Timezone,
		string(it.Status),
		nullableFloatToValue(it.PriorityScore),
		components,
		labels,
		links,
		it.CreatedBy,
		it.CreatedAt.Format(time.RFC3339),
		it.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting timeline item: %w", err)
	}
	return nil
}

func (r *SQLiteTimelineItemRepo) GetByID(ctx context.Context, id string) (*domain.TimelineItem, error) {
	query := `SELECT ` + timelineItemColumns + ` FROM timeline_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanItem(row)
}

func (r *SQLiteTimelineItemRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.TimelineItem, error) {
	query := `SELECT ` + timelineItemColumns + ` FROM timeline_items
		WHERE project_id = ?
		ORDER BY COALESCE(starts_at, due_at, created_at), created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing timeline items by project: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteTimelineItemRepo) CountByLane(ctx context.Context, laneSlug string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM timeline_items WHERE lane = ?`, laneSlug).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting items by lane: %w", err)
	}
	return count, nil
}

func (r *SQLiteTimelineItemRepo) Update(ctx context.Context, it *domain.TimelineItem) error {
	components, err := floatMapToJSON(it.PriorityComponents)
	if err != nil {
		return err
	}
	labels, err := stringMapToJSON(it.Labels)
	if err != nil {
		return err
	}
	links, err := stringMapToJSON(it.Links)
	if err != nil {
		return err
	}

	query := `UPDATE timeline_items SET project_id = ?, type = ?, lane = ?, kind = ?,
		title = ?, description = ?, starts_at = ?, ends_at = ?, due_at = ?, timezone = ?,
		status = ?, priority_score = ?, priority_components = ?, labels = ?, links = ?,
		updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		it.ProjectID,
		string(it.Type),
		it.Lane,
		it.Kind,
		it.Title,
		it.Description,
		nullableTimeToString(it.StartsAt),
		nullableTimeToString(it.EndsAt),
		nullableTimeToString(it.DueAt),
		it.Timezone,
		string(it.Status),
		nullableFloatToValue(it.PriorityScore),
		components,
		labels,
		links,
		it.UpdatedAt.Format(time.RFC3339),
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating timeline item: %w", err)
	}
	return nil
}

func (r *SQLiteTimelineItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM timeline_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting timeline item: %w", err)
	}
	return nil
}

// scanItem scans a single timeline item from a *sql.Row.
func (r *SQLiteTimelineItemRepo) scanItem(row *sql.Row) (*domain.TimelineItem, error) {
	var it domain.TimelineItem
	var typeStr, statusStr string
	var startsAtStr, endsAtStr, dueAtStr sql.NullString
	var priorityScore sql.NullFloat64
	var componentsStr, labelsStr, linksStr string
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&it.ID, &it.ProjectID, &typeStr, &it.Lane, &it.Kind, &it.Title, &it.Description,
		&startsAtStr, &endsAtStr, &dueAtStr, &it.Timezone, &statusStr,
		&priorityScore, &componentsStr, &labelsStr, &linksStr,
		&it.CreatedBy, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("timeline item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning timeline item: %w", err)
	}

	return r.populateItem(&it, typeStr, statusStr, startsAtStr, endsAtStr, dueAtStr,
		priorityScore, componentsStr, labelsStr, linksStr, createdAtStr, updatedAtStr)
}

// scanItems scans multiple timeline items from *sql.Rows.
func (r *SQLiteTimelineItemRepo) scanItems(rows *sql.Rows) ([]*domain.TimelineItem, error) {
	var items []*domain.TimelineItem
	for rows.Next() {
		var it domain.TimelineItem
		var typeStr, statusStr string
		var startsAtStr, endsAtStr, dueAtStr sql.NullString
		var priorityScore sql.NullFloat64
		var componentsStr, labelsStr, linksStr string
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&it.ID, &it.ProjectID, &typeStr, &it.Lane, &it.Kind, &it.Title, &it.Description,
			&startsAtStr, &endsAtStr, &dueAtStr, &it.Timezone, &statusStr,
			&priorityScore, &componentsStr, &labelsStr, &linksStr,
			&it.CreatedBy, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning timeline item row: %w", err)
		}

		item, err := r.populateItem(&it, typeStr, statusStr, startsAtStr, endsAtStr, dueAtStr,
			priorityScore, componentsStr, labelsStr, linksStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timeline items: %w", err)
	}
	return items, nil
}

// populateItem fills in parsed fields on a TimelineItem after scanning raw values.
func (r *SQLiteTimelineItemRepo) populateItem(
	it *domain.TimelineItem,
	typeStr, statusStr string,
	startsAtStr, endsAtStr, dueAtStr sql.NullString,
	priorityScore sql.NullFloat64,
	componentsStr, labelsStr, linksStr string,
	createdAtStr, updatedAtStr string,
) (*domain.TimelineItem, error) {
	it.Type = domain.ItemType(typeStr)
	it.Status = domain.ItemStatus(statusStr)
	it.StartsAt = parseNullableTime(startsAtStr)
	it.EndsAt = parseNullableTime(endsAtStr)
	it.DueAt = parseNullableTime(dueAtStr)
	it.PriorityScore = parseNullableFloat(priorityScore)

	var err error
	if it.PriorityComponents, err = jsonToFloatMap(componentsStr); err != nil {
		return nil, err
	}
	if it.Labels, err = jsonToStringMap(labelsStr); err != nil {
		return nil, err
	}
	if it.Links, err = jsonToStringMap(linksStr); err != nil {
		return nil, err
	}

	if it.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if it.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return it, nil
}
