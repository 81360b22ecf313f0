package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates are tolerated because the migration system re-runs the full list.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS lanes (
		id          TEXT PRIMARY KEY,
		slug        TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '',
		icon        TEXT NOT NULL DEFAULT '',
		sort_order  INTEGER NOT NULL DEFAULT 0,
		is_default  INTEGER NOT NULL DEFAULT 0,
		auto_assign TEXT,
		scope       TEXT NOT NULL DEFAULT 'global'
		            CHECK(scope IN ('global','user')),
		owner_id    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_lanes_slug_owner ON lanes(slug, owner_id)`,

	`CREATE TABLE IF NOT EXISTS timeline_items (
		id                  TEXT PRIMARY KEY,
		project_id          TEXT NOT NULL,
		type                TEXT NOT NULL DEFAULT 'other'
		                    CHECK(type IN ('event','task','milestone','hold','other')),
		lane                TEXT NOT NULL DEFAULT '',
		kind                TEXT NOT NULL DEFAULT '',
		title               TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		starts_at           TEXT,
		ends_at             TEXT,
		due_at              TEXT,
		timezone            TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'planned'
		                    CHECK(status IN ('planned','confirmed','done','cancelled')),
		priority_score      REAL,
		priority_components TEXT NOT NULL DEFAULT '',
		labels              TEXT NOT NULL DEFAULT '',
		links               TEXT NOT NULL DEFAULT '',
		created_by          TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_timeline_items_project ON timeline_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timeline_items_lane ON timeline_items(lane)`,
	`CREATE INDEX IF NOT EXISTS idx_timeline_items_starts ON timeline_items(starts_at)`,

	`CREATE TABLE IF NOT EXISTS timeline_dependencies (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL,
		from_item_id TEXT NOT NULL REFERENCES timeline_items(id) ON DELETE CASCADE,
		to_item_id   TEXT NOT NULL REFERENCES timeline_items(id) ON DELETE CASCADE,
		kind         TEXT NOT NULL DEFAULT 'FS' CHECK(kind IN ('FS','SS')),
		note         TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		UNIQUE(from_item_id, to_item_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dependencies_to ON timeline_dependencies(to_item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_project ON timeline_dependencies(project_id)`,

	`CREATE TABLE IF NOT EXISTS approvals (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL DEFAULT '',
		type            TEXT NOT NULL
		                CHECK(type IN ('project_email_link','timeline_item_create',
		                               'project_task_create','timeline_item_from_email')),
		status          TEXT NOT NULL DEFAULT 'pending'
		                CHECK(status IN ('pending','approved','declined')),
		payload         TEXT NOT NULL DEFAULT '{}',
		requested_by    TEXT NOT NULL DEFAULT '',
		created_by      TEXT NOT NULL DEFAULT '',
		approver_id     TEXT NOT NULL DEFAULT '',
		approved_at     TEXT,
		declined_at     TEXT,
		resolution_note TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_approvals_status ON approvals(status)`,
	`CREATE INDEX IF NOT EXISTS idx_approvals_project ON approvals(project_id)`,

	`CREATE TABLE IF NOT EXISTS assignment_rules (
		id          TEXT PRIMARY KEY,
		owner_id    TEXT NOT NULL,
		project_id  TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		enabled     INTEGER NOT NULL DEFAULT 1,
		sort_order  INTEGER NOT NULL DEFAULT 0,
		conditions  TEXT NOT NULL DEFAULT '{}',
		confidence  TEXT NOT NULL DEFAULT 'medium'
		            CHECK(confidence IN ('high','medium','low')),
		action_note TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_rules_owner ON assignment_rules(owner_id)`,

	`CREATE TABLE IF NOT EXISTS project_record_links (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		record_id  TEXT NOT NULL,
		confidence REAL NOT NULL DEFAULT 0,
		source     TEXT NOT NULL DEFAULT 'rule',
		rule_id    TEXT NOT NULL DEFAULT '',
		override   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(project_id, record_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_links_record ON project_record_links(record_id)`,

	`CREATE TABLE IF NOT EXISTS project_tasks (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		assignee_id TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'open' CHECK(status IN ('open','done')),
		created_by  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON project_tasks(project_id)`,

	// Seed the default global lane set. Fixed IDs keep the seed idempotent.
	`INSERT OR IGNORE INTO lanes (id, slug, name, sort_order, is_default, scope, created_at, updated_at) VALUES
		('lane-general',   'GENERAL',   'General',   0, 1, 'global', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
		('lane-promo',     'PROMO',     'Promo',     1, 0, 'global', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
		('lane-logistics', 'LOGISTICS', 'Logistics', 2, 0, 'global', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
		('lane-travel',    'TRAVEL',    'Travel',    3, 0, 'global', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
}
