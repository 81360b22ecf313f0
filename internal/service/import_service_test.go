package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/repository"
	"github.com/showrunnerhq/showrunner/internal/service"
	"github.com/showrunnerhq/showrunner/internal/testutil"
)

const importYAML = `project_id: proj-1
defaults:
  type: event
  timezone: Europe/Berlin
lanes:
  - slug: PROMO
    name: Promotion
  - slug: SHOWS
items:
  - ref: announce
    title: Announce tour
    type: milestone
    lane: PROMO
    starts_at: 2026-05-01T10:00:00Z
  - ref: opener
    title: Opening night
    lane: SHOWS
    starts_at: 2026-06-01T19:00:00Z
    ends_at: 2026-06-01T23:00:00Z
    labels:
      city: Berlin
dependencies:
  - from_ref: announce
    to_ref: opener
    kind: FS
`

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportService_ImportFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := service.NewImportService(testutil.NewTestUoW(database))
	itemRepo := repository.NewSQLiteTimelineItemRepo(database)
	laneRepo := repository.NewSQLiteLaneRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	ctx := context.Background()

	report, err := svc.ImportFile(ctx, writeImportFile(t, importYAML), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, report.LanesCreated)
	assert.Equal(t, 0, report.LanesReused)
	assert.Equal(t, 2, report.Items)
	assert.Equal(t, 1, report.Dependencies)

	items, err := itemRepo.ListByProject(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Announce tour", items[0].Title)
	assert.Equal(t, domain.ItemMilestone, items[0].Type)
	assert.Equal(t, domain.ItemEvent, items[1].Type, "file default type")
	assert.Equal(t, "Europe/Berlin", items[1].Timezone, "file default timezone")
	assert.Equal(t, "Berlin", items[1].City())

	lane, err := laneRepo.GetBySlug(ctx, "PROMO", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Promotion", lane.Name)
	assert.Equal(t, domain.LaneScopeUser, lane.Scope)

	deps, err := depRepo.ListByProject(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, items[0].ID, deps[0].FromItemID)
	assert.Equal(t, items[1].ID, deps[0].ToItemID)
}

func TestImportService_ReusesExistingLanes(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := service.NewImportService(testutil.NewTestUoW(database))
	laneRepo := repository.NewSQLiteLaneRepo(database)
	ctx := context.Background()

	existing := testutil.NewTestLane("PROMO", testutil.WithLaneOwner("user-1"))
	existing.Name = "My promo lane"
	require.NoError(t, laneRepo.Create(ctx, existing))

	report, err := svc.ImportFile(ctx, writeImportFile(t, importYAML), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.LanesCreated)
	assert.Equal(t, 1, report.LanesReused)

	lane, err := laneRepo.GetBySlug(ctx, "PROMO", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "My promo lane", lane.Name, "existing lane kept as-is")
}

func TestImportService_ValidationFailureWritesNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := service.NewImportService(testutil.NewTestUoW(database))
	itemRepo := repository.NewSQLiteTimelineItemRepo(database)
	ctx := context.Background()

	// Cyclic dependencies between the two items.
	bad := importYAML + `  - from_ref: opener
    to_ref: announce
`
	_, err := svc.ImportFile(ctx, writeImportFile(t, bad), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid import file")

	items, listErr := itemRepo.ListByProject(ctx, "proj-1")
	require.NoError(t, listErr)
	assert.Empty(t, items)
}

func TestImportService_MissingFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := service.NewImportService(testutil.NewTestUoW(database))

	_, err := svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}
