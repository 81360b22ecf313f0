package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/repository"
	"github.com/showrunnerhq/showrunner/internal/service"
	"github.com/showrunnerhq/showrunner/internal/testutil"
)

func newLaneService(t *testing.T) (service.LaneService, *repository.SQLiteLaneRepo, *repository.SQLiteTimelineItemRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	lanes := repository.NewSQLiteLaneRepo(database)
	items := repository.NewSQLiteTimelineItemRepo(database)
	return service.NewLaneService(lanes, items), lanes, items
}

func TestLaneService_CreateNormalizesAndDefaults(t *testing.T) {
	svc, _, _ := newLaneService(t)
	ctx := context.Background()

	lane := &domain.LaneDefinition{Slug: " promo "}
	require.NoError(t, svc.Create(ctx, lane))

	assert.Equal(t, "PROMO", lane.Slug)
	assert.Equal(t, "PROMO", lane.Name, "name defaults to the slug")
	assert.Equal(t, domain.LaneScopeGlobal, lane.Scope)
	assert.NotEmpty(t, lane.ID)

	owned := &domain.LaneDefinition{Slug: "SIDE", OwnerID: "user-1"}
	require.NoError(t, svc.Create(ctx, owned))
	assert.Equal(t, domain.LaneScopeUser, owned.Scope)
}

func TestLaneService_CreateRejectsBadSlug(t *testing.T) {
	svc, _, _ := newLaneService(t)
	ctx := context.Background()

	assert.Error(t, svc.Create(ctx, &domain.LaneDefinition{}))
	assert.Error(t, svc.Create(ctx, &domain.LaneDefinition{Slug: "9LIVES"}))
	assert.Error(t, svc.Create(ctx, &domain.LaneDefinition{Slug: "X"}))
}

func TestLaneService_GetBySlugNormalizes(t *testing.T) {
	svc, _, _ := newLaneService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &domain.LaneDefinition{Slug: "PROMO"}))

	got, err := svc.GetBySlug(ctx, "promo", "")
	require.NoError(t, err)
	assert.Equal(t, "PROMO", got.Slug)
}

func TestLaneService_DeleteBlockedWhileReferenced(t *testing.T) {
	svc, _, itemRepo := newLaneService(t)
	ctx := context.Background()

	lane := &domain.LaneDefinition{Slug: "PROMO"}
	require.NoError(t, svc.Create(ctx, lane))
	require.NoError(t, itemRepo.Create(ctx, testutil.NewTestItem("proj-1", "Interview",
		testutil.WithLane("PROMO"))))

	err := svc.Delete(ctx, lane.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still referenced")

	// Still present.
	_, err = svc.GetBySlug(ctx, "PROMO", "")
	assert.NoError(t, err)
}

func TestLaneService_DeleteUnreferenced(t *testing.T) {
	svc, _, _ := newLaneService(t)
	ctx := context.Background()

	lane := &domain.LaneDefinition{Slug: "PROMO"}
	require.NoError(t, svc.Create(ctx, lane))
	require.NoError(t, svc.Delete(ctx, lane.ID))

	_, err := svc.GetBySlug(ctx, "PROMO", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLaneService_ReapplyRules(t *testing.T) {
	svc, laneRepo, itemRepo := newLaneService(t)
	ctx := context.Background()

	require.NoError(t, laneRepo.Create(ctx, testutil.NewTestLane("TRAVEL",
		testutil.WithAutoAssign(domain.ConditionSet{
			Match: domain.MatchAll,
			Conditions: []domain.Condition{
				{Field: "kind", Op: domain.OpEquals, Value: "travel"},
			},
		}))))

	// Unassigned travel item: picked up by the resolver.
	moved := testutil.NewTestItem("proj-1", "Flight to Berlin",
		testutil.WithLane(""), testutil.WithKind("travel"))
	// Unassigned non-travel item: falls to the type default.
	defaulted := testutil.NewTestItem("proj-1", "Press day",
		testutil.WithLane(""))
	// Already assigned elsewhere: untouched.
	pinned := testutil.NewTestItem("proj-1", "Berlin show",
		testutil.WithLane("SHOWS"), testutil.WithKind("travel"))

	for _, it := range []*domain.TimelineItem{moved, defaulted, pinned} {
		require.NoError(t, itemRepo.Create(ctx, it))
	}

	report, err := svc.ReapplyRules(ctx, "proj-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 0, report.Unchanged)
	assert.Equal(t, 0, report.Skipped)

	got, err := itemRepo.GetByID(ctx, moved.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRAVEL", got.Lane)

	got, err = itemRepo.GetByID(ctx, defaulted.ID)
	require.NoError(t, err)
	assert.Equal(t, "EVENT", got.Lane)

	got, err = itemRepo.GetByID(ctx, pinned.ID)
	require.NoError(t, err)
	assert.Equal(t, "SHOWS", got.Lane)
}

func TestLaneService_ReapplyRulesScopedToLane(t *testing.T) {
	svc, laneRepo, itemRepo := newLaneService(t)
	ctx := context.Background()

	require.NoError(t, laneRepo.Create(ctx, testutil.NewTestLane("TRAVEL",
		testutil.WithAutoAssign(domain.ConditionSet{
			Match: domain.MatchAll,
			Conditions: []domain.Condition{
				{Field: "kind", Op: domain.OpEquals, Value: "travel"},
			},
		}))))

	inLane := testutil.NewTestItem("proj-1", "Flight",
		testutil.WithLane("GENERAL"), testutil.WithKind("travel"))
	stays := testutil.NewTestItem("proj-1", "Show",
		testutil.WithLane("SHOWS"), testutil.WithKind("travel"))
	require.NoError(t, itemRepo.Create(ctx, inLane))
	require.NoError(t, itemRepo.Create(ctx, stays))

	report, err := svc.ReapplyRules(ctx, "proj-1", "general", "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	got, err := itemRepo.GetByID(ctx, inLane.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRAVEL", got.Lane)

	got, err = itemRepo.GetByID(ctx, stays.ID)
	require.NoError(t, err)
	assert.Equal(t, "SHOWS", got.Lane)
}
