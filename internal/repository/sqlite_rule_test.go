package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/repository"
	"github.com/showrunnerhq/showrunner/internal/testutil"
)

func TestRuleRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteAssignmentRuleRepo(database)
	ctx := context.Background()

	rule := testutil.NewTestRule("user-1", "proj-1", "festival",
		testutil.WithConfidence(domain.ConfidenceHigh),
		testutil.WithRuleSortOrder(5))
	rule.ActionNote = "booking inbox"
	require.NoError(t, repo.Create(ctx, rule))

	got, err := repo.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.OwnerID)
	assert.Equal(t, "proj-1", got.ProjectID)
	assert.True(t, got.Enabled)
	assert.Equal(t, 5, got.SortOrder)
	assert.Equal(t, domain.ConfidenceHigh, got.Confidence)
	assert.Equal(t, "booking inbox", got.ActionNote)
	require.Len(t, got.Conditions.Conditions, 1)
	assert.Equal(t, "festival", got.Conditions.Conditions[0].Value)
}

func TestRuleRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteAssignmentRuleRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRuleRepo_ListByOwner(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteAssignmentRuleRepo(database)
	ctx := context.Background()

	second := testutil.NewTestRule("user-1", "proj-1", "press", testutil.WithRuleSortOrder(2))
	first := testutil.NewTestRule("user-1", "proj-1", "festival", testutil.WithRuleSortOrder(1))
	disabled := testutil.NewTestRule("user-1", "proj-2", "invoice",
		testutil.WithRuleSortOrder(3), testutil.WithRuleDisabled())
	other := testutil.NewTestRule("user-2", "proj-1", "tour")

	for _, r := range []*domain.AssignmentRule{second, first, disabled, other} {
		require.NoError(t, repo.Create(ctx, r))
	}

	enabled, err := repo.ListByOwner(ctx, "user-1", true)
	require.NoError(t, err)
	require.Len(t, enabled, 2)
	assert.Equal(t, first.ID, enabled[0].ID, "ascending sort order")
	assert.Equal(t, second.ID, enabled[1].ID)

	all, err := repo.ListByOwner(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRuleRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteAssignmentRuleRepo(database)
	ctx := context.Background()

	rule := testutil.NewTestRule("user-1", "proj-1", "festival")
	require.NoError(t, repo.Create(ctx, rule))

	rule.Enabled = false
	rule.Name = "paused festival rule"
	rule.Conditions.Conditions = append(rule.Conditions.Conditions,
		domain.Condition{Field: "category", Op: domain.OpEquals, Value: "booking"})
	require.NoError(t, repo.Update(ctx, rule))

	got, err := repo.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	assert.Equal(t, "paused festival rule", got.Name)
	assert.Len(t, got.Conditions.Conditions, 2)
}

func TestRuleRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteAssignmentRuleRepo(database)
	ctx := context.Background()

	rule := testutil.NewTestRule("user-1", "proj-1", "festival")
	require.NoError(t, repo.Create(ctx, rule))
	require.NoError(t, repo.Delete(ctx, rule.ID))

	_, err := repo.GetByID(ctx, rule.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
