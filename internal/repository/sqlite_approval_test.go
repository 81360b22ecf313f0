package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/repository"
	"github.com/showrunnerhq/showrunner/internal/testutil"
)

func TestApprovalRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteApprovalRepo(database)
	ctx := context.Background()

	start := repoBase.Add(6 * time.Hour)
	a := testutil.NewTestApproval("proj-1", domain.ApprovalTimelineItemCreate,
		testutil.WithPayload(domain.ApprovalPayload{
			TimelineSeed: &domain.TimelineSeed{
				Type:     "event",
				Lane:     "PROMO",
				Title:    "Radio interview",
				StartsAt: &start,
				Labels:   map[string]string{"city": "Berlin"},
			},
		}))
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalTimelineItemCreate, got.Type)
	assert.Equal(t, domain.ApprovalPending, got.Status)
	assert.Equal(t, "user-1", got.RequestedBy)
	require.NotNil(t, got.Payload.TimelineSeed)
	assert.Equal(t, "Radio interview", got.Payload.TimelineSeed.Title)
	assert.Equal(t, "Berlin", got.Payload.TimelineSeed.Labels["city"])
	require.NotNil(t, got.Payload.TimelineSeed.StartsAt)
	assert.True(t, got.Payload.TimelineSeed.StartsAt.Equal(start))
}

func TestApprovalRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteApprovalRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApprovalRepo_ListPending(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteApprovalRepo(database)
	ctx := context.Background()

	older := testutil.NewTestApproval("proj-1", domain.ApprovalProjectEmailLink,
		testutil.WithPayload(domain.ApprovalPayload{RecordID: "rec-1"}))
	older.CreatedAt = repoBase
	newer := testutil.NewTestApproval("proj-1", domain.ApprovalProjectEmailLink,
		testutil.WithPayload(domain.ApprovalPayload{RecordID: "rec-2"}))
	newer.CreatedAt = repoBase.Add(time.Hour)
	resolved := testutil.NewTestApproval("proj-1", domain.ApprovalProjectEmailLink,
		testutil.WithPayload(domain.ApprovalPayload{RecordID: "rec-3"}))
	resolved.Status = domain.ApprovalApproved
	elsewhere := testutil.NewTestApproval("proj-2", domain.ApprovalProjectEmailLink,
		testutil.WithPayload(domain.ApprovalPayload{RecordID: "rec-4"}))

	for _, a := range []*domain.Approval{newer, older, resolved, elsewhere} {
		require.NoError(t, repo.Create(ctx, a))
	}

	pending, err := repo.ListPending(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, older.ID, pending[0].ID, "oldest first")
	assert.Equal(t, newer.ID, pending[1].ID)

	// No project filter: every pending approval.
	all, err := repo.ListPending(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestApprovalRepo_UpdateResolution(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteApprovalRepo(database)
	ctx := context.Background()

	a := testutil.NewTestApproval("proj-1", domain.ApprovalProjectTaskCreate,
		testutil.WithPayload(domain.ApprovalPayload{
			TaskSeed: &domain.TaskSeed{Title: "Book rehearsal space"},
		}))
	require.NoError(t, repo.Create(ctx, a))

	now := time.Now().UTC().Truncate(time.Second)
	a.Status = domain.ApprovalDeclined
	a.ApproverID = "manager-1"
	a.DeclinedAt = &now
	a.ResolutionNote = "budget freeze"
	a.UpdatedAt = now
	require.NoError(t, repo.UpdateResolution(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalDeclined, got.Status)
	assert.Equal(t, "manager-1", got.ApproverID)
	require.NotNil(t, got.DeclinedAt)
	assert.True(t, got.DeclinedAt.Equal(now))
	assert.Equal(t, "budget freeze", got.ResolutionNote)
	// The payload is immutable across resolution.
	require.NotNil(t, got.Payload.TaskSeed)
	assert.Equal(t, "Book rehearsal space", got.Payload.TaskSeed.Title)
}
