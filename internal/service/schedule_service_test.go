package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/repository"
	"github.com/showrunnerhq/showrunner/internal/schedule"
	"github.com/showrunnerhq/showrunner/internal/service"
	"github.com/showrunnerhq/showrunner/internal/testutil"
)

func TestScheduleService_Conflicts(t *testing.T) {
	database := testutil.NewTestDB(t)
	itemRepo := repository.NewSQLiteTimelineItemRepo(database)
	svc := service.NewScheduleService(itemRepo)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, itemRepo.Create(ctx, testutil.NewTestItem("proj-1", "Radio interview",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(base, base.Add(2*time.Hour)))))
	require.NoError(t, itemRepo.Create(ctx, testutil.NewTestItem("proj-1", "Podcast taping",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(base.Add(time.Hour), base.Add(3*time.Hour)))))
	require.NoError(t, itemRepo.Create(ctx, testutil.NewTestItem("proj-2", "Unrelated",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(base, base.Add(2*time.Hour)))))

	conflicts, err := svc.Conflicts(ctx, "proj-1", 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.SeverityWarning, conflicts[0].Severity)
}

func TestScheduleService_FindSlots(t *testing.T) {
	database := testutil.NewTestDB(t)
	itemRepo := repository.NewSQLiteTimelineItemRepo(database)
	svc := service.NewScheduleService(itemRepo)
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, itemRepo.Create(ctx, testutil.NewTestItem("proj-1", "Midday block",
		testutil.WithWindow(day.Add(10*time.Hour), day.Add(14*time.Hour)))))

	res, err := svc.FindSlots(ctx, "proj-1", schedule.SlotOptions{
		RangeStart: day,
		RangeEnd:   day.Add(24 * time.Hour),
		Duration:   2 * time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, res.Slots, 2)
	assert.Equal(t, 1, res.Meta.ScannedItems)
}

func TestLogUseCaseObserver_WritesEvents(t *testing.T) {
	var buf bytes.Buffer
	obs := service.NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), service.UseCaseEvent{
		Name:     "conflict_scan",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"project_id": "proj-1"},
	})

	out := buf.String()
	assert.Contains(t, out, "service_use_case")
	assert.Contains(t, out, "use_case=conflict_scan")
	assert.Contains(t, out, "project_id=proj-1")
}
