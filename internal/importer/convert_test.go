package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

func TestConvert_FullSchedule(t *testing.T) {
	schema := validSchema()

	sched, err := Convert(schema, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "proj-1", sched.ProjectID)

	require.Len(t, sched.Lanes, 1)
	lane := sched.Lanes[0]
	assert.NotEmpty(t, lane.ID)
	assert.Equal(t, "PROMO", lane.Slug)
	assert.Equal(t, "Promo", lane.Name)
	assert.Equal(t, domain.LaneScopeUser, lane.Scope)
	assert.Equal(t, "user-1", lane.OwnerID)

	require.Len(t, sched.Items, 2)
	first := sched.Items[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "proj-1", first.ProjectID)
	assert.Equal(t, domain.ItemEvent, first.Type)
	assert.Equal(t, "PROMO", first.Lane)
	assert.Equal(t, domain.ItemPlanned, first.Status)
	assert.Equal(t, "user-1", first.CreatedBy)
	require.NotNil(t, first.StartsAt)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), *first.StartsAt)

	require.Len(t, sched.Dependencies, 1)
	dep := sched.Dependencies[0]
	assert.Equal(t, first.ID, dep.FromItemID)
	assert.Equal(t, sched.Items[1].ID, dep.ToItemID)
	assert.Equal(t, domain.DependencyFS, dep.Kind)
}

func TestConvert_DefaultsCascade(t *testing.T) {
	schema := &ImportSchema{
		ProjectID: "proj-1",
		Defaults: &DefaultsImport{
			Type:     "task",
			Lane:     "logistics",
			Timezone: "Europe/Berlin",
		},
		Items: []ItemImport{
			{Ref: "a", Title: "Book hotel"},
			{Ref: "b", Title: "Soundcheck", Type: "event", Lane: "GENERAL", Timezone: "America/New_York"},
		},
	}

	sched, err := Convert(schema, "")
	require.NoError(t, err)
	require.Len(t, sched.Items, 2)

	a := sched.Items[0]
	assert.Equal(t, domain.ItemTask, a.Type)
	assert.Equal(t, "LOGISTICS", a.Lane)
	assert.Equal(t, "Europe/Berlin", a.Timezone)

	b := sched.Items[1]
	assert.Equal(t, domain.ItemEvent, b.Type)
	assert.Equal(t, "GENERAL", b.Lane)
	assert.Equal(t, "America/New_York", b.Timezone)
}

func TestConvert_NoOwnerGlobalLanes(t *testing.T) {
	schema := &ImportSchema{
		ProjectID: "proj-1",
		Lanes:     []LaneImport{{Slug: "TRAVEL"}},
		Items:     []ItemImport{{Ref: "a", Title: "Flight"}},
	}

	sched, err := Convert(schema, "")
	require.NoError(t, err)
	require.Len(t, sched.Lanes, 1)
	assert.Equal(t, domain.LaneScopeGlobal, sched.Lanes[0].Scope)
	assert.Equal(t, "TRAVEL", sched.Lanes[0].Name)
}

func TestConvert_UnknownDependencyKindDefaultsToFS(t *testing.T) {
	schema := &ImportSchema{
		ProjectID: "proj-1",
		Items: []ItemImport{
			{Ref: "a", Title: "A"},
			{Ref: "b", Title: "B"},
		},
		Dependencies: []DependencyImport{{FromRef: "a", ToRef: "b"}},
	}

	sched, err := Convert(schema, "")
	require.NoError(t, err)
	require.Len(t, sched.Dependencies, 1)
	assert.Equal(t, domain.DependencyFS, sched.Dependencies[0].Kind)
}
