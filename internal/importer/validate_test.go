package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validSchema() *ImportSchema {
	return &ImportSchema{
		ProjectID: "proj-1",
		Lanes: []LaneImport{
			{Slug: "PROMO", Name: "Promo"},
		},
		Items: []ItemImport{
			{Ref: "i1", Title: "Radio interview", Type: "event", Lane: "PROMO",
				StartsAt: strPtr("2026-09-01T10:00:00Z"), EndsAt: strPtr("2026-09-01T11:00:00Z")},
			{Ref: "i2", Title: "Press day", Type: "event",
				StartsAt: strPtr("2026-09-02T09:00:00Z")},
		},
		Dependencies: []DependencyImport{
			{FromRef: "i1", ToRef: "i2", Kind: "FS"},
		},
	}
}

func containsError(errs []error, substr string) bool {
	for _, err := range errs {
		if strings.Contains(err.Error(), substr) {
			return true
		}
	}
	return false
}

func TestValidateImportSchema_Valid(t *testing.T) {
	errs := ValidateImportSchema(validSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_MissingProjectID(t *testing.T) {
	s := validSchema()
	s.ProjectID = ""
	errs := ValidateImportSchema(s)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "project_id")
}

func TestValidateImportSchema_DuplicateRef(t *testing.T) {
	s := validSchema()
	s.Items = append(s.Items, ItemImport{Ref: "i1", Title: "Duplicate"})
	errs := ValidateImportSchema(s)
	assert.True(t, containsError(errs, "duplicate ref"))
}

func TestValidateImportSchema_BadTimestamp(t *testing.T) {
	s := validSchema()
	s.Items[0].StartsAt = strPtr("2026-09-01")
	errs := ValidateImportSchema(s)
	assert.True(t, containsError(errs, "invalid timestamp"))
}

func TestValidateImportSchema_EndBeforeStart(t *testing.T) {
	s := validSchema()
	s.Items[0].StartsAt = strPtr("2026-09-01T11:00:00Z")
	s.Items[0].EndsAt = strPtr("2026-09-01T10:00:00Z")
	errs := ValidateImportSchema(s)
	assert.True(t, containsError(errs, "must be after starts_at"))
}

func TestValidateImportSchema_EndWithoutStart(t *testing.T) {
	s := validSchema()
	s.Items[0].StartsAt = nil
	errs := ValidateImportSchema(s)
	assert.True(t, containsError(errs, "ends_at requires starts_at"))
}

func TestValidateImportSchema_UnknownDependencyRef(t *testing.T) {
	s := validSchema()
	s.Dependencies = append(s.Dependencies, DependencyImport{FromRef: "missing", ToRef: "i1"})
	errs := ValidateImportSchema(s)
	assert.True(t, containsError(errs, `"missing" not found`))
}

func TestValidateImportSchema_SelfDependency(t *testing.T) {
	s := validSchema()
	s.Dependencies = []DependencyImport{{FromRef: "i1", ToRef: "i1"}}
	errs := ValidateImportSchema(s)
	assert.True(t, containsError(errs, "self-dependency"))
}

func TestValidateImportSchema_CircularDependency(t *testing.T) {
	s := validSchema()
	s.Dependencies = []DependencyImport{
		{FromRef: "i1", ToRef: "i2"},
		{FromRef: "i2", ToRef: "i1"},
	}
	errs := ValidateImportSchema(s)
	assert.True(t, containsError(errs, "circular dependency"))
}

func TestValidateImportSchema_BadLaneSlug(t *testing.T) {
	s := validSchema()
	s.Lanes = append(s.Lanes, LaneImport{Slug: "9bad"})
	errs := ValidateImportSchema(s)
	require.NotEmpty(t, errs)
}

func TestValidateImportSchema_BadDependencyKind(t *testing.T) {
	s := validSchema()
	s.Dependencies[0].Kind = "FF"
	errs := ValidateImportSchema(s)
	assert.True(t, containsError(errs, "expected FS or SS"))
}

func TestValidateImportSchema_UnknownStatus(t *testing.T) {
	s := validSchema()
	s.Items[0].Status = "tentative"
	errs := ValidateImportSchema(s)
	assert.True(t, containsError(errs, "status"))
}
