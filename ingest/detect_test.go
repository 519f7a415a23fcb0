package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confero/confero/core"
)

func TestSuggestFieldTiers(t *testing.T) {
	tests := []struct {
		header     string
		field      string
		confidence int
	}{
		{"name", FieldName, ConfidenceExact},
		{"Team Size", FieldTeamSize, ConfidenceExact},
		{"company_name", FieldName, ConfidenceSubstring},
		{"primary markets", FieldMarkets, ConfidenceSubstring},
		{"hq", FieldCountry, ConfidenceKeyword},
		{"employees", FieldTeamSize, ConfidenceKeyword},
		{"zzz_custom", "", ConfidenceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			field, conf := suggestField(tt.header)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.confidence, conf)
		})
	}
}

func TestInferColumnType(t *testing.T) {
	rows := []map[string]string{
		{"platforms": "ios; android", "founded": "2015", "launch": "2024-03-01", "featured": "yes", "note": "free text"},
		{"platforms": "web", "founded": "2019", "launch": "2023-11-20", "featured": "no", "note": "more text"},
		{"platforms": "ios, web", "founded": "2021", "launch": "2025-01-05", "featured": "true", "note": "words"},
	}

	columns := DetectColumns([]string{"platforms", "founded", "launch", "featured", "note"}, rows)
	byName := map[string]core.DetectedColumn{}
	for _, col := range columns {
		byName[col.Name] = col
	}

	assert.Equal(t, core.ColumnTypeArray, byName["platforms"].Type)
	assert.Equal(t, core.ColumnTypeNumber, byName["founded"].Type)
	assert.Equal(t, core.ColumnTypeDate, byName["launch"].Type)
	assert.Equal(t, core.ColumnTypeBoolean, byName["featured"].Type)
	assert.Equal(t, core.ColumnTypeString, byName["note"].Type)
}

func TestArrayDetectionFractionIsTunable(t *testing.T) {
	// Two of five values carry separators: below the default cutoff.
	rows := []map[string]string{
		{"tags": "ios; android"},
		{"tags": "web, mobile"},
		{"tags": "standalone"},
		{"tags": "single"},
		{"tags": "plain"},
	}
	headers := []string{"tags"}

	columns := DetectColumns(headers, rows)
	assert.Equal(t, core.ColumnTypeString, columns[0].Type)

	// A lower fraction admits the same column as an array.
	columns = DetectColumnsWith(headers, rows, 0.3)
	assert.Equal(t, core.ColumnTypeArray, columns[0].Type)

	// Zero falls back to the default cutoff.
	columns = DetectColumnsWith(headers, rows, 0)
	assert.Equal(t, core.ColumnTypeString, columns[0].Type)
}

func TestBuildMappingAutoMapAndOverrides(t *testing.T) {
	columns := []core.DetectedColumn{
		{Name: "name", SuggestedField: FieldName, Confidence: ConfidenceExact},
		{Name: "hq", SuggestedField: FieldCountry, Confidence: ConfidenceKeyword},
		{Name: "mystery", SuggestedField: "", Confidence: ConfidenceUnknown},
	}

	mapping := BuildMapping(columns, map[string]string{
		"mystery": FieldPitch, // caller maps what detection could not
		"hq":      "",         // caller unmaps a weak suggestion
	})

	assert.Equal(t, FieldName, mapping["name"])
	assert.Equal(t, FieldPitch, mapping["mystery"])
	_, mapped := mapping["hq"]
	assert.False(t, mapped)
}

func TestParseListSeparators(t *testing.T) {
	assert.Equal(t, []string{"ios", "android"}, parseList("ios, android"))
	assert.Equal(t, []string{"a", "b", "c"}, parseList("a; b ;c"))
	assert.Equal(t, []string{"x", "y"}, parseList("x|y"))
	assert.Equal(t, []string{"single"}, parseList("single"))
	assert.Nil(t, parseList("  "))
}

func TestParseNumberStripsDecorations(t *testing.T) {
	for input, want := range map[string]float64{
		"$1,200":  1200,
		"€99.50":  99.5,
		"85%":     85,
		"  42  ":  42,
		"-3.5":    -3.5,
	} {
		n, ok := parseNumber(input)
		require.True(t, ok, input)
		assert.Equal(t, want, n, input)
	}
	_, ok := parseNumber("n/a")
	assert.False(t, ok)
}

func TestBuildActorMapsAndPreservesExtras(t *testing.T) {
	mapping := map[string]string{
		"company":   FieldName,
		"platforms": FieldPlatforms,
		"founded":   FieldFoundedYear,
		"launch":    FieldReleasedAt,
		"budget":    FieldCost,
	}
	row := map[string]string{
		"company":   "Pixel Forge",
		"platforms": "ios; android",
		"founded":   "2018",
		"launch":    "2024-06-01",
		"budget":    "$25,000",
		"booth":     "B-12",
	}

	actor := buildActor(row, mapping, core.ActorKindCompany)

	assert.Equal(t, "Pixel Forge", actor.Name)
	assert.Equal(t, []string{"ios", "android"}, actor.Platforms)
	assert.Equal(t, 2018, actor.FoundedYear)
	assert.Equal(t, 2024, actor.ReleasedAt.Year())
	assert.Equal(t, 25000.0, actor.Cost)
	assert.Equal(t, "B-12", actor.Extras["booth"])
	assert.NotEmpty(t, actor.Id)

	// Same content yields the same id.
	again := buildActor(row, mapping, core.ActorKindCompany)
	assert.Equal(t, actor.Id, again.Id)
}
