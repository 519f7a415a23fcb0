package ingest

import (
	"strings"

	"github.com/confero/confero/core"
)

// Target field identifiers columns can map to. Unmapped columns land in
// the actor's Extras verbatim.
const (
	FieldName         = "name"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldAbstract     = "abstract"
	FieldPitch        = "pitch"
	FieldPlatforms    = "platforms"
	FieldMarkets      = "markets"
	FieldCapabilities = "capabilities"
	FieldNeeds        = "needs"
	FieldCategories   = "categories"
	FieldStage        = "stage"
	FieldCountry      = "country"
	FieldWebsite      = "website"
	FieldEmail        = "email"
	FieldRating       = "rating"
	FieldPrice        = "price"
	FieldCost         = "cost"
	FieldTeamSize     = "team_size"
	FieldFoundedYear  = "founded_year"
	FieldReleasedAt   = "released_at"
)

// Mapping confidence tiers.
const (
	ConfidenceExact     = 100
	ConfidenceSubstring = 80
	ConfidenceKeyword   = 60
	ConfidenceUnknown   = 20

	// AutoMapThreshold is the minimum confidence for automatic mapping.
	// Lower-confidence suggestions are surfaced but require the caller
	// to confirm them.
	AutoMapThreshold = 60
)

// fieldKeywords drive the heuristic tier: a header containing one of
// these tokens maps to the field at keyword confidence.
var fieldKeywords = map[string][]string{
	FieldName:         {"company", "studio", "organization", "org"},
	FieldTitle:        {"headline", "tagline", "role"},
	FieldDescription:  {"about", "summary", "bio", "overview"},
	FieldPitch:        {"elevator"},
	FieldPlatforms:    {"platform", "os", "devices"},
	FieldMarkets:      {"market", "vertical", "industry", "sector"},
	FieldCapabilities: {"capability", "offers", "services", "skills"},
	FieldNeeds:        {"need", "looking", "seeking", "wants"},
	FieldCategories:   {"category", "genre", "tags"},
	FieldStage:        {"maturity", "phase"},
	FieldCountry:      {"nation", "location", "hq"},
	FieldWebsite:      {"url", "site", "homepage", "web"},
	FieldEmail:        {"mail", "contact"},
	FieldRating:       {"score", "stars"},
	FieldPrice:        {"pricing", "fee"},
	FieldCost:         {"budget", "spend"},
	FieldTeamSize:     {"employees", "headcount", "team", "staff"},
	FieldFoundedYear:  {"founded", "established", "since"},
	FieldReleasedAt:   {"release", "launch", "published"},
}

var knownFields = []string{
	FieldName, FieldTitle, FieldDescription, FieldAbstract, FieldPitch,
	FieldPlatforms, FieldMarkets, FieldCapabilities, FieldNeeds,
	FieldCategories, FieldStage, FieldCountry, FieldWebsite, FieldEmail,
	FieldRating, FieldPrice, FieldCost, FieldTeamSize, FieldFoundedYear,
	FieldReleasedAt,
}

// typeSampleLimit bounds how many values type inference examines per column.
const typeSampleLimit = 50

// DefaultArrayFraction is the share of separator-bearing values at which
// a sampled column is typed as an array.
const DefaultArrayFraction = 0.5

// DetectColumns inspects headers and a sample of values, inferring each
// column's data type and suggesting a target field with a tiered
// confidence. Array detection uses DefaultArrayFraction.
func DetectColumns(headers []string, rows []map[string]string) []core.DetectedColumn {
	return DetectColumnsWith(headers, rows, DefaultArrayFraction)
}

// DetectColumnsWith is DetectColumns with an explicit array-detection
// fraction: a column is array-typed once at least that share of its
// sampled values carries a list separator. Zero or negative falls back
// to DefaultArrayFraction.
func DetectColumnsWith(headers []string, rows []map[string]string, arrayFraction float64) []core.DetectedColumn {
	if arrayFraction <= 0 {
		arrayFraction = DefaultArrayFraction
	}
	columns := make([]core.DetectedColumn, 0, len(headers))
	for _, header := range headers {
		field, conf := suggestField(header)
		columns = append(columns, core.DetectedColumn{
			Name:           header,
			Type:           inferColumnType(header, rows, arrayFraction),
			SuggestedField: field,
			Confidence:     conf,
		})
	}
	return columns
}

// BuildMapping turns detected columns into a column-to-field mapping.
// Suggestions at or above AutoMapThreshold apply automatically; entries
// in overrides always win, and an override to "" unmaps a column.
func BuildMapping(columns []core.DetectedColumn, overrides map[string]string) map[string]string {
	mapping := make(map[string]string, len(columns))
	for _, col := range columns {
		if col.SuggestedField != "" && col.Confidence >= AutoMapThreshold {
			mapping[col.Name] = col.SuggestedField
		}
	}
	for column, field := range overrides {
		if field == "" {
			delete(mapping, column)
			continue
		}
		mapping[column] = field
	}
	return mapping
}

func suggestField(header string) (string, int) {
	h := normalizeHeader(header)
	if h == "" {
		return "", ConfidenceUnknown
	}

	for _, field := range knownFields {
		if h == field {
			return field, ConfidenceExact
		}
	}
	for _, field := range knownFields {
		if strings.Contains(h, field) || strings.Contains(field, h) {
			return field, ConfidenceSubstring
		}
	}
	for _, field := range knownFields {
		for _, keyword := range fieldKeywords[field] {
			if strings.Contains(h, keyword) {
				return field, ConfidenceKeyword
			}
		}
	}
	return "", ConfidenceUnknown
}

func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

func inferColumnType(header string, rows []map[string]string, arrayFraction float64) core.ColumnType {
	seen, arrays := 0, 0
	counts := map[core.ColumnType]int{}
	for _, row := range rows {
		value := strings.TrimSpace(row[header])
		if value == "" {
			continue
		}
		if t := classifyValue(value); t == core.ColumnTypeArray {
			arrays++
		} else {
			counts[t]++
		}
		seen++
		if seen >= typeSampleLimit {
			break
		}
	}
	if seen == 0 {
		return core.ColumnTypeString
	}
	if float64(arrays)/float64(seen) >= arrayFraction {
		return core.ColumnTypeArray
	}
	// Below the array cutoff, separator-bearing values are just strings
	// with punctuation.
	counts[core.ColumnTypeString] += arrays

	best := core.ColumnTypeString
	bestCount := 0
	for t, n := range counts {
		if n > bestCount {
			best, bestCount = t, n
		}
	}
	// A single non-conforming value should not flip a typed column.
	if bestCount*2 > seen {
		return best
	}
	return core.ColumnTypeString
}

func classifyValue(value string) core.ColumnType {
	if isListValue(value) {
		return core.ColumnTypeArray
	}
	if _, ok := parseBool(value); ok {
		return core.ColumnTypeBoolean
	}
	if _, ok := parseDate(value); ok {
		return core.ColumnTypeDate
	}
	if _, ok := parseNumber(value); ok {
		return core.ColumnTypeNumber
	}
	return core.ColumnTypeString
}
