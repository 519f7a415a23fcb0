package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/confero/confero/core"
)

var listSeparators = []string{"|", ";", ","}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01",
}

func isListValue(value string) bool {
	return strings.ContainsAny(value, ",;|")
}

// parseList splits a cell on the first separator it contains, trimming
// entries and dropping empties. A separator-free value is a single entry.
func parseList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	sep := ""
	for _, candidate := range listSeparators {
		if strings.Contains(value, candidate) {
			sep = candidate
			break
		}
	}
	if sep == "" {
		return []string{value}
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseNumber parses a numeric cell, tolerating currency symbols,
// percent signs, and thousands separators.
func parseNumber(value string) (float64, bool) {
	cleaned := strings.TrimSpace(value)
	for _, symbol := range []string{"$", "€", "£", "%"} {
		cleaned = strings.ReplaceAll(cleaned, symbol, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	}
	return false, false
}

// buildActor assembles an actor from a raw row under a column-to-field
// mapping. Mapped cells are normalized per field type; unmapped,
// non-empty cells are preserved verbatim in Extras.
func buildActor(row map[string]string, mapping map[string]string, kind core.ActorKind) *core.Actor {
	actor := &core.Actor{Kind: kind}

	for column, raw := range row {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		field, mapped := mapping[column]
		if !mapped {
			if actor.Extras == nil {
				actor.Extras = make(map[string]string)
			}
			actor.Extras[column] = raw
			continue
		}
		applyField(actor, field, value)
	}

	if actor.Id == "" && actor.Name != "" {
		actor.Id = core.IDFromContent(actor.Name + "|" + actor.Website)
	}
	return actor
}

func applyField(actor *core.Actor, field, value string) {
	switch field {
	case FieldName:
		actor.Name = value
	case FieldTitle:
		actor.Title = value
	case FieldDescription:
		actor.Description = value
	case FieldAbstract:
		actor.Abstract = value
	case FieldPitch:
		actor.Pitch = value
	case FieldPlatforms:
		actor.Platforms = parseList(value)
	case FieldMarkets:
		actor.Markets = parseList(value)
	case FieldCapabilities:
		actor.Capabilities = parseList(value)
	case FieldNeeds:
		actor.Needs = parseList(value)
	case FieldCategories:
		actor.Categories = parseList(value)
	case FieldStage:
		actor.Stage = strings.ToLower(value)
	case FieldCountry:
		actor.Country = value
	case FieldWebsite:
		actor.Website = value
	case FieldEmail:
		actor.Email = value
	case FieldRating:
		if n, ok := parseNumber(value); ok {
			actor.Rating = n
		}
	case FieldPrice:
		if n, ok := parseNumber(value); ok {
			actor.Price = n
		}
	case FieldCost:
		if n, ok := parseNumber(value); ok {
			actor.Cost = n
		}
	case FieldTeamSize:
		if n, ok := parseNumber(value); ok {
			actor.TeamSize = int(n)
		}
	case FieldFoundedYear:
		if n, ok := parseNumber(value); ok {
			actor.FoundedYear = int(n)
		}
	case FieldReleasedAt:
		if t, ok := parseDate(value); ok {
			actor.ReleasedAt = t
		}
	default:
		if actor.Extras == nil {
			actor.Extras = make(map[string]string)
		}
		actor.Extras[field] = value
	}
}
