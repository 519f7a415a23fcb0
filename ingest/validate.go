package ingest

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/confero/confero/core"
)

const (
	minFoundedYear = 1800
	maxTeamSize    = 1_000_000
)

// validateRow checks an assembled actor. Error-severity issues exclude
// the row from persistence; warnings are recorded and the row is kept.
func validateRow(rowNum int, actor *core.Actor) []core.RowIssue {
	var issues []core.RowIssue

	if actor.Name == "" {
		issues = append(issues, core.RowIssue{
			Row:      rowNum,
			Field:    FieldName,
			Message:  "name is required",
			Severity: core.SeverityError,
		})
	}
	if actor.Country == "" {
		issues = append(issues, core.RowIssue{
			Row:      rowNum,
			Field:    FieldCountry,
			Message:  "country is required",
			Severity: core.SeverityError,
		})
	}

	if actor.Email != "" {
		if _, err := mail.ParseAddress(actor.Email); err != nil {
			issues = append(issues, core.RowIssue{
				Row:      rowNum,
				Field:    FieldEmail,
				Value:    actor.Email,
				Message:  "email address does not parse",
				Severity: core.SeverityWarning,
			})
		}
	}

	if actor.Website != "" && !validWebsite(actor.Website) {
		issues = append(issues, core.RowIssue{
			Row:      rowNum,
			Field:    FieldWebsite,
			Value:    actor.Website,
			Message:  "website is not a valid URL",
			Severity: core.SeverityWarning,
		})
	}

	if actor.FoundedYear != 0 {
		maxYear := time.Now().Year() + 1
		if actor.FoundedYear < minFoundedYear || actor.FoundedYear > maxYear {
			issues = append(issues, core.RowIssue{
				Row:      rowNum,
				Field:    FieldFoundedYear,
				Value:    fmt.Sprintf("%d", actor.FoundedYear),
				Message:  fmt.Sprintf("founded year outside [%d,%d]", minFoundedYear, maxYear),
				Severity: core.SeverityWarning,
			})
		}
	}

	if actor.TeamSize < 0 || actor.TeamSize > maxTeamSize {
		issues = append(issues, core.RowIssue{
			Row:      rowNum,
			Field:    FieldTeamSize,
			Value:    fmt.Sprintf("%d", actor.TeamSize),
			Message:  "team size is implausible",
			Severity: core.SeverityWarning,
		})
	}

	return issues
}

func validWebsite(raw string) bool {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	return err == nil && u.Host != "" && strings.Contains(u.Host, ".")
}

func hasError(issues []core.RowIssue) bool {
	for _, issue := range issues {
		if issue.Severity == core.SeverityError {
			return true
		}
	}
	return false
}
