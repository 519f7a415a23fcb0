package core

import "time"

// IngestStatus is the lifecycle state of an ingest job.
type IngestStatus string

const (
	IngestStatusProcessing IngestStatus = "processing"
	IngestStatusCompleted  IngestStatus = "completed"
	IngestStatusFailed     IngestStatus = "failed"
)

// ColumnType is the inferred data type of an upload column.
type ColumnType string

const (
	ColumnTypeString  ColumnType = "string"
	ColumnTypeNumber  ColumnType = "number"
	ColumnTypeDate    ColumnType = "date"
	ColumnTypeBoolean ColumnType = "boolean"
	ColumnTypeArray   ColumnType = "array"
)

// DetectedColumn describes one upload column: its inferred type and the
// suggested target field with a tiered confidence.
type DetectedColumn struct {
	Name           string
	Type           ColumnType
	SuggestedField string
	// Confidence tiers: 100 exact header match, 80 substring, 60 keyword
	// heuristic, 20 unknown.
	Confidence int
}

// IssueSeverity classifies a row validation finding.
type IssueSeverity string

const (
	// SeverityError excludes the row from persistence.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is recorded but does not exclude the row.
	SeverityWarning IssueSeverity = "warning"
)

// RowIssue is a single per-row validation finding.
type RowIssue struct {
	Row      int
	Field    string
	Value    string
	Message  string
	Severity IssueSeverity
}

// IngestCounts aggregates row outcomes for a job.
type IngestCounts struct {
	Success    int
	Skipped    int
	Errors     int
	Duplicates int
}

// IngestLog records the outcome of one batch upload-validate-persist job.
type IngestLog struct {
	Id         string
	SourceName string
	Status     IngestStatus

	Columns []DetectedColumn
	// Mapping is the final column -> field mapping applied to rows.
	Mapping map[string]string

	Issues []RowIssue
	Counts IngestCounts

	// AvgCompleteness is the mean profile completeness of persisted rows,
	// as a percentage.
	AvgCompleteness float64

	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// ErrorCount returns the number of error-severity issues.
func (l *IngestLog) ErrorCount() int {
	n := 0
	for _, issue := range l.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity issues.
func (l *IngestLog) WarningCount() int {
	n := 0
	for _, issue := range l.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}
