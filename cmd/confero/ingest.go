package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	confero "github.com/confero/confero"
	"github.com/confero/confero/core"
	"github.com/confero/confero/ingest"
)

func ingestCommand() *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "Ingest a CSV of companies, sponsors, or attendees",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Actor kind for all rows (company, sponsor, attendee)",
				Value: "company",
			},
			&cli.StringFlag{
				Name:  "duplicates",
				Usage: "Duplicate policy (skip, update, create_new)",
				Value: "skip",
			},
			&cli.StringSliceFlag{
				Name:  "map",
				Usage: "Column mapping override, column=field (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "validate-only",
				Usage: "Run the pipeline without persisting actors",
			},
		},
		Action: runIngest,
	}
}

func runIngest(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}
	path := c.Args().First()

	kind := core.ParseActorKind(c.String("kind"))
	if kind == 0 {
		return fmt.Errorf("unknown actor kind %q", c.String("kind"))
	}

	headers, rows, err := readCSV(path)
	if err != nil {
		return err
	}

	overrides := map[string]string{}
	for _, entry := range c.StringSlice("map") {
		column, field, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid --map entry %q, want column=field", entry)
		}
		overrides[column] = field
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	system, err := confero.Open(cfg)
	if err != nil {
		return err
	}
	defer system.Close()

	processor := system.NewIngestProcessor()
	log, err := processor.Process(context.Background(), headers, rows, ingest.Options{
		SourceName:   filepath.Base(path),
		SourceType:   strings.TrimPrefix(filepath.Ext(path), "."),
		Kind:         kind,
		Mapping:      overrides,
		Duplicates:   ingest.DuplicatePolicy(c.String("duplicates")),
		ValidateOnly: c.Bool("validate-only"),
		MaxRows:      cfg.MaxUploadRows,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Job %s: %s\n", log.Id, log.Status)
	fmt.Printf("  success=%d skipped=%d errors=%d duplicates=%d\n",
		log.Counts.Success, log.Counts.Skipped, log.Counts.Errors, log.Counts.Duplicates)
	fmt.Printf("  avg completeness: %.1f%%\n", log.AvgCompleteness)
	for _, issue := range log.Issues {
		fmt.Printf("  row %d [%s] %s: %s\n", issue.Row, issue.Severity, issue.Field, issue.Message)
	}
	return nil
}

func readCSV(path string) ([]string, []map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
