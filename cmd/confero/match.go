package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	confero "github.com/confero/confero"
	"github.com/confero/confero/match"
)

func computeCommand() *cli.Command {
	return &cli.Command{
		Name:  "compute",
		Usage: "Recompute the full match graph under a profile",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Profile id (empty uses the company persona default)",
			},
		},
		Action: runCompute,
	}
}

func runCompute(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	system, err := confero.Open(cfg)
	if err != nil {
		return err
	}
	defer system.Close()

	engine := system.NewMatchEngine()
	result, err := engine.ComputeAll(context.Background(), c.String("profile"))
	if err != nil {
		return err
	}

	fmt.Printf("Computed %d pairs in %s\n", result.Pairs, result.Duration.Round(0))
	fmt.Printf("  persisted=%d skipped=%d failed=%d batches=%d profile=%s\n",
		result.Persisted, result.Skipped, result.Failed, result.Batches, result.Profile)
	return nil
}

func findCommand() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "Find matches for an actor",
		ArgsUsage: "ACTOR_ID",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Profile id (empty uses the actor's persona default)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of matches",
				Value:   10,
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Minimum score (overrides the profile threshold)",
			},
			&cli.BoolFlag{
				Name:  "explain",
				Usage: "Show per-metric contributions",
			},
		},
		Action: runFind,
	}
}

func runFind(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one actor id")
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

	engine := system.NewMatchEngine()
	results, err := engine.Find(context.Background(), match.FindRequest{
		ActorId:              c.Args().First(),
		ProfileId:            c.String("profile"),
		Limit:                c.Int("limit"),
		Threshold:            c.Float64("threshold"),
		IncludeContributions: c.Bool("explain"),
		IncludeReasons:       true,
	})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matches above threshold.")
		return nil
	}
	for _, m := range results {
		other := m.ActorB
		if other == c.Args().First() {
			other = m.ActorA
		}
		fmt.Printf("%s  score=%.3f confidence=%.2f\n", other, m.Score, m.Confidence)
		for _, reason := range m.Reasons {
			fmt.Printf("    %s\n", reason)
		}
		if c.Bool("explain") {
			for _, contrib := range m.Contributions {
				fmt.Printf("    %-22s value=%.3f weight=%.1f weighted=%.3f\n",
					contrib.Metric, contrib.Value, contrib.Weight, contrib.Weighted)
			}
		}
	}
	return nil
}
