package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	confero "github.com/confero/confero"
	"github.com/confero/confero/storage"
	"github.com/confero/confero/taxonomy"
)

func taxonomyCommand() *cli.Command {
	return &cli.Command{
		Name:  "taxonomy",
		Usage: "Analyze the corpus taxonomy",
		Subcommands: []*cli.Command{
			{
				Name:      "distribution",
				Usage:     "Frequency ranking for one dimension",
				ArgsUsage: "DIMENSION",
				Action:    runDistribution,
			},
			{
				Name:      "heatmap",
				Usage:     "Co-occurrence matrix for one dimension",
				ArgsUsage: "DIMENSION",
				Action:    runHeatmap,
			},
			{
				Name:      "network",
				Usage:     "Co-occurrence graph for one dimension",
				ArgsUsage: "DIMENSION",
				Action:    runNetwork,
			},
			{
				Name:      "correlation",
				Usage:     "Cross-dimension value correlations; one argument ranks all other dimensions against it",
				ArgsUsage: "DIMENSION [DIMENSION_B]",
				Action:    runCorrelation,
			},
		},
	}
}

func openAnalyzer(c *cli.Context) (*taxonomy.Analyzer, func() error, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	system, err := confero.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return system.NewTaxonomyAnalyzer(), system.Close, nil
}

func runDistribution(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one dimension, e.g. markets")
	}
	analyzer, closer, err := openAnalyzer(c)
	if err != nil {
		return err
	}
	defer closer()

	dist, err := analyzer.Distribution(context.Background(),
		taxonomy.Dimension(c.Args().First()), storage.ActorFilter{})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d distinct values, coverage %.0f%% of %d sampled\n",
		dist.Dimension, dist.Stats.Distinct, dist.Coverage.Percent, dist.Coverage.SampleSize)
	for _, vc := range dist.Head {
		fmt.Printf("  %-24s %4d (%.1f%%)\n", vc.Value, vc.Count, vc.Share)
	}
	if dist.TailCount > 0 {
		fmt.Printf("  ... and %d more values (%d occurrences)\n", dist.TailCount, dist.TailTotal)
	}
	return nil
}

func runHeatmap(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one dimension, e.g. platforms")
	}
	analyzer, closer, err := openAnalyzer(c)
	if err != nil {
		return err
	}
	defer closer()

	hm, err := analyzer.Heatmap(context.Background(),
		taxonomy.Dimension(c.Args().First()), storage.ActorFilter{})
	if err != nil {
		return err
	}

	fmt.Printf("%s co-occurrence (coverage %.0f%%):\n", hm.Dimension, hm.Coverage.Percent)
	for i, label := range hm.Labels {
		fmt.Printf("  %-20s", label)
		for j := range hm.Labels {
			fmt.Printf(" %4d", hm.Counts[i][j])
		}
		fmt.Println()
	}
	return nil
}

func runNetwork(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one dimension, e.g. capabilities")
	}
	analyzer, closer, err := openAnalyzer(c)
	if err != nil {
		return err
	}
	defer closer()

	net, err := analyzer.Network(context.Background(),
		taxonomy.Dimension(c.Args().First()), storage.ActorFilter{})
	if err != nil {
		return err
	}

	fmt.Printf("%s network: %d nodes, %d edges (coverage %.0f%%)\n",
		net.Dimension, len(net.Nodes), len(net.Edges), net.Coverage.Percent)
	for _, node := range net.Nodes {
		fmt.Printf("  node %-24s count=%d group=%d\n", node.Id, node.Count, node.Group)
	}
	for _, edge := range net.Edges {
		fmt.Printf("  edge %s -- %s count=%d weight=%.2f\n",
			edge.Source, edge.Target, edge.Count, edge.Weight)
	}
	return nil
}

func runCorrelation(c *cli.Context) error {
	if c.NArg() != 1 && c.NArg() != 2 {
		return fmt.Errorf("expected one or two dimensions, e.g. markets stages")
	}
	analyzer, closer, err := openAnalyzer(c)
	if err != nil {
		return err
	}
	defer closer()

	if c.NArg() == 1 {
		reports, err := analyzer.DimensionRankingFor(context.Background(),
			taxonomy.Dimension(c.Args().First()), storage.ActorFilter{})
		if err != nil {
			return err
		}
		for _, report := range reports {
			fmt.Printf("%s x %s: %d correlated pairs, mean strength %.2f\n",
				report.DimensionA, report.DimensionB, len(report.Pairs), report.Strength)
		}
		return nil
	}

	report, err := analyzer.Correlation(context.Background(),
		taxonomy.Dimension(c.Args().Get(0)),
		taxonomy.Dimension(c.Args().Get(1)),
		storage.ActorFilter{})
	if err != nil {
		return err
	}

	fmt.Printf("%s x %s: %d correlated pairs, mean strength %.2f\n",
		report.DimensionA, report.DimensionB, len(report.Pairs), report.Strength)
	for _, pair := range report.Pairs {
		fmt.Printf("  %-20s %-20s jaccard=%.2f n=%d\n",
			pair.ValueA, pair.ValueB, pair.Jaccard, pair.Count)
	}
	return nil
}
