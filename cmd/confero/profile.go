package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	confero "github.com/confero/confero"
	"github.com/confero/confero/profile"
)

func profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage weight profiles",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List stored profiles",
				Action: runProfileList,
			},
			{
				Name:   "seed",
				Usage:  "Seed the built-in persona defaults",
				Action: runProfileSeed,
			},
			{
				Name:      "export",
				Usage:     "Export all profiles to a JSON bundle",
				ArgsUsage: "FILE",
				Action:    runProfileExport,
			},
			{
				Name:      "import",
				Usage:     "Import profiles from a JSON bundle",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "overwrite",
						Usage: "Replace profiles whose id already exists",
					},
				},
				Action: runProfileImport,
			},
		},
	}
}

func openProfiles(c *cli.Context) (*profile.Manager, func() error, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	system, err := confero.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return system.Profiles(), system.Close, nil
}

func runProfileList(c *cli.Context) error {
	manager, closer, err := openProfiles(c)
	if err != nil {
		return err
	}
	defer closer()

	profiles, err := manager.List(context.Background())
	if err != nil {
		return err
	}
	for _, p := range profiles {
		marker := " "
		if p.IsDefault {
			marker = "*"
		}
		fmt.Printf("%s %-36s %-10s %s\n", marker, p.Id, p.Persona, p.Name)
	}
	return nil
}

func runProfileSeed(c *cli.Context) error {
	manager, closer, err := openProfiles(c)
	if err != nil {
		return err
	}
	defer closer()

	if err := manager.EnsureDefaults(context.Background()); err != nil {
		return err
	}
	fmt.Println("Persona defaults seeded.")
	return nil
}

func runProfileExport(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected an output file")
	}
	manager, closer, err := openProfiles(c)
	if err != nil {
		return err
	}
	defer closer()

	data, err := manager.Export(context.Background())
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Args().First(), data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", c.Args().First())
	return nil
}

func runProfileImport(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected an input file")
	}
	manager, closer, err := openProfiles(c)
	if err != nil {
		return err
	}
	defer closer()

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return err
	}
	imported, err := manager.Import(context.Background(), data, c.Bool("overwrite"))
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d profiles.\n", imported)
	return nil
}
