package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/SupiDupiToll/PandoraLauncher/cmd/pandora/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/config"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/instances"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

// Instance returns the CLI command group for managing instances.
func Instance() *cli.Command {
	return &cli.Command{
		Name:  "instance",
		Usage: "Manage game instances",
		Flags: helpers.CommonFlags(),
		Subcommands: []*cli.Command{
			instanceCreate(),
			instanceList(),
			instanceDelete(),
		},
	}
}

func instanceCreate() *cli.Command {
	flags := helpers.CommonFlags()
	flags = append(flags, &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to an instance definition YAML file",
		Required: true,
	})
	return &cli.Command{
		Name:  "create",
		Usage: "Create an instance from a definition file",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, err := config.Build(c)
			if err != nil {
				return err
			}
			def, err := instances.LoadDefinition(c.String("file"))
			if err != nil {
				return err
			}
			return withStore(cfg.LauncherDir, func(store *instances.Store) error {
				if err := store.Create(def.Record()); err != nil {
					return err
				}
				p := progress.New(cfg.Verbose, cfg.Quiet)
				defer p.Close()
				p.Okf("created instance %s (%s)", def.Name, def.Version)
				return nil
			})
		},
	}
}

func instanceList() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List instances",
		Flags: helpers.CommonFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := config.Build(c)
			if err != nil {
				return err
			}
			return withStore(cfg.LauncherDir, func(store *instances.Store) error {
				records, err := store.List()
				if err != nil {
					return err
				}
				p := progress.New(cfg.Verbose, cfg.Quiet)
				defer p.Close()
				for _, record := range records {
					p.PersistentPrintf("%s\t%s\t%s", record.Name, record.Version, record.CreatedAt.Format("2006-01-02"))
				}
				return nil
			})
		},
	}
}

func instanceDelete() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an instance record (game files stay on disk)",
		ArgsUsage: "<instance>",
		Flags:     helpers.CommonFlags(),
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("usage: pandora instance delete <instance>", 2)
			}
			cfg, err := config.Build(c)
			if err != nil {
				return err
			}
			return withStore(cfg.LauncherDir, func(store *instances.Store) error {
				return store.Delete(c.Args().First())
			})
		},
	}
}

// withStore opens the locked instance database for one operation.
func withStore(launcherDir string, fn func(*instances.Store) error) error {
	store, err := instances.Open(launcherDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	return fn(store)
}
