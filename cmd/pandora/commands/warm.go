package commands

import (
	"io"
	"log"

	"github.com/urfave/cli/v2"

	"github.com/SupiDupiToll/PandoraLauncher/cmd/pandora/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/config"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/fetch"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/infra"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

// Warm returns the diagnostic command that bulk-fetches all metadata.
func Warm() *cli.Command {
	flags := helpers.CommonFlags()
	flags = append(flags, helpers.LaunchFlags()...)

	return &cli.Command{
		Name:  "warm",
		Usage: "Fetch every version and runtime manifest into the disk cache",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, err := config.Build(c)
			if err != nil {
				return err
			}
			p := progress.New(cfg.Verbose, cfg.Quiet)
			if cfg.Verbose {
				log.SetOutput(p)
			} else {
				log.SetOutput(io.Discard)
			}
			defer p.Close()

			rt := infra.New(p, fetch.New(cfg.Timeout))
			launcher, closeStore, err := newLauncher(cfg, rt)
			if err != nil {
				return err
			}
			defer closeStore()
			return launcher.WarmAll(c.Context)
		},
	}
}
