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

// Launch returns the CLI command that provisions and starts an instance.
func Launch() *cli.Command {
	flags := helpers.CommonFlags()
	flags = append(flags, helpers.LaunchFlags()...)

	return &cli.Command{
		Name:      "launch",
		Aliases:   []string{"l"},
		Usage:     "Provision and start a game instance",
		ArgsUsage: "<instance>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("usage: pandora launch <instance>", 2)
			}
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

			stop := make(chan struct{})
			done := make(chan struct{})
			go func() {
				defer close(done)
				p.Watch(launcher.Trackers, launcher.Notifier, stop)
			}()

			cmd, err := launcher.Launch(c.Context, c.Args().First())
			close(stop)
			<-done
			if err != nil {
				return err
			}
			p.Okf("launched %s (pid %d)", c.Args().First(), cmd.Process.Pid)
			return nil
		},
	}
}
