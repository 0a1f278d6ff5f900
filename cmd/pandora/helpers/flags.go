package helpers

import (
	"runtime"

	"github.com/urfave/cli/v2"

	launcherhelpers "github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
)

// CommonFlags defines shared CLI flags for all commands.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "Verbose output",
			EnvVars: []string{"PANDORA_VERBOSE"},
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Quiet mode, not working with verbose",
			EnvVars: []string{"PANDORA_QUIET"},
		},
		&cli.StringFlag{
			Name:    "launcher-dir",
			Usage:   "Launcher data directory",
			Value:   defaultLauncherDir(),
			EnvVars: []string{"PANDORA_LAUNCHER_DIR"},
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to pandora.toml file",
			Value:   defaultConfigPath(),
			EnvVars: []string{"PANDORA_CONFIG"},
		},
	}
}

// LaunchFlags defines CLI flags for provisioning behavior.
func LaunchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "HTTP timeout duration",
			Value:   launcherhelpers.FetchDefaultTimeout,
			EnvVars: []string{"PANDORA_TIMEOUT"},
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "Number of concurrent workers",
			Value:   runtime.NumCPU(),
			EnvVars: []string{"PANDORA_WORKERS"},
		},
		&cli.BoolFlag{
			Name:    "reload",
			Usage:   "Force-reload metadata, ignoring the disk cache",
			EnvVars: []string{"PANDORA_RELOAD"},
		},
	}
}
