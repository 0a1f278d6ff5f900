// Package config merges pandora.toml with CLI flags into the runtime
// settings every launcher component reads.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
)

// Config holds runtime settings for launcher operations.
type Config struct {
	Verbose     bool
	Quiet       bool
	ConfigPath  string
	LauncherDir string
	MetadataDir string
	RuntimeDir  string
	AssetsDir   string
	LibraryDir  string
	GameDir     string

	Workers     int
	Timeout     time.Duration
	ForceReload bool

	Session   SessionConfig
	Display   DisplayConfig
	QuickPlay QuickPlayConfig
}

// SessionConfig supplies the authentication placeholder values. The
// launcher performs no authentication itself; these come straight from
// the config file.
type SessionConfig struct {
	PlayerName  string `toml:"player_name"`
	UUID        string `toml:"uuid"`
	AccessToken string `toml:"access_token"`
	ClientID    string `toml:"client_id"`
	XUID        string `toml:"xuid"`
	Demo        bool   `toml:"demo"`
}

// DisplayConfig selects an initial window size. Both fields set enables
// the custom-resolution feature flag.
type DisplayConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// CustomResolution reports whether a usable resolution is configured.
func (d DisplayConfig) CustomResolution() bool {
	return d.Width > 0 && d.Height > 0
}

// QuickPlayConfig configures the quick-play feature flags.
type QuickPlayConfig struct {
	Path         string `toml:"path"`
	Singleplayer bool   `toml:"singleplayer"`
	Multiplayer  bool   `toml:"multiplayer"`
	Realms       bool   `toml:"realms"`
}

// Enabled reports whether any quick-play mode is requested.
func (q QuickPlayConfig) Enabled() bool {
	return q.Path != "" || q.Singleplayer || q.Multiplayer || q.Realms
}

// fileConfig is the pandora.toml shape.
type fileConfig struct {
	Directories directoriesConfig `toml:"directories"`
	Workers     int               `toml:"workers"`
	Timeout     string            `toml:"timeout"`
	Session     SessionConfig     `toml:"session"`
	Display     DisplayConfig     `toml:"display"`
	QuickPlay   QuickPlayConfig   `toml:"quickplay"`
}

// directoriesConfig maps the [directories] section. Unset entries fall
// back to subdirectories of the launcher directory.
type directoriesConfig struct {
	Launcher  string `toml:"launcher"`
	Metadata  string `toml:"metadata"`
	Runtime   string `toml:"runtime"`
	Assets    string `toml:"assets"`
	Libraries string `toml:"libraries"`
	Game      string `toml:"game"`
}

// Build builds Config from CLI flags and pandora.toml. Flags win over
// the file for the settings both can express.
func Build(c *cli.Context) (*Config, error) {
	cfg := newConfigFromCLI(c)

	file, path, err := loadFileConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	cfg.ConfigPath = path
	applyFileConfig(cfg, file)

	if err := resolveDirectories(cfg, file.Directories); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newConfigFromCLI(c *cli.Context) *Config {
	cfg := &Config{
		LauncherDir: c.String("launcher-dir"),
		Workers:     c.Int("workers"),
		Timeout:     c.Duration("timeout"),
		ForceReload: c.Bool("reload"),
	}
	cfg.Verbose = c.Bool("verbose")
	cfg.Quiet = !cfg.Verbose && c.Bool("quiet")
	return cfg
}

// loadFileConfig loads pandora.toml if it exists. A missing file is not
// an error; a malformed one is.
func loadFileConfig(configPath string) (fileConfig, string, error) {
	config := fileConfig{}
	if configPath == "" {
		return config, "", nil
	}
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return config, "", nil
		}
		return config, "", err
	}
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return config, "", fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	return config, configPath, nil
}

func applyFileConfig(cfg *Config, file fileConfig) {
	if cfg.Workers < 1 && file.Workers > 0 {
		cfg.Workers = file.Workers
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	cfg.Workers = min(cfg.Workers, helpers.DownloadPermits)
	if cfg.Timeout <= 0 && file.Timeout != "" {
		if parsed, err := time.ParseDuration(file.Timeout); err == nil {
			cfg.Timeout = parsed
		}
	}
	cfg.Timeout = max(cfg.Timeout, helpers.FetchDefaultTimeout)

	cfg.Session = file.Session
	cfg.Display = file.Display
	cfg.QuickPlay = file.QuickPlay
}

func resolveDirectories(cfg *Config, dirs directoriesConfig) error {
	if cfg.LauncherDir == "" {
		cfg.LauncherDir = dirs.Launcher
	}
	if cfg.LauncherDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return helpers.ErrLauncherDirEmpty
		}
		cfg.LauncherDir = filepath.Join(home, ".pandora")
	}
	cfg.MetadataDir = orSubdir(dirs.Metadata, cfg.LauncherDir, "metadata")
	cfg.RuntimeDir = orSubdir(dirs.Runtime, cfg.LauncherDir, "runtime")
	cfg.AssetsDir = orSubdir(dirs.Assets, cfg.LauncherDir, "assets")
	cfg.LibraryDir = orSubdir(dirs.Libraries, cfg.LauncherDir, "libraries")
	cfg.GameDir = orSubdir(dirs.Game, cfg.LauncherDir, "instances")
	return nil
}

func orSubdir(configured, parent, name string) string {
	if configured != "" {
		return configured
	}
	return filepath.Join(parent, name)
}
