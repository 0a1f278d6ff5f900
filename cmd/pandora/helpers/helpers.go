package helpers

import (
	"os"
	"path/filepath"
)

// defaultLauncherDir returns the default launcher directory path.
func defaultLauncherDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(defaultHomeDir, dirSuffix)
	}
	return filepath.Join(home, dirSuffix)
}

// defaultConfigPath returns the default pandora.toml location.
func defaultConfigPath() string {
	return filepath.Join(defaultLauncherDir(), defaultConfigName)
}
