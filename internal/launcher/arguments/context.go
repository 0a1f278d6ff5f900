// Package arguments turns version metadata argument fragments into a
// concrete process argument vector: rule evaluation, placeholder
// expansion, classpath and natives directory derivation.
package arguments

import (
	goruntime "runtime"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
)

// LaunchContext carries the resolved facts placeholder expansion and
// rule evaluation draw from. Zero values are legal: an unset field
// expands to the empty string and an unset feature flag never matches.
type LaunchContext struct {
	NativesDirectory string
	Classpath        string
	LauncherName     string
	LauncherVersion  string

	PlayerName      string
	VersionName     string
	VersionType     string
	GameDirectory   string
	AssetsRoot      string
	AssetsIndexName string

	UUID        string
	AccessToken string
	ClientID    string
	XUID        string

	QuickPlayPath string

	DemoUser              bool
	CustomResolution      bool
	QuickPlaysSupport     bool
	QuickPlaySingleplayer bool
	QuickPlayMultiplayer  bool
	QuickPlayRealms       bool

	OSName    schema.OSName
	OSArch    schema.OSArch
	OSVersion string
}

// FillOS sets the OS descriptor fields from the running system. The
// version string stays empty unless the caller knows better; version
// regexes then simply never match.
func (c *LaunchContext) FillOS() {
	switch goruntime.GOOS {
	case "linux":
		c.OSName = schema.OSLinux
	case "darwin":
		c.OSName = schema.OSOsx
	case "windows":
		c.OSName = schema.OSWindows
	}
	switch goruntime.GOARCH {
	case "arm64":
		c.OSArch = schema.ArchARM64
	case "386":
		c.OSArch = schema.ArchX86
	}
}
