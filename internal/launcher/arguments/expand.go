package arguments

import (
	"fmt"
	"strings"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
)

// Expand substitutes every ${name} placeholder in a template. The name
// set is closed: an unrecognized name is a configuration error, not an
// empty string, so a metadata change never silently produces a broken
// argument.
func Expand(template string, ctx *LaunchContext) (string, error) {
	if !strings.Contains(template, "${") {
		return template, nil
	}
	var b strings.Builder
	rest := template
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])
		name := rest[start+2 : start+end]
		value, err := ctx.placeholder(name)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
		rest = rest[start+end+1:]
	}
}

func (c *LaunchContext) placeholder(name string) (string, error) {
	switch name {
	case "natives_directory":
		return c.NativesDirectory, nil
	case "launcher_name":
		return c.LauncherName, nil
	case "launcher_version":
		return c.LauncherVersion, nil
	case "classpath":
		return c.Classpath, nil
	case "auth_player_name":
		return c.PlayerName, nil
	case "version_name":
		return c.VersionName, nil
	case "game_directory":
		return c.GameDirectory, nil
	case "assets_root":
		return c.AssetsRoot, nil
	case "assets_index_name":
		return c.AssetsIndexName, nil
	case "auth_uuid":
		return c.UUID, nil
	case "auth_access_token":
		return c.AccessToken, nil
	case "clientid":
		return c.ClientID, nil
	case "auth_xuid":
		return c.XUID, nil
	case "version_type":
		return c.VersionType, nil
	case "quickPlayPath":
		return c.QuickPlayPath, nil
	}
	return "", fmt.Errorf("%w: %q", helpers.ErrUnknownPlaceholder, name)
}
