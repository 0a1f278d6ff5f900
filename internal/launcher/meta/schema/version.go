package schema

import (
	"encoding/json"
	"time"
)

// Version is one version's metadata document.
type Version struct {
	Arguments   *Arguments     `json:"arguments"`
	AssetIndex  AssetIndexLink `json:"assetIndex"`
	Assets      string         `json:"assets"`
	Downloads   GameDownloads  `json:"downloads"`
	ID          string         `json:"id"`
	JavaVersion *JavaVersion   `json:"javaVersion"`
	Libraries   []Library      `json:"libraries"`
	Logging     *Logging       `json:"logging"`
	MainClass   string         `json:"mainClass"`
	// MinecraftArguments replaces Arguments in 1.12.2 and below.
	MinecraftArguments     string    `json:"minecraftArguments"`
	MinimumLauncherVersion int       `json:"minimumLauncherVersion"`
	ReleaseTime            time.Time `json:"releaseTime"`
	Time                   time.Time `json:"time"`
	Type                   string    `json:"type"`
	ComplianceLevel        *int      `json:"complianceLevel"`
}

// Arguments carries the JVM and game argument fragment lists.
type Arguments struct {
	Game []Argument `json:"game"`
	JVM  []Argument `json:"jvm"`
}

// Argument is one argument fragment: either a bare template, or one or
// more templates gated by rules. Upstream encodes this as a union of a
// JSON string and an object {rules, value}.
type Argument struct {
	Rules []Rule
	Value ArgumentValue
}

// UnmarshalJSON implements the upstream string-or-ruled-object union.
func (a *Argument) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		a.Rules = nil
		a.Value = ArgumentValue{single}
		return nil
	}
	var ruled struct {
		Rules []Rule        `json:"rules"`
		Value ArgumentValue `json:"value"`
	}
	if err := json.Unmarshal(data, &ruled); err != nil {
		return err
	}
	a.Rules = ruled.Rules
	a.Value = ruled.Value
	return nil
}

// ArgumentValue is one template or a template list.
type ArgumentValue []string

// UnmarshalJSON implements the upstream string-or-string-list union.
func (v *ArgumentValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*v = ArgumentValue{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*v = list
	return nil
}

// RuleAction is the effect a matching rule applies.
type RuleAction string

// Rule actions.
const (
	ActionAllow    RuleAction = "allow"
	ActionDisallow RuleAction = "disallow"
)

// Rule gates an argument or library on features or an OS descriptor.
// Upstream rules carry exactly one of Features or OS.
type Rule struct {
	Action   RuleAction    `json:"action"`
	Features *RuleFeatures `json:"features,omitempty"`
	OS       *RuleOS       `json:"os,omitempty"`
}

// RuleFeatures is a feature-flag predicate; exactly one flag is set.
type RuleFeatures struct {
	IsDemoUser              bool `json:"is_demo_user,omitempty"`
	HasCustomResolution     bool `json:"has_custom_resolution,omitempty"`
	HasQuickPlaysSupport    bool `json:"has_quick_plays_support,omitempty"`
	IsQuickPlaySingleplayer bool `json:"is_quick_play_singleplayer,omitempty"`
	IsQuickPlayMultiplayer  bool `json:"is_quick_play_multiplayer,omitempty"`
	IsQuickPlayRealms       bool `json:"is_quick_play_realms,omitempty"`
}

// RuleOS is an OS descriptor predicate; present fields must all match.
type RuleOS struct {
	Name *OSName `json:"name,omitempty"`
	Arch *OSArch `json:"arch,omitempty"`
	// Version is a regex matched against the live OS version string,
	// only used in 23w17a and below.
	Version string `json:"version,omitempty"`
}

// OSName is the closed OS enum used by rules.
type OSName string

// Rule OS names.
const (
	OSLinux   OSName = "linux"
	OSOsx     OSName = "osx"
	OSWindows OSName = "windows"
)

// OSArch is the closed architecture enum used by rules.
type OSArch string

// Rule OS architectures.
const (
	ArchARM64 OSArch = "arm64"
	ArchX86   OSArch = "x86"
)

// AssetIndexLink points at a version's asset index document.
type AssetIndexLink struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      int64  `json:"size"`
	TotalSize int64  `json:"totalSize"`
	URL       string `json:"url"`
}

// GameDownloads lists the version's main jar downloads.
type GameDownloads struct {
	Client         DownloadLink  `json:"client"`
	ClientMappings *DownloadLink `json:"client_mappings,omitempty"`
	Server         *DownloadLink `json:"server,omitempty"`
	ServerMappings *DownloadLink `json:"server_mappings,omitempty"`
	// WindowsServer is only present in 16w04a and below.
	WindowsServer *DownloadLink `json:"windows_server,omitempty"`
}

// DownloadLink is one downloadable file reference.
type DownloadLink struct {
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// JavaVersion declares the runtime component a version wants.
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// Library is one classpath or natives dependency.
type Library struct {
	Downloads LibraryDownloads `json:"downloads"`
	Name      string           `json:"name"`
	Rules     []Rule           `json:"rules,omitempty"`
	// Natives maps OS names to classifier keys, only used in 22w19a and below.
	Natives map[string]string `json:"natives,omitempty"`
	Extract *ExtractOptions   `json:"extract,omitempty"`
}

// LibraryDownloads lists a library's artifacts.
type LibraryDownloads struct {
	Artifact *LibraryArtifact `json:"artifact,omitempty"`
	// Classifiers holds named artifacts, only used in 22w19a and below.
	Classifiers map[string]LibraryArtifact `json:"classifiers,omitempty"`
}

// LibraryArtifact is a library jar with its repository-relative path.
type LibraryArtifact struct {
	Path string `json:"path"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// ExtractOptions modifies natives extraction, only used in 22w17a and below.
type ExtractOptions struct {
	Exclude []string `json:"exclude,omitempty"`
}

// Logging configures the game's log4j output.
type Logging struct {
	Client LoggingTarget `json:"client"`
}

// LoggingTarget is one logging configuration download.
type LoggingTarget struct {
	Argument string      `json:"argument"`
	File     LoggingFile `json:"file"`
	Type     string      `json:"type"`
}

// LoggingFile is the downloadable logging configuration.
type LoggingFile struct {
	ID   string `json:"id"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}
