package schema

import "time"

// JavaRuntimes is the global runtime catalog: platform key → component
// name → build list. The whole document is two levels of dynamic keys.
type JavaRuntimes map[string]RuntimePlatform

// RuntimePlatform maps component names to their available builds.
type RuntimePlatform map[string][]RuntimeBuild

// RuntimeBuild is one downloadable runtime build.
type RuntimeBuild struct {
	Availability RuntimeAvailability `json:"availability"`
	Manifest     DownloadLink        `json:"manifest"`
	Version      RuntimeVersion      `json:"version"`
}

// RuntimeAvailability is Mojang's rollout bookkeeping for a build.
type RuntimeAvailability struct {
	Group    int `json:"group"`
	Progress int `json:"progress"`
}

// RuntimeVersion names a build and its release date.
type RuntimeVersion struct {
	Name     string    `json:"name"`
	Released time.Time `json:"released"`
}
