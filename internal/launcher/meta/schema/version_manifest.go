// Package schema defines the upstream JSON documents consumed by the
// launcher: the version manifest, per-version metadata, the Java runtime
// catalog and component manifests, and asset indexes.
package schema

import "time"

// VersionManifest is the root version list document.
type VersionManifest struct {
	Latest   LatestVersions `json:"latest"`
	Versions []VersionLink  `json:"versions"`
}

// LatestVersions names the newest release and snapshot ids.
type LatestVersions struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// VersionLink points at one version's metadata document.
type VersionLink struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	URL             string    `json:"url"`
	Time            time.Time `json:"time"`
	ReleaseTime     time.Time `json:"releaseTime"`
	SHA1            string    `json:"sha1"`
	ComplianceLevel int       `json:"complianceLevel"`
}

// Find returns the link for a version id.
func (m *VersionManifest) Find(id string) (VersionLink, bool) {
	for _, link := range m.Versions {
		if link.ID == id {
			return link, true
		}
	}
	return VersionLink{}, false
}
