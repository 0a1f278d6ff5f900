package meta

import (
	"path/filepath"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
)

// VersionManifestItem describes the root version manifest. It carries no
// content hash: the manifest legitimately changes, so the cached copy is
// a network-failure fallback, never an immediate result.
type VersionManifestItem struct{}

// URL implements Item.
func (VersionManifestItem) URL() string { return helpers.VersionManifestURL }

// CachePath implements Item.
func (VersionManifestItem) CachePath(c *Cache) string {
	return filepath.Join(c.dir, helpers.VersionManifestCacheFile)
}

// Hash implements Item.
func (VersionManifestItem) Hash() string { return "" }

func (VersionManifestItem) entry(c *Cache) *entry[schema.VersionManifest] {
	return &c.versionManifest
}

// JavaRuntimesItem describes the global Java runtime catalog, also
// unverified and fallback-cached.
type JavaRuntimesItem struct{}

// URL implements Item.
func (JavaRuntimesItem) URL() string { return helpers.JavaRuntimesURL }

// CachePath implements Item.
func (JavaRuntimesItem) CachePath(c *Cache) string {
	return filepath.Join(c.dir, helpers.JavaRuntimesCacheFile)
}

// Hash implements Item.
func (JavaRuntimesItem) Hash() string { return "" }

func (JavaRuntimesItem) entry(c *Cache) *entry[schema.JavaRuntimes] {
	return &c.javaRuntimes
}

// VersionItem describes one version's metadata document, hash-verified
// and cached under version_info/{sha1}.
type VersionItem struct {
	Link schema.VersionLink
}

// URL implements Item.
func (i VersionItem) URL() string { return i.Link.URL }

// CachePath implements Item. The sha1 doubles as the cache file name, so
// a link whose hash is not a plain path segment is never cached to disk.
func (i VersionItem) CachePath(c *Cache) string {
	if !helpers.IsSingleSegment(i.Link.SHA1) {
		return ""
	}
	return filepath.Join(c.dir, helpers.VersionInfoCacheDir, i.Link.SHA1)
}

// Hash implements Item.
func (i VersionItem) Hash() string { return i.Link.SHA1 }

func (i VersionItem) entry(c *Cache) *entry[schema.Version] {
	return c.versionInfo.get(i.URL())
}

// AssetIndexItem describes a version's asset index, hash-verified and
// cached at an explicit path under the assets directory.
type AssetIndexItem struct {
	FetchURL  string
	CacheFile string
	SHA1      string
}

// URL implements Item.
func (i AssetIndexItem) URL() string { return i.FetchURL }

// CachePath implements Item.
func (i AssetIndexItem) CachePath(*Cache) string { return i.CacheFile }

// Hash implements Item.
func (i AssetIndexItem) Hash() string { return i.SHA1 }

func (i AssetIndexItem) entry(c *Cache) *entry[schema.AssetIndex] {
	return c.assetIndexes.get(i.URL())
}

// RuntimeManifestItem describes a Java runtime component manifest,
// hash-verified and cached inside the component directory.
type RuntimeManifestItem struct {
	FetchURL  string
	CacheFile string
	SHA1      string
}

// URL implements Item.
func (i RuntimeManifestItem) URL() string { return i.FetchURL }

// CachePath implements Item.
func (i RuntimeManifestItem) CachePath(*Cache) string { return i.CacheFile }

// Hash implements Item.
func (i RuntimeManifestItem) Hash() string { return i.SHA1 }

func (i RuntimeManifestItem) entry(c *Cache) *entry[schema.RuntimeManifest] {
	return c.runtimeManifests.get(i.URL())
}
