package launch

import (
	"context"
	"path/filepath"
	"slices"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
)

// WarmAll is the diagnostic bulk warm: it fetches every version's
// metadata and every runtime component manifest across all catalog
// platforms, reporting components whose manifests carry none of the
// known java executable locations. Documents land in the disk cache as
// a side effect, so later launches start warm.
func (l *Launcher) WarmAll(ctx context.Context) error {
	manifest, err := meta.Fetch(ctx, l.Cache, meta.VersionManifestItem{})
	if err != nil {
		return err
	}

	// Individual version failures are reported, not fatal: the point of
	// the warm is to surface them all in one run.
	var failed atomic.Int64
	var group errgroup.Group
	group.SetLimit(int(l.permits()))
	for _, link := range manifest.Versions {
		group.Go(func() error {
			if _, err := meta.Fetch(ctx, l.Cache, meta.VersionItem{Link: link}); err != nil {
				l.out().Errorf("version %s: %v", link.ID, err)
				failed.Add(1)
			}
			return nil
		})
	}
	_ = group.Wait()
	l.out().Okf("warmed %d version documents, %d failed", len(manifest.Versions), failed.Load())

	return l.warmRuntimeManifests(ctx)
}

// warmRuntimeManifests walks the whole catalog, every platform and
// every build, not just the running system's platform key.
func (l *Launcher) warmRuntimeManifests(ctx context.Context) error {
	catalog, err := meta.Fetch(ctx, l.Cache, meta.JavaRuntimesItem{})
	if err != nil {
		return err
	}

	platforms := make([]string, 0, len(*catalog))
	for platform := range *catalog {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	warmed := 0
	for _, platform := range platforms {
		if !helpers.IsSingleSegment(platform) {
			continue
		}
		components := (*catalog)[platform]
		names := make([]string, 0, len(components))
		for name := range components {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, component := range names {
			if !helpers.IsSingleSegment(component) {
				continue
			}
			for _, build := range components[component] {
				manifest, err := meta.Fetch(ctx, l.Cache, meta.RuntimeManifestItem{
					FetchURL:  build.Manifest.URL,
					CacheFile: filepath.Join(l.Config.RuntimeDir, component, platform, helpers.RuntimeManifestCacheFile),
					SHA1:      build.Manifest.SHA1,
				})
				if err != nil {
					return err
				}
				warmed++
				if !manifestHasExecutable(manifest.Files) {
					l.out().Errorf("component %s (%s) lists no known java executable", component, platform)
				}
			}
		}
	}
	l.out().Okf("warmed %d runtime component manifests", warmed)
	return nil
}

// manifestHasExecutable reports whether any known executable location
// appears among the manifest's file entries.
func manifestHasExecutable(files map[string]schema.RuntimeEntry) bool {
	for path, entry := range files {
		if entry.Type != schema.RuntimeEntryFile {
			continue
		}
		if slices.Contains(helpers.JavaExecutableCandidates, path) {
			return true
		}
	}
	return false
}
