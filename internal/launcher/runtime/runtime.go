// Package runtime provisions the Java runtime a game version declares:
// it resolves the platform key, picks a build from Mojang's catalog,
// materializes the component manifest on disk and locates the java
// executable inside it.
package runtime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"sort"

	"github.com/Masterminds/semver"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/content"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/output"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

// platforms maps GOOS/GOARCH pairs to Mojang's runtime platform keys.
// Pairs not listed here fall back to "<os>-<arch>", which matches how
// new platform keys have been minted so far.
var platforms = map[[2]string]string{
	{"linux", "amd64"}:   "linux",
	{"linux", "386"}:     "linux-i386",
	{"darwin", "amd64"}:  "mac-os",
	{"darwin", "arm64"}:  "mac-os-arm64",
	{"windows", "amd64"}: "windows-x64",
	{"windows", "386"}:   "windows-x86",
	{"windows", "arm64"}: "windows-arm64",
}

// PlatformKey returns the runtime catalog key for the running system.
func PlatformKey() string {
	if key, ok := platforms[[2]string{goruntime.GOOS, goruntime.GOARCH}]; ok {
		return key
	}
	return goruntime.GOOS + "-" + goruntime.GOARCH
}

// Provisioner downloads and verifies Java runtime components under Dir,
// one subdirectory per component+platform pair.
type Provisioner struct {
	Cache   *meta.Cache
	Fetcher *content.Fetcher
	Dir     string
	Out     output.Printer
	// Permits caps concurrent transfers, helpers.DownloadPermits when unset.
	Permits int64
}

func (p *Provisioner) permits() int64 {
	if p.Permits > 0 {
		return p.Permits
	}
	return helpers.DownloadPermits
}

// Provision ensures the runtime component declared by version exists on
// disk and returns the absolute path of its java executable. A component
// directory that already exists only changes the progress title; every
// file is still hash-checked.
func (p *Provisioner) Provision(ctx context.Context, version *schema.Version, tracker *progress.Tracker) (string, error) {
	component := helpers.LegacyJavaComponent
	if version.JavaVersion != nil && version.JavaVersion.Component != "" {
		component = version.JavaVersion.Component
	}
	if !helpers.IsSingleSegment(component) {
		return "", fmt.Errorf("%w: %q", helpers.ErrUnknownComponent, component)
	}
	platform := PlatformKey()
	if !helpers.IsSingleSegment(platform) {
		return "", fmt.Errorf("%w: %q", helpers.ErrUnknownPlatform, platform)
	}

	build, err := p.selectBuild(ctx, platform, component)
	if err != nil {
		return "", err
	}

	componentDir := filepath.Join(p.Dir, component, platform)
	if tracker != nil {
		if _, err := os.Stat(componentDir); err == nil {
			tracker.SetTitle("Verifying integrity of Java runtime " + component)
		} else {
			tracker.SetTitle("Downloading Java runtime " + component)
		}
		tracker.Notify()
	}

	manifest, err := meta.Fetch(ctx, p.Cache, meta.RuntimeManifestItem{
		FetchURL:  build.Manifest.URL,
		CacheFile: filepath.Join(componentDir, helpers.RuntimeManifestCacheFile),
		SHA1:      build.Manifest.SHA1,
	})
	if err != nil {
		return "", err
	}

	tasks, links, err := p.planEntries(componentDir, manifest)
	if err != nil {
		return "", err
	}
	onDownload := func() {
		if tracker != nil {
			tracker.SetTitle("Downloading Java runtime " + component)
			tracker.Notify()
		}
	}
	if err := p.Fetcher.Provision(ctx, tasks, p.permits(), tracker, onDownload); err != nil {
		return "", err
	}
	content.ApplySymlinks(componentDir, links)

	return ExecutablePath(componentDir)
}

// selectBuild picks the first listed build for platform+component. The
// catalog order is what the stock launcher relies on; when a semver
// comparison disagrees, that is only worth a debug line.
func (p *Provisioner) selectBuild(ctx context.Context, platform, component string) (*schema.RuntimeBuild, error) {
	catalog, err := meta.Fetch(ctx, p.Cache, meta.JavaRuntimesItem{})
	if err != nil {
		return nil, err
	}
	components, ok := (*catalog)[platform]
	if !ok {
		return nil, fmt.Errorf("%w: no runtimes for %q", helpers.ErrUnknownPlatform, platform)
	}
	builds := components[component]
	if len(builds) == 0 {
		return nil, fmt.Errorf("%w: no %q builds for %q", helpers.ErrUnknownComponent, component, platform)
	}

	if p.Out != nil && len(builds) > 1 {
		if newest := newestBuildName(builds); newest != "" && newest != builds[0].Version.Name {
			p.Out.Debugf("using first listed %s build %s, newest in catalog is %s", component, builds[0].Version.Name, newest)
		}
	}
	return &builds[0], nil
}

// newestBuildName returns the semver-highest build name, or "" when the
// names do not parse as versions.
func newestBuildName(builds []schema.RuntimeBuild) string {
	versions := make([]*semver.Version, 0, len(builds))
	for _, build := range builds {
		v, err := semver.NewVersion(build.Version.Name)
		if err != nil {
			return ""
		}
		versions = append(versions, v)
	}
	sort.Sort(semver.Collection(versions))
	return versions[len(versions)-1].String()
}

// planEntries translates manifest entries into fetch tasks and deferred
// symlinks. Directories are created inline so empty ones survive; paths
// that would escape the component directory are skipped.
func (p *Provisioner) planEntries(componentDir string, manifest *schema.RuntimeManifest) ([]content.Task, []content.Symlink, error) {
	var tasks []content.Task
	var links []content.Symlink
	for rel, entry := range manifest.Files {
		if !helpers.IsNormalRelPath(rel) {
			p.debugf("skipping unsafe manifest path %q", rel)
			continue
		}
		dest := filepath.Join(componentDir, filepath.FromSlash(rel))
		switch entry.Type {
		case schema.RuntimeEntryDirectory:
			if err := os.MkdirAll(dest, helpers.DirMod); err != nil {
				return nil, nil, err
			}
		case schema.RuntimeEntryFile:
			if entry.Downloads == nil {
				p.debugf("manifest file %q has no downloads", rel)
				continue
			}
			tasks = append(tasks, fileTask(dest, entry))
		case schema.RuntimeEntryLink:
			links = append(links, content.Symlink{Path: dest, Target: entry.Target})
		default:
			p.debugf("unknown manifest entry type %q for %q", entry.Type, rel)
		}
	}
	return tasks, links, nil
}

// fileTask prefers the lzma side channel when the manifest offers one:
// same final bytes, smaller transfer.
func fileTask(dest string, entry schema.RuntimeEntry) content.Task {
	task := content.Task{
		Path:       dest,
		SHA1:       entry.Downloads.Raw.SHA1,
		Size:       entry.Downloads.Raw.Size,
		Executable: entry.Executable,
		Source: content.Source{
			URL:  entry.Downloads.Raw.URL,
			Size: entry.Downloads.Raw.Size,
		},
	}
	if lzma := entry.Downloads.LZMA; lzma != nil {
		task.Source = content.Source{
			URL:         lzma.URL,
			Size:        lzma.Size,
			Compression: content.CompressionLZMA,
		}
	}
	return task
}

// ExecutablePath probes the known java executable locations inside a
// component directory and returns the first that exists.
func ExecutablePath(componentDir string) (string, error) {
	for _, candidate := range helpers.JavaExecutableCandidates {
		path := filepath.Join(componentDir, filepath.FromSlash(candidate))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: in %s", helpers.ErrExecutableNotFound, componentDir)
}

func (p *Provisioner) debugf(format string, args ...any) {
	if p.Out != nil {
		p.Out.Debugf(format, args...)
	}
}
