// Package launch orchestrates a game start: metadata resolution,
// parallel provisioning of runtime, assets and game files, argument
// assembly and process spawn.
package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/arguments"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/assets"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/config"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/content"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/instances"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/output"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/runtime"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

// Launcher wires the provisioning components together. One Launcher
// lives for the backend process.
type Launcher struct {
	Config    *config.Config
	Cache     *meta.Cache
	Fetcher   *content.Fetcher
	Runtime   *runtime.Provisioner
	Assets    *assets.Provisioner
	Instances *instances.Store
	Trackers  *progress.Trackers
	Notifier  *progress.Notifier
	Out       output.Printer
}

// Launch resolves an instance to a version, provisions everything the
// version needs, and spawns the game process. The returned command has
// already been started; any failed phase marks its tracker and no
// process is spawned.
func (l *Launcher) Launch(ctx context.Context, instanceName string) (*exec.Cmd, error) {
	record, err := l.Instances.Get(instanceName)
	if err != nil {
		return nil, err
	}
	version, err := l.resolveVersion(ctx, record.Version)
	if err != nil {
		return nil, err
	}

	javaPath, err := l.provisionAll(ctx, version)
	if err != nil {
		return nil, err
	}

	launchCtx, err := l.buildContext(version, record)
	if err != nil {
		return nil, err
	}
	args, err := arguments.Build(version, launchCtx)
	if err != nil {
		return nil, err
	}

	l.out().Debugf("spawning %s with %d arguments", javaPath, len(args))
	cmd := exec.Command(javaPath, args...) //nolint:gosec // javaPath comes from the provisioned runtime.
	cmd.Dir = launchCtx.GameDirectory
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to spawn %s: %w", javaPath, err)
	}
	return cmd, nil
}

// resolveVersion maps a version id to its metadata document, reloading
// the root manifests first when force-reload is set.
func (l *Launcher) resolveVersion(ctx context.Context, id string) (*schema.Version, error) {
	if l.Config.ForceReload {
		meta.Load(l.Cache, meta.VersionManifestItem{}, true)
		meta.Load(l.Cache, meta.JavaRuntimesItem{}, true)
	}
	manifest, err := meta.Fetch(ctx, l.Cache, meta.VersionManifestItem{})
	if err != nil {
		return nil, err
	}
	link, ok := manifest.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", helpers.ErrVersionNotFound, id)
	}
	return meta.Fetch(ctx, l.Cache, meta.VersionItem{Link: link})
}

// provisionAll runs the runtime, asset and game-file phases in
// parallel, one tracker each. A failing phase marks its tracker; the
// others drain before the first error is returned.
func (l *Launcher) provisionAll(ctx context.Context, version *schema.Version) (string, error) {
	runtimeTracker := l.newTracker("Java runtime")
	assetsTracker := l.newTracker("Verifying integrity of assets")
	gameTracker := l.newTracker("Verifying integrity of game files")

	var javaPath string
	var group errgroup.Group
	group.Go(func() error {
		path, err := l.Runtime.Provision(ctx, version, runtimeTracker)
		runtimeTracker.Finish(err != nil)
		runtimeTracker.Notify()
		if err == nil {
			javaPath = path
		}
		return err
	})
	group.Go(func() error {
		err := l.Assets.Provision(ctx, version, assetsTracker)
		assetsTracker.Finish(err != nil)
		assetsTracker.Notify()
		return err
	})
	group.Go(func() error {
		err := l.provisionGameFiles(ctx, version, gameTracker)
		gameTracker.Finish(err != nil)
		gameTracker.Notify()
		return err
	})
	if err := group.Wait(); err != nil {
		return "", err
	}
	return javaPath, nil
}

// provisionGameFiles fetches the client jar and every rule-allowed
// library artifact, classifiers included.
func (l *Launcher) provisionGameFiles(ctx context.Context, version *schema.Version, tracker *progress.Tracker) error {
	osCtx := &arguments.LaunchContext{}
	osCtx.FillOS()

	tasks := []content.Task{clientTask(l.clientJarPath(version), version)}
	for _, library := range version.Libraries {
		if len(library.Rules) > 0 && !arguments.EvaluateRules(library.Rules, osCtx) {
			continue
		}
		if artifact := library.Downloads.Artifact; artifact != nil {
			task, err := l.libraryTask(artifact)
			if err != nil {
				return err
			}
			tasks = append(tasks, task)
		}
		for _, artifact := range library.Downloads.Classifiers {
			task, err := l.libraryTask(&artifact)
			if err != nil {
				return err
			}
			tasks = append(tasks, task)
		}
	}
	return l.Fetcher.Provision(ctx, tasks, l.permits(), tracker, func() {
		tracker.SetTitle("Downloading game files")
		tracker.Notify()
	})
}

// permits is the configured transfer concurrency, never above the
// fixed launcher-wide cap.
func (l *Launcher) permits() int64 {
	if l.Config.Workers > 0 && l.Config.Workers < helpers.DownloadPermits {
		return int64(l.Config.Workers)
	}
	return helpers.DownloadPermits
}

func (l *Launcher) libraryTask(artifact *schema.LibraryArtifact) (content.Task, error) {
	if !helpers.IsNormalRelPath(artifact.Path) {
		return content.Task{}, fmt.Errorf("%w: library path %q", helpers.ErrInvalidPath, artifact.Path)
	}
	return content.Task{
		Path:   filepath.Join(l.Config.LibraryDir, filepath.FromSlash(artifact.Path)),
		SHA1:   artifact.SHA1,
		Size:   artifact.Size,
		Source: content.Source{URL: artifact.URL, Size: artifact.Size},
	}, nil
}

func clientTask(path string, version *schema.Version) content.Task {
	client := version.Downloads.Client
	return content.Task{
		Path:   path,
		SHA1:   client.SHA1,
		Size:   client.Size,
		Source: content.Source{URL: client.URL, Size: client.Size},
	}
}

// clientJarPath places the client jar next to the version's metadata,
// one directory per version id.
func (l *Launcher) clientJarPath(version *schema.Version) string {
	return filepath.Join(l.Config.LauncherDir, "versions", version.ID, version.ID+".jar")
}

// buildContext assembles the LaunchContext from config, instance and
// version facts, and creates the directories the arguments point at.
func (l *Launcher) buildContext(version *schema.Version, record instances.Record) (*arguments.LaunchContext, error) {
	nativesName, err := arguments.NativesDirName(version.Libraries)
	if err != nil {
		return nil, err
	}
	nativesDir := filepath.Join(l.Config.LauncherDir, "natives", nativesName)
	gameDir := filepath.Join(l.Config.GameDir, record.Name)
	for _, dir := range []string{nativesDir, gameDir} {
		if err := os.MkdirAll(dir, helpers.DirMod); err != nil {
			return nil, err
		}
	}

	session := l.Config.Session
	quickPlay := l.Config.QuickPlay
	launchCtx := &arguments.LaunchContext{
		NativesDirectory: nativesDir,
		LauncherName:     helpers.LauncherName,
		LauncherVersion:  helpers.LauncherVersion,

		PlayerName:      session.PlayerName,
		VersionName:     version.ID,
		VersionType:     version.Type,
		GameDirectory:   gameDir,
		AssetsRoot:      l.Config.AssetsDir,
		AssetsIndexName: version.AssetIndex.ID,

		UUID:        session.UUID,
		AccessToken: session.AccessToken,
		ClientID:    session.ClientID,
		XUID:        session.XUID,

		QuickPlayPath: quickPlay.Path,

		DemoUser:              session.Demo,
		CustomResolution:      l.Config.Display.CustomResolution(),
		QuickPlaysSupport:     quickPlay.Enabled(),
		QuickPlaySingleplayer: quickPlay.Singleplayer,
		QuickPlayMultiplayer:  quickPlay.Multiplayer,
		QuickPlayRealms:       quickPlay.Realms,
	}
	launchCtx.FillOS()

	classpath, err := arguments.Classpath(l.Config.LibraryDir, l.clientJarPath(version), version, launchCtx)
	if err != nil {
		return nil, err
	}
	launchCtx.Classpath = classpath
	return launchCtx, nil
}

func (l *Launcher) newTracker(title string) *progress.Tracker {
	tracker := progress.NewTracker(title, l.Notifier)
	if l.Trackers != nil {
		l.Trackers.Push(tracker)
	}
	return tracker
}

func (l *Launcher) out() output.Printer {
	if l.Out == nil {
		return output.Discard{}
	}
	return l.Out
}
