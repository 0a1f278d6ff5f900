package commands

import (
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/assets"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/config"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/content"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/infra"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/instances"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/launch"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/runtime"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

// newLauncher wires every component against one config, one HTTP
// client and one shared notifier. The returned close function releases
// the instance database lock.
func newLauncher(cfg *config.Config, rt *infra.Infra) (*launch.Launcher, func(), error) {
	store, err := instances.Open(cfg.LauncherDir)
	if err != nil {
		return nil, nil, err
	}

	notifier := &progress.Notifier{}
	cache := meta.New(rt.HTTP, cfg.MetadataDir, notifier, rt.Output)
	fetcher := &content.Fetcher{Client: rt.HTTP}

	launcher := &launch.Launcher{
		Config:  cfg,
		Cache:   cache,
		Fetcher: fetcher,
		Runtime: &runtime.Provisioner{
			Cache:   cache,
			Fetcher: fetcher,
			Dir:     cfg.RuntimeDir,
			Out:     rt.Output,
			Permits: int64(cfg.Workers),
		},
		Assets: &assets.Provisioner{
			Cache:   cache,
			Fetcher: fetcher,
			Dir:     cfg.AssetsDir,
			Permits: int64(cfg.Workers),
		},
		Instances: store,
		Trackers:  &progress.Trackers{},
		Notifier:  notifier,
		Out:       rt.Output,
	}
	return launcher, func() { _ = store.Close() }, nil
}
