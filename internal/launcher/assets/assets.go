// Package assets provisions the content-addressed game assets a version
// references through its asset index.
package assets

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/content"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

// Provisioner downloads and verifies asset objects under Dir, laid out
// the way the stock launcher expects: indexes/ and objects/{hh}/{hash}.
type Provisioner struct {
	Cache   *meta.Cache
	Fetcher *content.Fetcher
	Dir     string
	// Permits caps concurrent transfers, helpers.DownloadPermits when unset.
	Permits int64
}

func (p *Provisioner) permits() int64 {
	if p.Permits > 0 {
		return p.Permits
	}
	return helpers.DownloadPermits
}

// IndexDir returns the directory holding cached asset indexes.
func (p *Provisioner) IndexDir() string {
	return filepath.Join(p.Dir, "indexes")
}

// ObjectsDir returns the content-addressed object store root.
func (p *Provisioner) ObjectsDir() string {
	return filepath.Join(p.Dir, "objects")
}

// Provision fetches the version's asset index and ensures every object
// it lists exists in the store with the right hash. Objects shared
// between versions are naturally deduplicated by the hash layout.
func (p *Provisioner) Provision(ctx context.Context, version *schema.Version, tracker *progress.Tracker) error {
	index, err := p.fetchIndex(ctx, version)
	if err != nil {
		return err
	}

	tasks := make([]content.Task, 0, len(index.Objects))
	for name, object := range index.Objects {
		if len(object.Hash) < 2 || !helpers.IsSingleSegment(object.Hash) {
			return fmt.Errorf("%w: asset %q hash %q", helpers.ErrInvalidPath, name, object.Hash)
		}
		tasks = append(tasks, objectTask(p.ObjectsDir(), object))
	}
	onDownload := func() {
		if tracker != nil {
			tracker.SetTitle("Downloading assets")
			tracker.Notify()
		}
	}
	return p.Fetcher.Provision(ctx, tasks, p.permits(), tracker, onDownload)
}

// fetchIndex resolves the hash-verified asset index, cached on disk as
// "{versionId}-{assetsId}" so distinct versions sharing an assets id
// keep distinct cache entries.
func (p *Provisioner) fetchIndex(ctx context.Context, version *schema.Version) (*schema.AssetIndex, error) {
	link := version.AssetIndex
	name := version.ID + "-" + link.ID
	if !helpers.IsSingleSegment(name) {
		return nil, fmt.Errorf("%w: asset index name %q", helpers.ErrInvalidPath, name)
	}
	return meta.Fetch(ctx, p.Cache, meta.AssetIndexItem{
		FetchURL:  link.URL,
		CacheFile: filepath.Join(p.IndexDir(), name),
		SHA1:      link.SHA1,
	})
}

// objectTask builds the download task for one asset object. Destination
// and source share the {hash[:2]}/{hash} addressing scheme.
func objectTask(objectsDir string, object schema.AssetObject) content.Task {
	prefix := object.Hash[:2]
	url := helpers.ResourcesBaseURL + "/" + prefix + "/" + object.Hash
	return content.Task{
		Path:   filepath.Join(objectsDir, prefix, object.Hash),
		SHA1:   object.Hash,
		Size:   object.Size,
		Source: content.Source{URL: url, Size: object.Size},
	}
}
