package content

import (
	"context"
	"crypto/sha1" //nolint:gosec // upstream content is addressed by sha1.
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

// Fetcher downloads and verifies task sets over a shared HTTP client.
type Fetcher struct {
	Client *http.Client
}

// Provision ensures every task's file exists with the expected content.
// Files whose on-disk hash already matches are skipped without touching
// the network; everything else is fetched under a call-scoped semaphore
// of `limit` permits. Tasks run concurrently; on error the in-flight
// tasks drain and the first error is returned. There are no retries, so
// a failed call leaves verified files behind for the next attempt.
// onDownload, if set, fires once before the first actual network
// transfer of the call.
func (f *Fetcher) Provision(ctx context.Context, tasks []Task, limit int64, tracker *progress.Tracker, onDownload func()) error {
	if limit <= 0 {
		limit = helpers.DownloadPermits
	}
	sem := semaphore.NewWeighted(limit)

	var total int64
	for _, task := range tasks {
		total += task.Size
	}
	if tracker != nil {
		tracker.SetTotal(total)
		tracker.Notify()
	}

	var started atomic.Bool
	firstDownload := func() {
		if onDownload != nil && !started.Swap(true) {
			onDownload()
		}
	}

	var group errgroup.Group
	for _, task := range tasks {
		group.Go(func() error {
			return f.runTask(ctx, task, sem, tracker, firstDownload)
		})
	}
	return group.Wait()
}

func (f *Fetcher) runTask(ctx context.Context, task Task, sem *semaphore.Weighted, tracker *progress.Tracker, firstDownload func()) error {
	expected, err := decodeSHA1(task.SHA1)
	if err != nil {
		return err
	}

	// Lock-free local probe: a file that already hashes correctly costs
	// no semaphore permit and no network round trip.
	if data, err := os.ReadFile(task.Path); err == nil && sha1Matches(data, expected) { //nolint:gosec // destinations are launcher-owned.
		finish(tracker, task.Size)
		return nil
	}

	firstDownload()

	body, err := f.download(ctx, task.Source.URL, sem)
	if err != nil {
		return err
	}
	if int64(len(body)) != task.Source.Size {
		return fmt.Errorf("%w: %s: got %d bytes, want %d", helpers.ErrTransferSizeMismatch, task.Source.URL, len(body), task.Source.Size)
	}

	// Decompression happens after the permit is released, so slow CPU
	// work never starves the transfer slots.
	if task.Source.Compression != CompressionNone {
		body, err = decompress(task.Source.Compression, body)
		if err != nil {
			return fmt.Errorf("decompress %s: %w", task.Source.URL, err)
		}
	}
	if int64(len(body)) != task.Size {
		return fmt.Errorf("%w: %s: got %d bytes, want %d", helpers.ErrSizeMismatch, task.Path, len(body), task.Size)
	}
	if !sha1Matches(body, expected) {
		return fmt.Errorf("%w: %s", helpers.ErrHashMismatch, task.Path)
	}

	if err := writeAtomic(task.Path, body); err != nil {
		return err
	}
	if task.Executable && runtime.GOOS != "windows" {
		if err := os.Chmod(task.Path, helpers.ExecutableMod); err != nil {
			return err
		}
	}

	finish(tracker, task.Size)
	return nil
}

// download fetches the body while holding one semaphore permit.
func (f *Fetcher) download(ctx context.Context, url string, sem *semaphore.Weighted) ([]byte, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// finish advances progress by the task's logical size, exactly once per
// task, whether the bytes came from disk or the network.
func finish(tracker *progress.Tracker, size int64) {
	if tracker != nil {
		tracker.Add(size)
		tracker.Notify()
	}
}

// writeAtomic writes data next to the destination and renames it into
// place, so a crash never leaves a half-written file with a plausible
// name.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, helpers.DirMod); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".download-")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// ApplySymlinks creates deferred manifest symlinks under root. A link
// whose resolved target does not exist or escapes root is skipped, never
// followed outside. Windows gets no symlinks, matching upstream.
func ApplySymlinks(root string, links []Symlink) {
	if runtime.GOOS == "windows" {
		return
	}
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return
	}
	for _, link := range links {
		target, err := filepath.EvalSymlinks(filepath.Join(filepath.Dir(link.Path), link.Target))
		if err != nil {
			continue
		}
		if !withinRoot(resolvedRoot, target) {
			continue
		}
		_ = os.Symlink(target, link.Path)
	}
}

func withinRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}

func decodeSHA1(hash string) ([]byte, error) {
	decoded, err := hex.DecodeString(hash)
	if err != nil || len(decoded) != sha1.Size {
		return nil, fmt.Errorf("%w: %q", helpers.ErrInvalidHash, hash)
	}
	return decoded, nil
}

func sha1Matches(data, expected []byte) bool {
	actual := sha1.Sum(data) //nolint:gosec // upstream content is addressed by sha1.
	return string(actual[:]) == string(expected)
}
