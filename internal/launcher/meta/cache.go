// Package meta is the memoized metadata cache: remote JSON documents are
// fetched at most once per key, persisted to disk, and shared as
// immutable snapshots by every concurrent caller.
package meta

import (
	"context"
	"crypto/sha1" //nolint:gosec // upstream metadata is addressed by sha1.
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/output"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

// Item describes a fetchable, cacheable remote JSON document: its URL, an
// optional expected content hash, the disk cache location, and the state
// slot shared by all callers for the same key.
type Item[T any] interface {
	// URL is the canonical fetch location and the memoization key.
	URL() string
	// CachePath is the disk cache file, or "" to skip disk caching.
	CachePath(c *Cache) string
	// Hash is the expected hex sha1 of the raw document, or "" for
	// documents that may legitimately change (the root manifests).
	Hash() string

	entry(c *Cache) *entry[T]
}

// Cache owns the per-document load states, the disk cache directory, and
// the change notifier dependents refresh from. One Cache lives for the
// backend process and is passed by handle to every component.
type Cache struct {
	client   *http.Client
	dir      string
	notifier *progress.Notifier
	out      output.Printer

	versionManifest  entry[schema.VersionManifest]
	javaRuntimes     entry[schema.JavaRuntimes]
	versionInfo      entryMap[schema.Version]
	assetIndexes     entryMap[schema.AssetIndex]
	runtimeManifests entryMap[schema.RuntimeManifest]
}

// New creates a Cache storing document copies under dir.
func New(client *http.Client, dir string, notifier *progress.Notifier, out output.Printer) *Cache {
	if out == nil {
		out = output.Discard{}
	}
	return &Cache{
		client:   client,
		dir:      dir,
		notifier: notifier,
		out:      out,
	}
}

// Dir returns the metadata cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Notifier returns the shared state-change notifier.
func (c *Cache) Notifier() *progress.Notifier {
	return c.notifier
}

// entry is the per-key load state. The mutex guards only the attempt
// pointer, never a network call, so concurrent callers await one
// in-flight fetch without blocking each other.
type entry[T any] struct {
	mu      sync.Mutex
	attempt *attempt[T]
}

// attempt is the shared in-flight handle: done closes on the terminal
// transition, after which value/err are immutable.
type attempt[T any] struct {
	done  chan struct{}
	value *T
	err   error
}

// entryMap stores entries for dynamically-keyed items (per-version
// metadata, asset indexes, runtime manifests), keyed by canonical URL.
type entryMap[T any] struct {
	mu sync.RWMutex
	m  map[string]*entry[T]
}

func (em *entryMap[T]) get(url string) *entry[T] {
	em.mu.RLock()
	e := em.m[url]
	em.mu.RUnlock()
	if e != nil {
		return e
	}
	em.mu.Lock()
	defer em.mu.Unlock()
	if em.m == nil {
		em.m = make(map[string]*entry[T])
	}
	if e := em.m[url]; e != nil {
		return e
	}
	e = &entry[T]{}
	em.m[url] = e
	return e
}

// Load ensures an item is loading or loaded. With reload it restarts the
// load unconditionally, bypassing the disk cache; every waiter that
// arrives afterwards observes the fresh attempt.
func Load[T any](c *Cache, item Item[T], reload bool) {
	e := item.entry(c)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.attempt != nil && !reload {
		return
	}
	cachePath := item.CachePath(c)
	if reload {
		cachePath = ""
	}
	e.attempt = startLoad(c, item, cachePath)
}

// Fetch ensures an item is loaded and returns the shared snapshot. A
// Loaded entry never touches the network again; a Failed entry returns
// the recorded error until someone reloads. Cancelling ctx abandons the
// wait but never aborts the in-flight load.
func Fetch[T any](ctx context.Context, c *Cache, item Item[T]) (*T, error) {
	e := item.entry(c)
	e.mu.Lock()
	if e.attempt == nil {
		e.attempt = startLoad(c, item, item.CachePath(c))
	}
	a := e.attempt
	e.mu.Unlock()

	select {
	case <-a.done:
		return a.value, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// startLoad spawns the background load and returns its shared handle.
func startLoad[T any](c *Cache, item Item[T], cachePath string) *attempt[T] {
	a := &attempt[T]{done: make(chan struct{})}
	url := item.URL()
	hash := item.Hash()
	go func() {
		a.value, a.err = loadDocument[T](c, url, cachePath, hash)
		close(a.done)
		if c.notifier != nil {
			c.notifier.Notify()
		}
	}()
	return a
}

// loadDocument implements the shared fetch algorithm: disk cache first
// (immediate result when hash-verified, fallback otherwise), then
// network fetch, parse, verify, persist. Network or parse failures fall
// back to the cached parse when one is held.
func loadDocument[T any](c *Cache, url, cachePath, hash string) (*T, error) {
	expected, err := decodeSHA1(hash)
	if err != nil {
		return nil, err
	}

	var fallback *T
	if cachePath != "" {
		if cached, ok := readCached[T](c, cachePath, expected); ok {
			if expected != nil {
				return cached, nil
			}
			fallback = cached
		}
	}

	value, err := fetchRemote[T](c, url, cachePath, expected)
	if err != nil {
		if fallback != nil {
			c.out.Debugf("fetching %s failed, using cached copy: %v", url, err)
			return fallback, nil
		}
		return nil, err
	}
	return value, nil
}

func readCached[T any](c *Cache, cachePath string, expected []byte) (*T, bool) {
	data, err := os.ReadFile(cachePath) //nolint:gosec // cache paths are launcher-owned.
	if err != nil {
		return nil, false
	}
	if expected != nil && !sha1Matches(data, expected) {
		c.out.Debugf("sha1 mismatch for cached %s, downloading again", cachePath)
		return nil, false
	}
	value := new(T)
	if err := json.Unmarshal(data, value); err != nil {
		c.out.Debugf("cached %s is malformed, downloading again: %v", cachePath, err)
		return nil, false
	}
	return value, true
}

func fetchRemote[T any](c *Cache, url, cachePath string, expected []byte) (*T, error) {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{URL: url, Status: resp.Status, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Decode before checking the hash: "content is invalid" is a more
	// useful failure than a bare hash mismatch.
	value := new(T)
	if err := json.Unmarshal(body, value); err != nil {
		return nil, err
	}
	if expected != nil && !sha1Matches(body, expected) {
		return nil, helpers.ErrHashMismatch
	}

	if cachePath != "" {
		c.persist(cachePath, body)
	}
	return value, nil
}

// persist writes the raw document body to the cache file. Failures are
// logged, not fatal: the in-memory snapshot is already usable.
func (c *Cache) persist(cachePath string, body []byte) {
	if err := os.MkdirAll(filepath.Dir(cachePath), helpers.DirMod); err != nil {
		c.out.Debugf("unable to create cache directory for %s: %v", cachePath, err)
		return
	}
	if err := os.WriteFile(cachePath, body, helpers.FileMod); err != nil {
		c.out.Debugf("unable to persist %s: %v", cachePath, err)
	}
}

// decodeSHA1 decodes a hex sha1, returning nil for the empty string.
func decodeSHA1(hash string) ([]byte, error) {
	if hash == "" {
		return nil, nil
	}
	decoded, err := hex.DecodeString(hash)
	if err != nil || len(decoded) != sha1.Size {
		return nil, fmt.Errorf("%w: %q", helpers.ErrInvalidHash, hash)
	}
	return decoded, nil
}

func sha1Matches(data, expected []byte) bool {
	actual := sha1.Sum(data) //nolint:gosec // upstream metadata is addressed by sha1.
	return string(actual[:]) == string(expected)
}

// HTTPStatusError describes a non-200 HTTP response.
type HTTPStatusError struct {
	URL    string
	Status string
	Code   int
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("failed to fetch metadata: %s (%s)", e.Status, e.URL)
	}
	return "failed to fetch metadata: " + e.Status
}
