package runtime

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // runtime files are addressed by sha1.
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"testing"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/content"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

// routeTransport serves canned bodies by exact URL, 404 otherwise.
type routeTransport map[string][]byte

func (rt routeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body, ok := rt[req.URL.String()]
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

// testBackend wires a catalog with one jre-legacy build for the current
// platform, its manifest, and the files the manifest references.
func testBackend(t *testing.T, manifest schema.RuntimeManifest, files map[string][]byte) *http.Client {
	t.Helper()
	routes := routeTransport{}
	for url, body := range files {
		routes[url] = body
	}

	manifestBody := mustJSON(t, manifest)
	routes["https://test.invalid/manifest.json"] = manifestBody

	catalog := schema.JavaRuntimes{
		PlatformKey(): schema.RuntimePlatform{
			helpers.LegacyJavaComponent: []schema.RuntimeBuild{{
				Manifest: schema.DownloadLink{
					SHA1: sha1Hex(manifestBody),
					Size: int64(len(manifestBody)),
					URL:  "https://test.invalid/manifest.json",
				},
			}},
		},
	}
	routes[helpers.JavaRuntimesURL] = mustJSON(t, catalog)

	return &http.Client{Transport: routes}
}

func newProvisioner(t *testing.T, client *http.Client) *Provisioner {
	t.Helper()
	dir := t.TempDir()
	return &Provisioner{
		Cache:   meta.New(client, filepath.Join(dir, "meta"), nil, nil),
		Fetcher: &content.Fetcher{Client: client},
		Dir:     filepath.Join(dir, "runtime"),
	}
}

func TestPlatformKeyIsSingleSegment(t *testing.T) {
	t.Parallel()
	key := PlatformKey()
	if !helpers.IsSingleSegment(key) {
		t.Fatalf("platform key %q is not a single path segment", key)
	}
}

func TestProvisionMaterializesComponent(t *testing.T) {
	t.Parallel()
	java := []byte("#!/bin/sh\necho java\n")
	manifest := schema.RuntimeManifest{Files: map[string]schema.RuntimeEntry{
		"bin": {Type: schema.RuntimeEntryDirectory},
		"bin/java": {
			Type:       schema.RuntimeEntryFile,
			Executable: true,
			Downloads: &schema.RuntimeDownloads{Raw: schema.DownloadLink{
				SHA1: sha1Hex(java),
				Size: int64(len(java)),
				URL:  "https://test.invalid/java",
			}},
		},
		"../evil": {
			Type: schema.RuntimeEntryFile,
			Downloads: &schema.RuntimeDownloads{Raw: schema.DownloadLink{
				SHA1: sha1Hex([]byte("x")),
				Size: 1,
				URL:  "https://test.invalid/evil",
			}},
		},
		"legal": {Type: schema.RuntimeEntryLink, Target: "bin/java"},
	}}
	client := testBackend(t, manifest, map[string][]byte{
		"https://test.invalid/java": java,
	})
	p := newProvisioner(t, client)

	tracker := progress.NewTracker("Java runtime", nil)
	path, err := p.Provision(t.Context(), &schema.Version{}, tracker)
	if err != nil {
		t.Fatalf("provision error: %v", err)
	}

	componentDir := filepath.Join(p.Dir, helpers.LegacyJavaComponent, PlatformKey())
	if want := filepath.Join(componentDir, "bin", "java"); path != want {
		t.Fatalf("expected executable %q, got %q", want, path)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != string(java) {
		t.Fatalf("unexpected executable content: %q (%v)", got, err)
	}
	if !strings.HasPrefix(tracker.Title(), "Downloading") {
		t.Fatalf("expected fresh-install title, got %q", tracker.Title())
	}
	if _, err := os.Lstat(filepath.Join(p.Dir, helpers.LegacyJavaComponent, "evil")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected unsafe manifest path to be skipped")
	}
	if goruntime.GOOS != "windows" {
		if _, err := os.Lstat(filepath.Join(componentDir, "legal")); err != nil {
			t.Fatalf("expected symlink to exist: %v", err)
		}
	}

	// The component directory now exists, so a re-run verifies instead.
	verify := progress.NewTracker("Java runtime", nil)
	if _, err := p.Provision(t.Context(), &schema.Version{}, verify); err != nil {
		t.Fatalf("second provision error: %v", err)
	}
	if !strings.HasPrefix(verify.Title(), "Verifying integrity of") {
		t.Fatalf("expected verification title, got %q", verify.Title())
	}
}

func TestProvisionTitleFlipsOnRedownload(t *testing.T) {
	t.Parallel()
	java := []byte("#!/bin/sh\necho java\n")
	manifest := schema.RuntimeManifest{Files: map[string]schema.RuntimeEntry{
		"bin/java": {
			Type:       schema.RuntimeEntryFile,
			Executable: true,
			Downloads: &schema.RuntimeDownloads{Raw: schema.DownloadLink{
				SHA1: sha1Hex(java),
				Size: int64(len(java)),
				URL:  "https://test.invalid/java",
			}},
		},
	}}
	client := testBackend(t, manifest, map[string][]byte{
		"https://test.invalid/java": java,
	})
	p := newProvisioner(t, client)
	if _, err := p.Provision(t.Context(), &schema.Version{}, nil); err != nil {
		t.Fatalf("provision error: %v", err)
	}

	// A corrupted file in an existing component starts under the
	// verification title and flips once the redownload begins.
	componentDir := filepath.Join(p.Dir, helpers.LegacyJavaComponent, PlatformKey())
	if err := os.WriteFile(filepath.Join(componentDir, "bin", "java"), []byte("tampered"), 0o755); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}
	tracker := progress.NewTracker("Java runtime", nil)
	if _, err := p.Provision(t.Context(), &schema.Version{}, tracker); err != nil {
		t.Fatalf("second provision error: %v", err)
	}
	if want := "Downloading Java runtime " + helpers.LegacyJavaComponent; tracker.Title() != want {
		t.Fatalf("expected title %q, got %q", want, tracker.Title())
	}
}

func TestProvisionUnknownComponent(t *testing.T) {
	t.Parallel()
	client := testBackend(t, schema.RuntimeManifest{}, nil)
	p := newProvisioner(t, client)

	version := &schema.Version{JavaVersion: &schema.JavaVersion{Component: "no-such-component"}}
	_, err := p.Provision(t.Context(), version, nil)
	if !errors.Is(err, helpers.ErrUnknownComponent) {
		t.Fatalf("expected ErrUnknownComponent, got %v", err)
	}

	version = &schema.Version{JavaVersion: &schema.JavaVersion{Component: "a/b"}}
	_, err = p.Provision(t.Context(), version, nil)
	if !errors.Is(err, helpers.ErrUnknownComponent) {
		t.Fatalf("expected ErrUnknownComponent for traversal, got %v", err)
	}
}

func TestProvisionExecutableNotFound(t *testing.T) {
	t.Parallel()
	readme := []byte("no java here")
	manifest := schema.RuntimeManifest{Files: map[string]schema.RuntimeEntry{
		"README": {
			Type: schema.RuntimeEntryFile,
			Downloads: &schema.RuntimeDownloads{Raw: schema.DownloadLink{
				SHA1: sha1Hex(readme),
				Size: int64(len(readme)),
				URL:  "https://test.invalid/readme",
			}},
		},
	}}
	client := testBackend(t, manifest, map[string][]byte{
		"https://test.invalid/readme": readme,
	})
	p := newProvisioner(t, client)

	_, err := p.Provision(t.Context(), &schema.Version{}, nil)
	if !errors.Is(err, helpers.ErrExecutableNotFound) {
		t.Fatalf("expected ErrExecutableNotFound, got %v", err)
	}
}

func TestExecutablePathProbeOrder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, rel := range []string{"bin/java", "MinecraftJava.exe"} {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o755); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	path, err := ExecutablePath(dir)
	if err != nil {
		t.Fatalf("probe error: %v", err)
	}
	if want := filepath.Join(dir, "bin", "java"); path != want {
		t.Fatalf("expected %q to win the probe, got %q", want, path)
	}
}

func TestNewestBuildName(t *testing.T) {
	t.Parallel()
	builds := []schema.RuntimeBuild{
		{Version: schema.RuntimeVersion{Name: "17.0.3"}},
		{Version: schema.RuntimeVersion{Name: "17.0.8"}},
		{Version: schema.RuntimeVersion{Name: "17.0.1"}},
	}
	if got := newestBuildName(builds); got != "17.0.8" {
		t.Fatalf("expected 17.0.8, got %q", got)
	}
	builds = append(builds, schema.RuntimeBuild{Version: schema.RuntimeVersion{Name: "not-a-version"}})
	if got := newestBuildName(builds); got != "" {
		t.Fatalf(`expected "" for unparseable names, got %q`, got)
	}
}
