package content

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // test data is addressed by sha1.
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/pgzip"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/progress"
)

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

func plainTask(path string, body []byte, url string) Task {
	return Task{
		Path:   path,
		SHA1:   sha1Hex(body),
		Size:   int64(len(body)),
		Source: Source{URL: url, Size: int64(len(body))},
	}
}

func TestProvisionSkipsVerifiedLocalFile(t *testing.T) {
	t.Parallel()
	body := []byte("already here")
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "must not be called", http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := &Fetcher{Client: server.Client()}
	tracker := progress.NewTracker("Verifying", nil)
	downloaded := false
	err := fetcher.Provision(t.Context(), []Task{plainTask(path, body, server.URL)}, 8, tracker, func() { downloaded = true })
	if err != nil {
		t.Fatalf("provision error: %v", err)
	}
	if downloaded {
		t.Fatalf("expected no network transfer")
	}
	done, total := tracker.Progress()
	if done != int64(len(body)) || total != int64(len(body)) {
		t.Fatalf("unexpected progress: %d/%d", done, total)
	}
}

func TestProvisionRedownloadsMismatchedFile(t *testing.T) {
	t.Parallel()
	body := []byte("the right content")
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if err := os.WriteFile(path, []byte("corrupted"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	defer server.Close()

	fetcher := &Fetcher{Client: server.Client()}
	downloaded := false
	err := fetcher.Provision(t.Context(), []Task{plainTask(path, body, server.URL)}, 8, nil, func() { downloaded = true })
	if err != nil {
		t.Fatalf("provision error: %v", err)
	}
	if !downloaded {
		t.Fatalf("expected a network transfer")
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != string(body) {
		t.Fatalf("unexpected file content: %q (%v)", got, err)
	}
}

func TestProvisionMixedScenario(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bodies := [][]byte{[]byte("object one"), []byte("object two!"), []byte("object three")}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i, body := range bodies {
			if r.URL.Path == fmt.Sprintf("/%d", i) {
				_, _ = w.Write(body)
				return
			}
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	var tasks []Task
	var want int64
	for i, body := range bodies {
		path := filepath.Join(dir, fmt.Sprintf("obj%d", i))
		tasks = append(tasks, plainTask(path, body, fmt.Sprintf("%s/%d", server.URL, i)))
		want += int64(len(body))
	}
	// obj0 correct on disk, obj1 corrupted, obj2 absent.
	if err := os.WriteFile(tasks[0].Path, bodies[0], 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(tasks[1].Path, []byte("bad"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fetcher := &Fetcher{Client: server.Client()}
	tracker := progress.NewTracker("Assets", nil)
	if err := fetcher.Provision(t.Context(), tasks, 8, tracker, nil); err != nil {
		t.Fatalf("provision error: %v", err)
	}

	for i, task := range tasks {
		got, err := os.ReadFile(task.Path)
		if err != nil || sha1Hex(got) != task.SHA1 {
			t.Fatalf("object %d not provisioned correctly (%v)", i, err)
		}
	}
	done, total := tracker.Progress()
	if done != want || total != want {
		t.Fatalf("expected progress %d/%d, got %d/%d", want, want, done, total)
	}
}

func TestProvisionBoundsConcurrency(t *testing.T) {
	t.Parallel()
	const limit = 8
	var inFlight, peak atomic.Int64
	body := []byte("payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		now := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			old := peak.Load()
			if now <= old || peak.CompareAndSwap(old, now) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		_, _ = w.Write(body)
	}))
	defer server.Close()

	dir := t.TempDir()
	var tasks []Task
	for i := range 20 {
		tasks = append(tasks, plainTask(filepath.Join(dir, fmt.Sprintf("f%d", i)), body, server.URL))
	}

	fetcher := &Fetcher{Client: server.Client()}
	if err := fetcher.Provision(t.Context(), tasks, limit, nil, nil); err != nil {
		t.Fatalf("provision error: %v", err)
	}
	if got := peak.Load(); got > limit {
		t.Fatalf("expected at most %d transfers in flight, saw %d", limit, got)
	}
}

func TestProvisionTransferSizeMismatch(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("short"))
	}))
	defer server.Close()

	task := Task{
		Path:   filepath.Join(t.TempDir(), "file"),
		SHA1:   sha1Hex([]byte("expected content")),
		Size:   16,
		Source: Source{URL: server.URL, Size: 16},
	}
	fetcher := &Fetcher{Client: server.Client()}
	err := fetcher.Provision(t.Context(), []Task{task}, 8, nil, nil)
	if !errors.Is(err, helpers.ErrTransferSizeMismatch) {
		t.Fatalf("expected ErrTransferSizeMismatch, got %v", err)
	}
}

func TestProvisionGzipSource(t *testing.T) {
	t.Parallel()
	raw := []byte("this body travels gzip-compressed over the wire")
	var buf bytes.Buffer
	w := pgzip.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	compressed := buf.Bytes()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(compressed)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "file")
	task := Task{
		Path: path,
		SHA1: sha1Hex(raw),
		Size: int64(len(raw)),
		Source: Source{
			URL:         server.URL,
			Size:        int64(len(compressed)),
			Compression: CompressionGzip,
		},
	}
	tracker := progress.NewTracker("Runtime", nil)
	fetcher := &Fetcher{Client: server.Client()}
	if err := fetcher.Provision(t.Context(), []Task{task}, 8, tracker, nil); err != nil {
		t.Fatalf("provision error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != string(raw) {
		t.Fatalf("unexpected content: %q (%v)", got, err)
	}
	// Progress counts the logical size, not the transfer size.
	done, _ := tracker.Progress()
	if done != int64(len(raw)) {
		t.Fatalf("expected progress %d, got %d", len(raw), done)
	}
}

func TestProvisionSetsExecutableBit(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("no executable bit on windows")
	}
	body := []byte("#!/bin/sh\n")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "bin", "java")
	task := plainTask(path, body, server.URL)
	task.Executable = true

	fetcher := &Fetcher{Client: server.Client()}
	if err := fetcher.Provision(t.Context(), []Task{task}, 8, nil, nil); err != nil {
		t.Fatalf("provision error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Fatalf("expected executable bit, got %v", info.Mode())
	}
}

func TestApplySymlinksStaysInsideRoot(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("no symlinks on windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "bin"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "bin", "java"), []byte("x"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(outside, "secret"), []byte("y"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ApplySymlinks(root, []Symlink{
		{Path: filepath.Join(root, "java-link"), Target: "bin/java"},
		{Path: filepath.Join(root, "escape"), Target: filepath.Join("..", filepath.Base(outside), "secret")},
	})

	if _, err := os.Lstat(filepath.Join(root, "java-link")); err != nil {
		t.Fatalf("expected in-root symlink to exist: %v", err)
	}
	if _, err := os.Lstat(filepath.Join(root, "escape")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected escaping symlink to be skipped")
	}
}
