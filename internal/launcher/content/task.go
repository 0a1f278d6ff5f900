// Package content is the bounded-concurrency download engine: it ensures
// a set of files exist on disk with verified hashes, fetching, verifying,
// decompressing, and writing whatever is missing or corrupt.
package content

// Compression identifies the codec a download source is wrapped in.
type Compression int

// Supported source codecs. Runtime manifests advertise lzma alternatives
// for most files; gzip covers mirrors that serve gzip-wrapped blobs.
const (
	CompressionNone Compression = iota
	CompressionLZMA
	CompressionGzip
)

// Source is one remote location for a task's bytes. Size is the expected
// transfer size, which differs from the task size when compressed.
type Source struct {
	URL         string
	Size        int64
	Compression Compression
}

// Task is one file's fetch/verify/decompress/write unit of work. Size
// and SHA1 always describe the final (decompressed) content.
type Task struct {
	Path       string
	SHA1       string
	Size       int64
	Source     Source
	Executable bool
}

// Symlink is a deferred link from a runtime manifest. Target is the
// manifest-provided link-relative path, applied only after every file
// task succeeded and only when it resolves inside the destination root.
type Symlink struct {
	Path   string
	Target string
}
