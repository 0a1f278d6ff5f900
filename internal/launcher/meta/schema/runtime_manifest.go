package schema

// Runtime manifest entry kinds.
const (
	RuntimeEntryDirectory = "directory"
	RuntimeEntryFile      = "file"
	RuntimeEntryLink      = "link"
)

// RuntimeManifest maps component-relative paths to their entries.
type RuntimeManifest struct {
	Files map[string]RuntimeEntry `json:"files"`
}

// RuntimeEntry is one manifest entry: a directory, a downloadable file,
// or a symlink. Type selects which of the remaining fields apply.
type RuntimeEntry struct {
	Type       string            `json:"type"`
	Executable bool              `json:"executable,omitempty"`
	Downloads  *RuntimeDownloads `json:"downloads,omitempty"`
	Target     string            `json:"target,omitempty"`
}

// RuntimeDownloads carries the raw download and its optional
// lzma-compressed alternative.
type RuntimeDownloads struct {
	LZMA *DownloadLink `json:"lzma,omitempty"`
	Raw  DownloadLink  `json:"raw"`
}
