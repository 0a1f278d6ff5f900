package helpers

import (
	"path/filepath"
	"strings"
)

// IsSingleSegment reports whether value names exactly one normal path
// component, with no separators, parent references, or absolute prefixes.
// Used for identifiers that become directory names (platform keys, java
// components, instance names, content hashes).
func IsSingleSegment(value string) bool {
	if value == "" || value == "." || value == ".." {
		return false
	}
	if strings.ContainsRune(value, '/') || strings.ContainsRune(value, '\\') {
		return false
	}
	if filepath.IsAbs(value) || filepath.VolumeName(value) != "" {
		return false
	}
	return true
}

// IsNormalRelPath reports whether a manifest-provided relative path is safe
// to join under a destination root: relative, and free of "." and ".."
// components. Violating entries are skipped by callers, never joined.
func IsNormalRelPath(path string) bool {
	if path == "" {
		return false
	}
	if filepath.IsAbs(path) || filepath.VolumeName(path) != "" {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
