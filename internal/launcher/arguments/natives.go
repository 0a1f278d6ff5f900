package arguments

import (
	"crypto/sha1" //nolint:gosec // library artifacts are addressed by sha1.
	"encoding/hex"
	"fmt"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
)

// NativesDirName derives a stable per-version directory name by XOR
// folding the distinct sha1 hashes of every library artifact, main and
// classifier alike. XOR over a set is order independent, so any
// permutation of the library list names the same directory.
func NativesDirName(libraries []schema.Library) (string, error) {
	var fold [sha1.Size]byte
	seen := make(map[string]struct{})
	for _, library := range libraries {
		if artifact := library.Downloads.Artifact; artifact != nil {
			if err := foldArtifact(&fold, seen, artifact.SHA1); err != nil {
				return "", err
			}
		}
		for _, artifact := range library.Downloads.Classifiers {
			if err := foldArtifact(&fold, seen, artifact.SHA1); err != nil {
				return "", err
			}
		}
	}
	return hex.EncodeToString(fold[:]), nil
}

func foldArtifact(fold *[sha1.Size]byte, seen map[string]struct{}, hash string) error {
	if hash == "" {
		return nil
	}
	if _, ok := seen[hash]; ok {
		return nil
	}
	seen[hash] = struct{}{}
	decoded, err := hex.DecodeString(hash)
	if err != nil || len(decoded) != sha1.Size {
		return fmt.Errorf("%w: library artifact sha1 %q", helpers.ErrInvalidHash, hash)
	}
	for i, b := range decoded {
		fold[i] ^= b
	}
	return nil
}
