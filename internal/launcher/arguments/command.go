package arguments

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
)

// Build assembles the process argument vector for a version: JVM
// fragments, the main class, then game fragments, preserving the
// metadata's listed order. Each surviving template becomes exactly one
// argument.
func Build(version *schema.Version, ctx *LaunchContext) ([]string, error) {
	if version.Arguments == nil {
		return nil, fmt.Errorf("%w: version %s", helpers.ErrLegacyArgumentsUnsupported, version.ID)
	}
	args, err := appendFragments(nil, version.Arguments.JVM, ctx)
	if err != nil {
		return nil, err
	}
	args = append(args, version.MainClass)
	return appendFragments(args, version.Arguments.Game, ctx)
}

// appendFragments expands the fragments whose rules allow them. A
// fragment without rules always survives.
func appendFragments(args []string, fragments []schema.Argument, ctx *LaunchContext) ([]string, error) {
	for _, fragment := range fragments {
		if len(fragment.Rules) > 0 && !EvaluateRules(fragment.Rules, ctx) {
			continue
		}
		for _, template := range fragment.Value {
			token, err := Expand(template, ctx)
			if err != nil {
				return nil, err
			}
			args = append(args, token)
		}
	}
	return args, nil
}

// Classpath joins every rule-allowed library artifact path with the
// client jar, using the platform's path list separator.
func Classpath(librariesDir, clientJar string, version *schema.Version, ctx *LaunchContext) (string, error) {
	var parts []string
	for _, library := range version.Libraries {
		if len(library.Rules) > 0 && !EvaluateRules(library.Rules, ctx) {
			continue
		}
		artifact := library.Downloads.Artifact
		if artifact == nil {
			continue
		}
		if !helpers.IsNormalRelPath(artifact.Path) {
			return "", fmt.Errorf("%w: library path %q", helpers.ErrInvalidPath, artifact.Path)
		}
		parts = append(parts, filepath.Join(librariesDir, filepath.FromSlash(artifact.Path)))
	}
	parts = append(parts, clientJar)
	return strings.Join(parts, string(os.PathListSeparator)), nil
}
