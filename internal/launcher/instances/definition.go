package instances

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
)

// Definition is the YAML shape of an instance file:
//
//	name: survival
//	version: 1.21.4
//	loader: vanilla
type Definition struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Loader  string `yaml:"loader,omitempty"`
}

// LoadDefinition reads and validates an instance definition file.
func LoadDefinition(path string) (Definition, error) {
	//nolint:gosec // path is a user-provided definition file.
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}
	return ParseDefinition(data)
}

// ParseDefinition parses instance definition data.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, err
	}
	def.Name = strings.TrimSpace(def.Name)
	def.Version = strings.TrimSpace(def.Version)
	def.Loader = strings.TrimSpace(def.Loader)
	if !helpers.IsSingleSegment(def.Name) {
		return Definition{}, fmt.Errorf("%w: %q", helpers.ErrInvalidInstanceName, def.Name)
	}
	if def.Version == "" {
		return Definition{}, fmt.Errorf("%w: definition %q has no version", helpers.ErrVersionNotFound, def.Name)
	}
	return def, nil
}

// Record converts a definition into a storable instance record.
func (d Definition) Record() Record {
	return Record{Name: d.Name, Version: d.Version, Loader: d.Loader}
}
