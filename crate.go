package chartsync

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// Crate is a read-only view of a Cargo.toml.
// It is the source of truth for the application version and is never written.
type Crate struct {
	Name    string
	Version *semver.Version
}

type cargoManifest struct {
	Package *struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// LoadCrate reads the Cargo.toml at path and returns the package name and
// parsed package version.
// A missing [package] table, a missing name or version field,
// or a version string that is not strict semver is an error.
func LoadCrate(path string) (Crate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Crate{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Crate{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.Package == nil || m.Package.Name == "" {
		return Crate{}, fmt.Errorf("%s: no package name", path)
	}
	if m.Package.Version == "" {
		return Crate{}, fmt.Errorf("%s: package %s declares no version", path, m.Package.Name)
	}

	v, err := semver.StrictNewVersion(m.Package.Version)
	if err != nil {
		return Crate{}, fmt.Errorf("parsing version %q of package %s: %w", m.Package.Version, m.Package.Name, err)
	}

	return Crate{Name: m.Package.Name, Version: v}, nil
}
