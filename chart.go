package chartsync

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// ChartFilename is the descriptor file inside a chart directory.
const ChartFilename = "Chart.yaml"

// Chart is a loaded Chart.yaml.
// It keeps the raw YAML document alongside the parsed version fields,
// so that Save rewrites only the version and appVersion scalars and leaves
// every other field, the key order, and any comments intact.
type Chart struct {
	Path       string
	Name       string
	Version    *semver.Version
	AppVersion *semver.Version

	doc yaml.Node
}

// LoadChart reads the Chart.yaml inside dir.
// The version and appVersion fields are required and must be strict semver;
// the name field falls back to the directory name when absent.
func LoadChart(dir string) (*Chart, error) {
	path := filepath.Join(dir, ChartFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	c := &Chart{Path: path}
	if err := yaml.Unmarshal(data, &c.doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if n := c.lookup("name"); n != nil {
		c.Name = n.Value
	} else {
		c.Name = filepath.Base(dir)
	}

	c.Version, err = c.versionField("version")
	if err != nil {
		return nil, err
	}
	c.AppVersion, err = c.versionField("appVersion")
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Chart) versionField(key string) (*semver.Version, error) {
	n := c.lookup(key)
	if n == nil {
		return nil, fmt.Errorf("%s: no %s field", c.Path, key)
	}
	v, err := semver.StrictNewVersion(n.Value)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q in %s: %w", key, n.Value, c.Path, err)
	}
	return v, nil
}

// lookup returns the value node for key in the top-level mapping, or nil.
func (c *Chart) lookup(key string) *yaml.Node {
	if c.doc.Kind != yaml.DocumentNode || len(c.doc.Content) == 0 {
		return nil
	}
	m := c.doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// SetVersions replaces the chart's version and appVersion,
// both in the parsed fields and in the underlying document.
func (c *Chart) SetVersions(version, appVersion *semver.Version) {
	c.Version = version
	c.AppVersion = appVersion
	c.lookup("version").SetString(version.String())
	c.lookup("appVersion").SetString(appVersion.String())
}

// Save writes the document back to the path it was loaded from.
func (c *Chart) Save() error {
	f, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", c.Path, err)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&c.doc); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", c.Path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", c.Path, err)
	}
	return f.Close()
}
