package chartsync

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartYAML = `apiVersion: v2
name: clouddns-nat-helper
description: A Helm chart for the clouddns-nat-helper
# The chart's own release counter.
version: 0.4.1
appVersion: 1.0.0
keywords:
  - dns
  - nat
maintainers:
  - name: spacebird
`

func writeChart(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ChartFilename), []byte(contents), 0644))
	return dir
}

func TestLoadChart(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		dir := writeChart(t, chartYAML)
		chart, err := LoadChart(dir)
		require.NoError(t, err)
		assert.Equal(t, "clouddns-nat-helper", chart.Name)
		assert.Equal(t, "0.4.1", chart.Version.String())
		assert.Equal(t, "1.0.0", chart.AppVersion.String())
		assert.Equal(t, filepath.Join(dir, ChartFilename), chart.Path)
	})

	t.Run("name falls back to the directory", func(t *testing.T) {
		dir := writeChart(t, "version: 0.1.0\nappVersion: 0.1.0\n")
		chart, err := LoadChart(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Base(dir), chart.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadChart(t.TempDir())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing version", func(t *testing.T) {
		dir := writeChart(t, "name: demo\nappVersion: 1.0.0\n")
		_, err := LoadChart(dir)
		assert.ErrorContains(t, err, "no version field")
	})

	t.Run("missing appVersion", func(t *testing.T) {
		dir := writeChart(t, "name: demo\nversion: 0.1.0\n")
		_, err := LoadChart(dir)
		assert.ErrorContains(t, err, "no appVersion field")
	})

	t.Run("malformed version", func(t *testing.T) {
		dir := writeChart(t, "name: demo\nversion: latest\nappVersion: 1.0.0\n")
		_, err := LoadChart(dir)
		assert.ErrorContains(t, err, `parsing version "latest"`)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := writeChart(t, "name: [demo\n")
		_, err := LoadChart(dir)
		require.Error(t, err)
	})
}

func TestChartSaveRewritesOnlyVersions(t *testing.T) {
	dir := writeChart(t, chartYAML)
	chart, err := LoadChart(dir)
	require.NoError(t, err)

	chart.SetVersions(semver.MustParse("1.0.0"), semver.MustParse("2.0.0"))
	require.NoError(t, chart.Save())

	data, err := os.ReadFile(chart.Path)
	require.NoError(t, err)
	saved := string(data)

	assert.Contains(t, saved, "version: 1.0.0\n")
	assert.Contains(t, saved, "appVersion: 2.0.0\n")
	assert.NotContains(t, saved, "0.4.1")

	// Everything else survives, including comments and key order.
	assert.Contains(t, saved, "# The chart's own release counter.")
	assert.Contains(t, saved, "description: A Helm chart for the clouddns-nat-helper")
	assert.Contains(t, saved, "keywords:\n  - dns\n  - nat\n")
	assert.Less(t, strings.Index(saved, "apiVersion"), strings.Index(saved, "name:"))
	assert.Less(t, strings.Index(saved, "version: 1.0.0"), strings.Index(saved, "appVersion: 2.0.0"))

	// A reload sees the new values.
	reloaded, err := LoadChart(dir)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reloaded.Version.String())
	assert.Equal(t, "2.0.0", reloaded.AppVersion.String())
}
