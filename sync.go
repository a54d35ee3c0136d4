package chartsync

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// DefaultChartRoot is the directory charts are looked up under when no
// explicit chart directory is given.
const DefaultChartRoot = "charts"

// Syncer holds the configuration for one synchronization run.
// Build one value at startup and call Run on it.
type Syncer struct {
	// CargoPath is the Cargo.toml to read the app version from.
	CargoPath string

	// ChartDir is the chart directory.
	// When empty it is derived as DefaultChartRoot/<crate name>.
	ChartDir string

	// DryRun computes and reports the new versions without writing anything.
	DryRun bool

	// Out receives progress messages. Nil silences them.
	Out io.Writer
}

// Report describes what a run decided and did.
type Report struct {
	Decision      Decision
	Crate         Crate
	Chart         *Chart
	OldVersion    *semver.Version
	NewVersion    *semver.Version
	NewAppVersion *semver.Version
	Written       bool
}

// Run reads the crate and chart manifests, decides whether the chart needs a
// version bump, and persists the result unless DryRun is set.
// A no-op (up-to-date chart, prerelease crate version, or an indeterminate
// delta) is not an error; the Report's Decision says what happened.
func (s *Syncer) Run() (Report, error) {
	out := s.Out
	if out == nil {
		out = io.Discard
	}

	crate, err := LoadCrate(s.CargoPath)
	if err != nil {
		return Report{}, err
	}
	fmt.Fprintf(out, "Read crate version from %s: %s\n", s.CargoPath, crate.Version)

	chartDir := s.chartDir(crate.Name)
	if s.ChartDir == "" {
		fmt.Fprintf(out, "Derived chart directory from crate name: %s\n", chartDir)
	}

	chart, err := LoadChart(chartDir)
	if err != nil {
		return Report{}, err
	}
	fmt.Fprintf(out, "Read chart version: %s\n", chart.Version)
	fmt.Fprintf(out, "Read chart appVersion: %s\n", chart.AppVersion)

	report := Report{Crate: crate, Chart: chart, OldVersion: chart.Version}

	decision, err := Decide(crate.Version, chart.AppVersion)
	if err != nil {
		return report, err
	}
	report.Decision = decision

	if decision.Bump == None {
		fmt.Fprintln(out, decision.Why)
		return report, nil
	}

	report.NewVersion = decision.Bump.Apply(chart.Version)
	report.NewAppVersion = crate.Version
	fmt.Fprintf(out, "%s bump: new chart version %s, new appVersion %s\n", decision.Bump, report.NewVersion, report.NewAppVersion)

	if s.DryRun {
		fmt.Fprintln(out, "Dry run, leaving the chart untouched")
		return report, nil
	}

	chart.SetVersions(report.NewVersion, report.NewAppVersion)
	if err := chart.Save(); err != nil {
		return report, err
	}
	report.Written = true
	fmt.Fprintf(out, "Saved %s\n", chart.Path)

	return report, nil
}

func (s *Syncer) chartDir(crateName string) string {
	if s.ChartDir != "" {
		return s.ChartDir
	}
	return filepath.Join(DefaultChartRoot, crateName)
}
