// Command chartsync keeps a Helm chart's Chart.yaml in sync with the version
// declared in a Rust crate's Cargo.toml.
//
// Usage:
//
//	chartsync [-chart DIR] [-cargo-toml PATH] [-q] [-dry-run | -commit [-tag]]
//
// The crate's package.version becomes the chart's appVersion,
// and the chart's own version is bumped by the class of the change:
// a new crate major version bumps the chart's major version,
// a new minor version its minor version,
// and a new patch version its patchlevel.
//
// With `-chart DIR`,
// the chart is read from DIR instead of charts/<package name>.
//
// With `-dry-run`,
// chartsync reports the versions it would write and leaves the chart alone.
//
// With `-commit`,
// a successful update is committed to the enclosing Git repository,
// and with `-tag` the commit is additionally tagged <chart>-<version>.
//
// A crate version that is a prerelease is never propagated into the chart.
// A chart whose appVersion is ahead of the crate version makes chartsync fail:
// that state has to be resolved by hand.
package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/mod/semver"

	"github.com/spacebird-dev/chartsync"
	"github.com/spacebird-dev/chartsync/internal/gitrelease"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	s := &chartsync.Syncer{
		CargoPath: opts.cargoToml,
		ChartDir:  opts.chartDir,
		DryRun:    opts.dryRun,
		Out:       out,
	}
	if opts.quiet {
		s.Out = io.Discard
	}

	report, err := s.Run()
	if err != nil {
		return err
	}
	if !report.Written || !opts.commit {
		return nil
	}

	return release(report, opts, out)
}

func release(report chartsync.Report, opts options, out io.Writer) error {
	var (
		name    = report.Chart.Name
		version = report.NewVersion.String()
	)

	hash, err := gitrelease.Commit(".", report.Chart.Path, fmt.Sprintf("chart: release %s-%s", name, version))
	if err != nil {
		return err
	}
	if !opts.quiet {
		fmt.Fprintf(out, "Committed %s as %s\n", report.Chart.Path, hash)
	}

	if !opts.tag {
		return nil
	}

	last, err := gitrelease.LatestTag(".", name)
	if err != nil {
		return err
	}
	if last != "" && semver.Compare("v"+version, "v"+last) <= 0 { // version <= last
		fmt.Fprintf(os.Stderr, "Warning: new chart version %s does not exceed the last released tag %s-%s\n", version, name, last)
	}

	tag, err := gitrelease.Tag(".", name, version, hash)
	if err != nil {
		return err
	}
	if !opts.quiet {
		fmt.Fprintf(out, "Tagged %s\n", tag)
	}

	return nil
}
