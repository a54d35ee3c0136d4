package main

import (
	"flag"
	"fmt"
)

type options struct {
	chartDir, cargoToml        string
	dryRun, quiet, commit, tag bool
}

func parseArgs(args []string) (opts options, err error) {
	fs := flag.NewFlagSet("chartsync", flag.ContinueOnError)
	fs.StringVar(&opts.chartDir, "chart", "", "directory the chart is in; defaults to charts/<package name from the Cargo.toml>")
	fs.StringVar(&opts.cargoToml, "cargo-toml", "Cargo.toml", "path to the Cargo.toml to read the app version from")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "don't modify the chart, only show what would happen")
	fs.BoolVar(&opts.quiet, "q", false, "quiet mode: print no progress messages")
	fs.BoolVar(&opts.commit, "commit", false, "commit the updated Chart.yaml to the enclosing Git repository")
	fs.BoolVar(&opts.tag, "tag", false, "tag the release commit as <chart>-<version>")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.tag && !opts.commit {
		return opts, fmt.Errorf("-tag requires -commit")
	}
	if opts.dryRun && opts.commit {
		return opts, fmt.Errorf("do not specify -commit with -dry-run")
	}

	return opts, nil
}
