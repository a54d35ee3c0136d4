// Package chartsync keeps a Helm chart's declared versions in sync
// with the version recorded in a Rust crate's Cargo.toml.
// It can tell whether the crate's version change requires a patchlevel bump,
// or a minor bump,
// or a major bump
// of the chart's own release counter,
// according to semver rules
// (https://semver.org/).
package chartsync
