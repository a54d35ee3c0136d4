package chartsync

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrAheadOfSource is returned by Decide when the chart's appVersion is newer
// than the crate version it is supposed to mirror.
// That state cannot arise from normal use and has to be resolved by hand,
// so it is never auto-corrected.
var ErrAheadOfSource = errors.New("chart appVersion is ahead of the crate version, resolve manually")

// Decision is the outcome of comparing the crate version against the chart's
// recorded appVersion.
// Bump tells how the chart's own version must change;
// when Bump is None the chart is left alone and Why says why.
type Decision struct {
	Bump Bump
	Why  string
}

// Decide compares the version declared by the crate to the appVersion
// currently recorded in the chart and reports the required chart-version bump.
//
// A prerelease crate version never produces an update:
// prereleases are not propagated into published charts.
//
// When the two versions differ but no single numeric field of the appVersion
// is behind the crate version
// (for example when only the prerelease labels differ),
// the delta is ambiguous and Decide reports None with a diagnostic,
// leaving the chart untouched.
func Decide(crate, app *semver.Version) (Decision, error) {
	if app.Equal(crate) {
		return Decision{Why: fmt.Sprintf("appVersion %s is up to date", app)}, nil
	}
	if crate.Prerelease() != "" {
		return Decision{Why: fmt.Sprintf("crate version %s is a prerelease, not updating the chart", crate)}, nil
	}
	if app.GreaterThan(crate) {
		return Decision{}, fmt.Errorf("appVersion %s vs crate version %s: %w", app, crate, ErrAheadOfSource)
	}

	switch {
	case app.Major() < crate.Major():
		return Decision{Bump: Major, Why: fmt.Sprintf("crate major version %d is ahead of appVersion major %d", crate.Major(), app.Major())}, nil
	case app.Minor() < crate.Minor():
		return Decision{Bump: Minor, Why: fmt.Sprintf("crate minor version %d is ahead of appVersion minor %d", crate.Minor(), app.Minor())}, nil
	case app.Patch() < crate.Patch():
		return Decision{Bump: Patchlevel, Why: fmt.Sprintf("crate patch version %d is ahead of appVersion patch %d", crate.Patch(), app.Patch())}, nil
	}

	return Decision{Why: fmt.Sprintf("cannot determine the version delta between crate version %s and appVersion %s", crate, app)}, nil
}
