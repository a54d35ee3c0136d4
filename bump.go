package chartsync

import "github.com/Masterminds/semver/v3"

// Bump is the class of increment a chart version needs.
type Bump int

const (
	None Bump = iota
	Patchlevel
	Minor
	Major
)

func (b Bump) String() string {
	switch b {
	case None:
		return "None"
	case Patchlevel:
		return "Patchlevel"
	case Minor:
		return "Minor"
	case Major:
		return "Major"
	default:
		return "unknown Bump value"
	}
}

// Apply returns v with the field selected by b incremented,
// lower-order fields reset to zero,
// and any prerelease label or build metadata cleared.
// For None it returns v unchanged.
func (b Bump) Apply(v *semver.Version) *semver.Version {
	var w semver.Version
	switch b {
	case Patchlevel:
		w = v.IncPatch()
	case Minor:
		w = v.IncMinor()
	case Major:
		w = v.IncMajor()
	default:
		return v
	}
	return &w
}
