package model

// Impact represents the severity of an accessibility violation as reported
// by the rule engine. The scale is a closed four-level enum; rule engines
// never report anything outside it, and unknown strings are classified as
// minor rather than inventing a new level.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Impact int

const (
	// ImpactMinor indicates cosmetic problems with little practical effect
	// on assistive technology users.
	ImpactMinor Impact = iota

	// ImpactModerate indicates problems that degrade the experience for
	// some users but leave content reachable.
	ImpactModerate

	// ImpactSerious indicates problems that make content significantly
	// harder to use with assistive technology.
	ImpactSerious

	// ImpactCritical indicates problems that block access to content
	// entirely. A single critical violation fails its page, and any
	// critical violation in a session fails the session-level status.
	ImpactCritical
)

// String returns a human-readable representation of the impact level.
func (i Impact) String() string {
	switch i {
	case ImpactCritical:
		return "critical"
	case ImpactSerious:
		return "serious"
	case ImpactModerate:
		return "moderate"
	case ImpactMinor:
		return "minor"
	default:
		return "unknown"
	}
}

// ParseImpact maps a rule engine impact string to an Impact level.
// Unknown or empty strings classify as ImpactMinor so that a misbehaving
// rule engine can degrade a report but never fail a page by accident.
func ParseImpact(s string) Impact {
	switch s {
	case "critical":
		return ImpactCritical
	case "serious":
		return ImpactSerious
	case "moderate":
		return ImpactModerate
	default:
		return ImpactMinor
	}
}
