package manifest

// CurrentEditionConstant is the newest Rust edition; projects on it are reported as current.
const CurrentEditionConstant = "2024"

// ComplianceTier classifies the release-profile hygiene of a project.
type ComplianceTier int

// ComplianceNotApplicable marks library-only projects, which are not held to profile requirements.
const (
	ComplianceNotApplicable ComplianceTier = iota
	ComplianceCompliant
	ComplianceProfileMissing
	ComplianceProfileMismatched
)

// IsNonCompliant reports whether the tier is one of the non-compliant variants.
func (tier ComplianceTier) IsNonCompliant() bool {
	return tier == ComplianceProfileMissing || tier == ComplianceProfileMismatched
}

func (tier ComplianceTier) String() string {
	switch tier {
	case ComplianceCompliant:
		return "compliant"
	case ComplianceProfileMissing:
		return "profile_missing"
	case ComplianceProfileMismatched:
		return "profile_mismatched"
	default:
		return "not_applicable"
	}
}

// EditionTier classifies the declared edition against CurrentEditionConstant.
type EditionTier int

const (
	EditionUnspecified EditionTier = iota
	EditionCurrent
	EditionOutdated
)

func (tier EditionTier) String() string {
	switch tier {
	case EditionCurrent:
		return "current"
	case EditionOutdated:
		return "outdated"
	default:
		return "unspecified"
	}
}
