package payroll

// =============================================================================
// GOSI CONTRIBUTION PROFILES
// =============================================================================

// GosiCap is the ceiling on the contributory wage (basic + housing), in SAR.
const GosiCap = 45000.0

type ProfileKey string

const (
	ProfileSaudiStandard ProfileKey = "saudi-standard" // 10% employee / 12% employer
	ProfileSaudiLegacy   ProfileKey = "saudi-legacy"   // 9.75% / 11.75%
	ProfileNonSaudi      ProfileKey = "non-saudi"      // 0% / 2% (occupational hazards only)
	ProfileCustom        ProfileKey = "custom"         // caller-supplied
)

// Rates are contribution percentages of the contributory wage.
type Rates struct {
	EmployeePct float64
	EmployerPct float64
}

// profiles is read-only after package init. Lookups return copies.
var profiles = map[ProfileKey]Rates{
	ProfileSaudiStandard: {EmployeePct: 10, EmployerPct: 12},
	ProfileSaudiLegacy:   {EmployeePct: 9.75, EmployerPct: 11.75},
	ProfileNonSaudi:      {EmployeePct: 0, EmployerPct: 2},
}

// Profiles lists the named profiles in a stable order.
func Profiles() []ProfileKey {
	return []ProfileKey{ProfileSaudiStandard, ProfileSaudiLegacy, ProfileNonSaudi, ProfileCustom}
}

// KnownProfile reports whether key names a profile.
func KnownProfile(key ProfileKey) bool {
	if key == ProfileCustom {
		return true
	}
	_, ok := profiles[key]
	return ok
}

// GetGosiRates resolves a profile. The custom profile needs both percentages
// from the caller; if either is missing both rates are 0. Unknown keys
// resolve to zero rates.
func GetGosiRates(key ProfileKey, customEmployeePct, customEmployerPct *float64) Rates {
	if key == ProfileCustom {
		if customEmployeePct == nil || customEmployerPct == nil {
			return Rates{}
		}
		return Rates{EmployeePct: *customEmployeePct, EmployerPct: *customEmployerPct}
	}
	return profiles[key]
}

// CalcContributoryWage is min(basic+housing, GosiCap). Transport and other
// allowances never enter the contributory wage.
func CalcContributoryWage(basic, housing float64) float64 {
	w := basic + housing
	if w > GosiCap {
		return GosiCap
	}
	return w
}
