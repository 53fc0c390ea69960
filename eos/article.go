package eos

// =============================================================================
// SEPARATION CAUSE -> ARTICLE
// =============================================================================

// Cause is why the employment ended.
type Cause string

const (
	CauseTermination  Cause = "termination"
	CauseDeath        Cause = "death"
	CauseDisability   Cause = "disability"
	CauseRetirement   Cause = "retirement"
	CauseContractEnd  Cause = "contract_end"
	CauseForceMajeure Cause = "force_majeure"
	CauseResignation  Cause = "resignation"
)

// Article is the Saudi Labor Law article governing the award.
type Article int

const (
	Article84 Article = 84 // employer-initiated or involuntary: full award
	Article85 Article = 85 // resignation: tenure-tiered award
)

// ArticleFor maps a cause to its article. Only resignation falls under
// Article 85; every other cause, known or not, is Article 84.
func ArticleFor(c Cause) Article {
	if c == CauseResignation {
		return Article85
	}
	return Article84
}

// Causes lists the supported causes.
func Causes() []Cause {
	return []Cause{
		CauseTermination, CauseDeath, CauseDisability, CauseRetirement,
		CauseContractEnd, CauseForceMajeure, CauseResignation,
	}
}

// =============================================================================
// FACTOR TIERS
// =============================================================================

// Tier applies Factor from FromYears of service onward.
type Tier struct {
	FromYears float64
	Factor    float64
}

// resignationTiers must stay sorted by FromYears.
var resignationTiers = [...]Tier{
	{FromYears: 0, Factor: 0},
	{FromYears: 2, Factor: 1.0 / 3},
	{FromYears: 5, Factor: 2.0 / 3},
	{FromYears: 10, Factor: 1},
}

// ResignationTiers returns a copy of the Article 85 table.
func ResignationTiers() []Tier {
	return append([]Tier(nil), resignationTiers[:]...)
}

// FactorFor returns the share of the raw award that is paid.
func FactorFor(a Article, tenureYears float64) float64 {
	if a != Article85 {
		return 1
	}
	var factor float64
	for _, tier := range resignationTiers {
		if tenureYears >= tier.FromYears {
			factor = tier.Factor
		}
	}
	return factor
}
