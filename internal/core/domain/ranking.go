package domain

// Known época labels, newest first. Épocas are named historical periods of
// the issuing court's jurisprudence and act as an authority proxy independent
// of the raw publication year.
const (
	EpocaDuodecima = "Duodécima Época"
	EpocaUndecima  = "Undécima Época"
	EpocaDecima    = "Décima Época"
	EpocaNovena    = "Novena Época"
	EpocaOctava    = "Octava Época"
)

// RecencyBracket assigns a multiplier to candidates published in or after
// MinYear. Brackets are evaluated in order; the first match wins.
type RecencyBracket struct {
	MinYear    int
	Multiplier float64
}

// EpocaWeight assigns a multiplier to an época label.
type EpocaWeight struct {
	Epoca      string
	Multiplier float64
}

// CutoffRule maps a legal-reform keyword found in the query to the year of
// the reform. Sources older than the cutoff are presumed superseded.
type CutoffRule struct {
	Keyword string
	Year    int
}

// RankingPolicy gathers every tunable of the scoring and re-ranking stages in
// one versioned structure. The algorithmic code never carries its own
// literals; policy tuning happens here.
type RankingPolicy struct {
	// Version identifies the policy revision for logging and audits.
	Version string

	// Weight damps the recency and época multipliers when combined with the
	// raw similarity: final = sim * (1+(rec-1)*w) * (1+(epoca-1)*w).
	Weight float64

	// MinSimilarity discards candidates below this raw similarity before
	// ranking.
	MinSimilarity float64

	// RecencyBrackets must be ordered by MinYear descending and their
	// multipliers monotonically non-increasing as year decreases.
	RecencyBrackets []RecencyBracket

	// EpocaWeights is the era lookup table; unknown labels score neutral 1.0.
	EpocaWeights []EpocaWeight

	// CutoffRules is matched against the lowercased query; first match wins.
	CutoffRules []CutoffRule

	// ModernEpocas and LegacyEpocas form the two-tier era classification used
	// by the dominance filter: when the top of the pool contains modern-era
	// candidates, legacy-era stragglers are dropped.
	ModernEpocas []string
	LegacyEpocas []string

	// ProtectTop candidates by score are never dropped by year filtering.
	ProtectTop int

	// MinSurvivors is the re-ranker safety floor: if filtering would leave
	// fewer sources, the filter is abandoned and the original top
	// MinSurvivors are returned instead.
	MinSurvivors int

	// RecentWindow / ModerateWindow are the pool-freshness horizons in years
	// that select the aggressive and moderate filtering tiers.
	RecentWindow   int
	ModerateWindow int

	// AggressiveFloor is the year floor used in the aggressive tier when no
	// cutoff keyword matched. ModerateFloor is its moderate-tier counterpart.
	// HistoricalFloor effectively disables filtering (first registered
	// jurisprudence predates it by nothing useful).
	AggressiveFloor int
	ModerateFloor   int
	HistoricalFloor int

	// DominanceDepth is how deep into the pool to look for modern-era
	// candidates before dropping legacy-era ones.
	DominanceDepth int

	// CandidatePool is the raw vector-search fan-out; FinalLimit caps the
	// deduplicated result; MergeLimit caps the union with conversation
	// history.
	CandidatePool int
	FinalLimit    int
	MergeLimit    int
}

// DefaultRankingPolicy returns policy v1. The numbers are internally
// consistent rather than sacred; change them here, not in the pipeline.
func DefaultRankingPolicy() RankingPolicy {
	return RankingPolicy{
		Version:       "v1",
		Weight:        0.30,
		MinSimilarity: 0.30,
		RecencyBrackets: []RecencyBracket{
			{MinYear: 2024, Multiplier: 1.5},
			{MinYear: 2019, Multiplier: 1.4},
			{MinYear: 2010, Multiplier: 1.15},
			{MinYear: 2000, Multiplier: 1.05},
		},
		EpocaWeights: []EpocaWeight{
			{Epoca: EpocaDuodecima, Multiplier: 1.6},
			{Epoca: EpocaUndecima, Multiplier: 1.5},
			{Epoca: EpocaDecima, Multiplier: 1.1},
			{Epoca: EpocaNovena, Multiplier: 0.85},
			{Epoca: EpocaOctava, Multiplier: 0.8},
		},
		CutoffRules: []CutoffRule{
			{Keyword: "laboral", Year: 2019},
			{Keyword: "fiscal", Year: 2020},
			{Keyword: "electoral", Year: 2021},
			{Keyword: "penal", Year: 2016},
			{Keyword: "constitucional", Year: 2011},
		},
		ModernEpocas:    []string{EpocaDuodecima, EpocaUndecima},
		LegacyEpocas:    []string{EpocaNovena, EpocaOctava, "Séptima Época", "Sexta Época", "Quinta Época"},
		ProtectTop:      3,
		MinSurvivors:    5,
		RecentWindow:    2,
		ModerateWindow:  5,
		AggressiveFloor: 2000,
		ModerateFloor:   1995,
		HistoricalFloor: 1911,
		DominanceDepth:  10,
		CandidatePool:   20,
		FinalLimit:      5,
		MergeLimit:      15,
	}
}

// RecencyFor returns the recency multiplier for a publication year. Unknown
// years score neutral.
func (p RankingPolicy) RecencyFor(year int) float64 {
	if year <= 0 {
		return 1.0
	}
	for _, b := range p.RecencyBrackets {
		if year >= b.MinYear {
			return b.Multiplier
		}
	}
	return 1.0
}

// EpocaFor returns the era multiplier for an época label, neutral for unknown
// or missing eras.
func (p RankingPolicy) EpocaFor(epoca string) float64 {
	for _, w := range p.EpocaWeights {
		if w.Epoca == epoca {
			return w.Multiplier
		}
	}
	return 1.0
}

// IsModernEpoca reports whether the label belongs to the modern tier.
func (p RankingPolicy) IsModernEpoca(epoca string) bool {
	for _, e := range p.ModernEpocas {
		if e == epoca {
			return true
		}
	}
	return false
}

// IsLegacyEpoca reports whether the label belongs to the legacy tier.
func (p RankingPolicy) IsLegacyEpoca(epoca string) bool {
	for _, e := range p.LegacyEpocas {
		if e == epoca {
			return true
		}
	}
	return false
}
