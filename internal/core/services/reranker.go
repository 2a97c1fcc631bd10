package services

import (
	"strings"
	"time"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// Reranker applies temporal filtering on top of score ordering: candidates
// older than a query-dependent year floor are dropped, legacy-era sources are
// dropped when the top of the pool is dominated by modern-era ones, and a
// safety floor guarantees the result never collapses below a minimum size.
type Reranker struct {
	policy domain.RankingPolicy

	// nowYear is injectable so the tier selection is deterministic in tests.
	nowYear func() int
}

func NewReranker(policy domain.RankingPolicy) *Reranker {
	return &Reranker{
		policy:  policy,
		nowYear: func() int { return time.Now().Year() },
	}
}

// CutoffYear returns the reform year implied by the query, or 0 when no
// cutoff keyword matches. Matching is case-insensitive; the first configured
// rule wins.
func (r *Reranker) CutoffYear(query string) int {
	q := strings.ToLower(query)
	for _, rule := range r.policy.CutoffRules {
		if strings.Contains(q, rule.Keyword) {
			return rule.Year
		}
	}
	return 0
}

// Rerank filters a score-ordered candidate pool. The top ProtectTop
// candidates are always retained regardless of age. If filtering would leave
// fewer than MinSurvivors sources, the filter is abandoned and the original
// top MinSurvivors are returned unchanged.
func (r *Reranker) Rerank(candidates []domain.ScoredSource, query string) []domain.ScoredSource {
	if len(candidates) == 0 {
		return candidates
	}

	floor := r.yearFloor(candidates, r.CutoffYear(query))
	modern := r.modernDominates(candidates)

	survivors := make([]domain.ScoredSource, 0, len(candidates))
	for i, c := range candidates {
		if i < r.policy.ProtectTop {
			survivors = append(survivors, c)
			continue
		}
		if c.HasYear() && c.Anio < floor {
			continue
		}
		if modern && r.policy.IsLegacyEpoca(c.Epoca) {
			continue
		}
		survivors = append(survivors, c)
	}

	if len(survivors) < r.policy.MinSurvivors {
		n := r.policy.MinSurvivors
		if n > len(candidates) {
			n = len(candidates)
		}
		return append([]domain.ScoredSource(nil), candidates[:n]...)
	}
	return survivors
}

// yearFloor selects the filtering tier from the freshness of the pool itself.
// A pool led by very recent material is filtered aggressively; a pool whose
// best candidates are decades old is barely filtered at all, because for that
// query old jurisprudence is evidently all there is.
func (r *Reranker) yearFloor(candidates []domain.ScoredSource, cutoff int) int {
	maxYear := 0
	for _, c := range candidates {
		if c.HasYear() && c.Anio > maxYear {
			maxYear = c.Anio
		}
	}
	if maxYear == 0 {
		return r.policy.HistoricalFloor
	}

	now := r.nowYear()
	switch {
	case maxYear >= now-r.policy.RecentWindow:
		if cutoff > 0 {
			return cutoff
		}
		return r.policy.AggressiveFloor
	case maxYear >= now-r.policy.ModerateWindow:
		if cutoff > 0 {
			return cutoff - r.policy.ModerateWindow
		}
		return r.policy.ModerateFloor
	default:
		return r.policy.HistoricalFloor
	}
}

// modernDominates reports whether any of the top DominanceDepth candidates
// belongs to a modern época.
func (r *Reranker) modernDominates(candidates []domain.ScoredSource) bool {
	depth := r.policy.DominanceDepth
	if depth > len(candidates) {
		depth = len(candidates)
	}
	for _, c := range candidates[:depth] {
		if r.policy.IsModernEpoca(c.Epoca) {
			return true
		}
	}
	return false
}
