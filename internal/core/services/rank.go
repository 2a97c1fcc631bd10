package services

import (
	"sort"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// Dedupe collapses multiple chunks of the same tesis into its single
// best-scoring chunk. When two chunks of one tesis tie, the earlier one wins,
// so the result is stable for a fixed input order.
func Dedupe(sources []domain.ScoredSource) []domain.ScoredSource {
	index := make(map[int64]int, len(sources))
	out := make([]domain.ScoredSource, 0, len(sources))
	for _, s := range sources {
		if i, ok := index[s.IDTesis]; ok {
			if s.FinalScore > out[i].FinalScore {
				out[i] = s
			}
			continue
		}
		index[s.IDTesis] = len(out)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	return out
}

// Cap truncates a source list to at most n entries.
func Cap(sources []domain.ScoredSource, n int) []domain.ScoredSource {
	if n >= 0 && len(sources) > n {
		return sources[:n]
	}
	return sources
}

// MergeWithHistory unions freshly retrieved sources with sources carried over
// from earlier turns of the conversation. On an identifier conflict the fresh
// source wins, carrying its up-to-date score. The union is re-sorted by final
// score and truncated to limit.
func MergeWithHistory(fresh, historical []domain.ScoredSource, limit int) []domain.ScoredSource {
	seen := make(map[int64]bool, len(fresh))
	out := make([]domain.ScoredSource, 0, len(fresh)+len(historical))
	for _, s := range fresh {
		seen[s.IDTesis] = true
		out = append(out, s)
	}
	for _, s := range historical {
		if seen[s.IDTesis] {
			continue
		}
		seen[s.IDTesis] = true
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	return Cap(out, limit)
}
