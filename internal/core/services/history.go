package services

import (
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// ExtractHistoricalSources walks a conversation newest-message-first and
// collects the unique sources cited in earlier assistant turns, up to max.
// Recency of mention wins: a tesis cited in the latest turn shadows the same
// tesis from an older turn.
func ExtractHistoricalSources(history []domain.Message, max int) []domain.ScoredSource {
	seen := make(map[int64]bool)
	out := make([]domain.ScoredSource, 0, max)
	for i := len(history) - 1; i >= 0; i-- {
		for _, src := range history[i].Sources {
			if seen[src.IDTesis] {
				continue
			}
			seen[src.IDTesis] = true
			out = append(out, src)
			if max > 0 && len(out) >= max {
				return out
			}
		}
	}
	return out
}

// DiscussedTesisIDs returns the set of tesis identifiers cited anywhere in
// the conversation.
func DiscussedTesisIDs(history []domain.Message) map[int64]bool {
	ids := make(map[int64]bool)
	for _, msg := range history {
		for _, src := range msg.Sources {
			ids[src.IDTesis] = true
		}
	}
	return ids
}

// hasSources reports whether any message in the window carries sources.
func hasSources(history []domain.Message) bool {
	for _, msg := range history {
		if msg.HasSources() {
			return true
		}
	}
	return false
}
