package services

import (
	"sort"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// Scorer turns raw similarity hits into relevance-scored sources by
// weighting similarity with recency and epoca multipliers.
type Scorer struct {
	policy domain.RankingPolicy
}

func NewScorer(policy domain.RankingPolicy) *Scorer {
	return &Scorer{policy: policy}
}

// Score computes the composite relevance of a single chunk.
// Chunks without a usable year get a neutral recency multiplier.
func (s *Scorer) Score(chunk domain.TesisChunk) domain.ScoredSource {
	recency := s.policy.RecencyFor(chunk.Anio)
	epoca := s.policy.EpocaFor(chunk.Epoca)

	w := s.policy.Weight
	final := chunk.Similarity * (1 + (recency-1)*w) * (1 + (epoca-1)*w)

	return domain.ScoredSource{
		TesisChunk:   chunk,
		RecencyScore: recency,
		EpocaScore:   epoca,
		FinalScore:   final,
	}
}

// ScoreAll scores every chunk above the similarity threshold and returns
// the survivors ordered by final score, highest first. Input order is
// preserved among equal scores.
func (s *Scorer) ScoreAll(chunks []domain.TesisChunk) []domain.ScoredSource {
	scored := make([]domain.ScoredSource, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Similarity < s.policy.MinSimilarity {
			continue
		}
		scored = append(scored, s.Score(chunk))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})
	return scored
}
