package services

import (
	"math"
	"testing"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

func TestScorerCompositeFormula(t *testing.T) {
	scorer := NewScorer(domain.DefaultRankingPolicy())

	src := scorer.Score(domain.TesisChunk{
		IDTesis:    1,
		Similarity: 0.50,
		Anio:       2021,
		Epoca:      domain.EpocaUndecima,
	})

	// 0.50 * (1+(1.4-1)*0.3) * (1+(1.5-1)*0.3)
	want := 0.50 * 1.12 * 1.15
	if math.Abs(src.FinalScore-want) > 1e-9 {
		t.Errorf("FinalScore = %f, want %f", src.FinalScore, want)
	}
	if src.RecencyScore != 1.4 {
		t.Errorf("RecencyScore = %f, want 1.4", src.RecencyScore)
	}
	if src.EpocaScore != 1.5 {
		t.Errorf("EpocaScore = %f, want 1.5", src.EpocaScore)
	}
}

func TestScorerRecentAisladaOutranksOldJurisprudencia(t *testing.T) {
	scorer := NewScorer(domain.DefaultRankingPolicy())

	recent := scorer.Score(domain.TesisChunk{
		IDTesis: 1, Similarity: 0.50, Anio: 2021,
		Epoca: domain.EpocaUndecima, TipoTesis: domain.TipoTesisAislada,
	})
	old := scorer.Score(domain.TesisChunk{
		IDTesis: 2, Similarity: 0.55, Anio: 2015,
		Epoca: domain.EpocaDecima, TipoTesis: domain.TipoJurisprudencia,
	})

	if recent.FinalScore <= old.FinalScore {
		t.Errorf("recent aislada %f should outrank older jurisprudencia %f despite lower similarity",
			recent.FinalScore, old.FinalScore)
	}
}

func TestScorerNeutralMultipliersForUnknowns(t *testing.T) {
	scorer := NewScorer(domain.DefaultRankingPolicy())

	src := scorer.Score(domain.TesisChunk{IDTesis: 1, Similarity: 0.42})
	if src.RecencyScore != 1.0 || src.EpocaScore != 1.0 {
		t.Errorf("unknown year and época must score neutral, got rec=%f epoca=%f",
			src.RecencyScore, src.EpocaScore)
	}
	if math.Abs(src.FinalScore-0.42) > 1e-9 {
		t.Errorf("neutral multipliers must leave similarity unchanged, got %f", src.FinalScore)
	}
}

func TestScoreAllFiltersAndSorts(t *testing.T) {
	scorer := NewScorer(domain.DefaultRankingPolicy())

	chunks := []domain.TesisChunk{
		{IDTesis: 1, Similarity: 0.29},
		{IDTesis: 2, Similarity: 0.35, Anio: 2015, Epoca: domain.EpocaDecima},
		{IDTesis: 3, Similarity: 0.31, Anio: 2025, Epoca: domain.EpocaUndecima},
	}

	scored := scorer.ScoreAll(chunks)
	if len(scored) != 2 {
		t.Fatalf("expected below-threshold chunk dropped, got %d sources", len(scored))
	}
	if scored[0].IDTesis != 3 {
		t.Errorf("expected id 3 first after multipliers, got %d", scored[0].IDTesis)
	}
	if scored[0].FinalScore < scored[1].FinalScore {
		t.Errorf("sources not sorted by final score descending")
	}
}

func TestScoreAllThresholdBoundaryInclusive(t *testing.T) {
	scorer := NewScorer(domain.DefaultRankingPolicy())

	scored := scorer.ScoreAll([]domain.TesisChunk{{IDTesis: 1, Similarity: 0.30}})
	if len(scored) != 1 {
		t.Fatalf("a chunk at exactly the threshold must survive, got %d", len(scored))
	}
}
