package mocks

import (
	"context"
	"fmt"
	"sort"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// MockTesisIndex is an in-memory TesisIndex for testing
type MockTesisIndex struct {
	chunks   []domain.TesisChunk
	tesis    map[int64]*domain.Tesis
	failNext bool
	searches int
}

// NewMockTesisIndex creates a new MockTesisIndex
func NewMockTesisIndex() *MockTesisIndex {
	return &MockTesisIndex{
		tesis: make(map[int64]*domain.Tesis),
	}
}

func (m *MockTesisIndex) SearchChunks(ctx context.Context, queryEmbedding []float32, filters domain.SearchFilters, minSimilarity float64, limit int) ([]domain.TesisChunk, error) {
	if m.failNext {
		m.failNext = false
		return nil, fmt.Errorf("%w: mock index down", domain.ErrSearchUnavailable)
	}

	m.searches++
	result := make([]domain.TesisChunk, 0, len(m.chunks))
	for _, chunk := range m.chunks {
		if chunk.Similarity < minSimilarity {
			continue
		}
		if !matchesFilters(chunk, filters) {
			continue
		}
		result = append(result, chunk)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Similarity > result[j].Similarity
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockTesisIndex) GetTesis(ctx context.Context, idTesis int64) (*domain.Tesis, error) {
	if m.failNext {
		m.failNext = false
		return nil, fmt.Errorf("%w: mock index down", domain.ErrSearchUnavailable)
	}
	t, ok := m.tesis[idTesis]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *MockTesisIndex) HealthCheck(ctx context.Context) error {
	return nil
}

func matchesFilters(chunk domain.TesisChunk, filters domain.SearchFilters) bool {
	if filters.TipoTesis != "" && chunk.TipoTesis != filters.TipoTesis {
		return false
	}
	if filters.AnioMin > 0 && chunk.Anio < filters.AnioMin {
		return false
	}
	if filters.AnioMax > 0 && chunk.Anio > filters.AnioMax {
		return false
	}
	if len(filters.Materias) > 0 {
		found := false
		for _, want := range filters.Materias {
			for _, have := range chunk.Materias {
				if want == have {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Helper methods for testing

func (m *MockTesisIndex) SetChunks(chunks []domain.TesisChunk) {
	m.chunks = chunks
}

func (m *MockTesisIndex) AddTesis(t *domain.Tesis) {
	m.tesis[t.IDTesis] = t
}

func (m *MockTesisIndex) SetFailNext(fail bool) {
	m.failNext = fail
}

func (m *MockTesisIndex) Searches() int {
	return m.searches
}
