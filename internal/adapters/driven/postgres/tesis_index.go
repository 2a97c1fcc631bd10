package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TesisIndex = (*TesisIndex)(nil)

// TesisIndex implements driven.TesisIndex over pgvector. Similarity is
// cosine: 1 - (embedding <=> query), assuming both sides are unit vectors.
type TesisIndex struct {
	db *DB
}

// NewTesisIndex creates a new pgvector-backed TesisIndex
func NewTesisIndex(db *DB) *TesisIndex {
	return &TesisIndex{db: db}
}

// SearchChunks runs a cosine similarity query over the chunk embeddings,
// joined with the thesis metadata needed for ranking. Filters are applied in
// SQL so the limit counts only eligible candidates.
func (s *TesisIndex) SearchChunks(ctx context.Context, queryEmbedding []float32, filters domain.SearchFilters, minSimilarity float64, limit int) ([]domain.TesisChunk, error) {
	query := `
		SELECT c.id_tesis, t.rubro, c.chunk_text, c.chunk_type,
		       1 - (c.embedding <=> $1) AS similarity,
		       COALESCE(t.epoca, ''), COALESCE(t.tipo_tesis, ''),
		       COALESCE(t.instancia, ''), COALESCE(t.anio, 0), t.materias
		FROM tesis_chunks c
		JOIN tesis t ON t.id_tesis = c.id_tesis
		WHERE 1 - (c.embedding <=> $1) >= $2
		  AND ($3::text[] IS NULL OR cardinality($3::text[]) = 0 OR t.materias && $3)
		  AND ($4 = '' OR t.tipo_tesis = $4)
		  AND ($5 = 0 OR t.anio >= $5)
		  AND ($6 = 0 OR t.anio <= $6)
		ORDER BY c.embedding <=> $1
		LIMIT $7
	`

	rows, err := s.db.QueryContext(ctx, query,
		pgvector.NewVector(queryEmbedding),
		minSimilarity,
		pq.Array(filters.Materias),
		filters.TipoTesis,
		filters.AnioMin,
		filters.AnioMax,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	defer rows.Close()

	var chunks []domain.TesisChunk
	for rows.Next() {
		var chunk domain.TesisChunk
		err := rows.Scan(
			&chunk.IDTesis,
			&chunk.Rubro,
			&chunk.ChunkText,
			&chunk.ChunkType,
			&chunk.Similarity,
			&chunk.Epoca,
			&chunk.TipoTesis,
			&chunk.Instancia,
			&chunk.Anio,
			pq.Array(&chunk.Materias),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %v", domain.ErrSearchUnavailable, err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}

	return chunks, nil
}

// GetTesis fetches a full thesis document by id
func (s *TesisIndex) GetTesis(ctx context.Context, idTesis int64) (*domain.Tesis, error) {
	query := `
		SELECT id_tesis, rubro, texto, COALESCE(precedentes, ''),
		       COALESCE(epoca, ''), COALESCE(instancia, ''),
		       COALESCE(tipo_tesis, ''), COALESCE(anio, 0), materias
		FROM tesis
		WHERE id_tesis = $1
	`

	var t domain.Tesis
	err := s.db.QueryRowContext(ctx, query, idTesis).Scan(
		&t.IDTesis,
		&t.Rubro,
		&t.Texto,
		&t.Precedentes,
		&t.Epoca,
		&t.Instancia,
		&t.TipoTesis,
		&t.Anio,
		pq.Array(&t.Materias),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}

	return &t, nil
}

// HealthCheck verifies the index is reachable
func (s *TesisIndex) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}
