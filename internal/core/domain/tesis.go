package domain

import "fmt"

// Thesis type classification. Jurisprudencia is binding precedent,
// Tesis Aislada is persuasive only.
const (
	TipoJurisprudencia = "Jurisprudencia"
	TipoTesisAislada   = "Tesis Aislada"
)

// Chunk types as stored in the embeddings index.
const (
	ChunkTypeTexto = "texto"
	ChunkTypeRubro = "rubro"
)

// TesisChunk is a raw candidate returned by vector search: a text chunk of a
// published judicial thesis plus the metadata needed for ranking and citation.
// Chunks are immutable; they come from a precomputed index built outside this
// service.
type TesisChunk struct {
	IDTesis    int64    `json:"id_tesis"`
	Rubro      string   `json:"rubro"`
	ChunkText  string   `json:"chunk_text,omitempty"`
	ChunkType  string   `json:"chunk_type,omitempty"`
	Texto      string   `json:"texto,omitempty"`
	Similarity float64  `json:"similarity"`
	Epoca      string   `json:"epoca,omitempty"`
	TipoTesis  string   `json:"tipo_tesis,omitempty"`
	Instancia  string   `json:"instancia,omitempty"`
	Anio       int      `json:"anio,omitempty"` // 0 means unknown
	Materias   []string `json:"materias,omitempty"`
}

// Validate checks the invariants vector search is expected to uphold.
func (c *TesisChunk) Validate() error {
	if c.IDTesis <= 0 {
		return fmt.Errorf("%w: missing tesis id", ErrInvalidInput)
	}
	if c.Similarity < 0 || c.Similarity > 1 {
		return fmt.Errorf("%w: similarity %f out of [0,1]", ErrInvalidInput, c.Similarity)
	}
	if c.Anio != 0 && (c.Anio < 1000 || c.Anio > 9999) {
		return fmt.Errorf("%w: year %d is not a four-digit year", ErrInvalidInput, c.Anio)
	}
	return nil
}

// Content returns the text to place in the generation context. The chunk text
// is preferred; the full thesis text is the fallback. This is the single
// normalization point for the chunk_text/texto duality of the index rows.
func (c *TesisChunk) Content() string {
	if c.ChunkText != "" {
		return c.ChunkText
	}
	return c.Texto
}

// HasYear reports whether the publication year is known.
func (c *TesisChunk) HasYear() bool {
	return c.Anio > 0
}

// ScoredSource is a TesisChunk with the derived ranking fields. It is computed
// fresh per query; the subset persisted into conversation history keeps these
// fields so merged history sources rank against new ones.
type ScoredSource struct {
	TesisChunk
	RecencyScore float64 `json:"recency_score"`
	EpocaScore   float64 `json:"epoca_score"`
	FinalScore   float64 `json:"final_score"`
}

// RankedSourceSet is an ordered sequence of scored sources, descending by
// FinalScore, with at most one entry per parent thesis after deduplication.
type RankedSourceSet []ScoredSource

// IDs returns the parent thesis identifiers in rank order.
func (s RankedSourceSet) IDs() []int64 {
	ids := make([]int64, len(s))
	for i, src := range s {
		ids[i] = src.IDTesis
	}
	return ids
}

// Tesis is a full thesis document as stored alongside the embeddings index.
// Used for citation display and full-text lookups.
type Tesis struct {
	IDTesis     int64    `json:"id_tesis"`
	Rubro       string   `json:"rubro"`
	Texto       string   `json:"texto"`
	Precedentes string   `json:"precedentes,omitempty"`
	Epoca       string   `json:"epoca,omitempty"`
	Instancia   string   `json:"instancia,omitempty"`
	TipoTesis   string   `json:"tipo_tesis,omitempty"`
	Anio        int      `json:"anio,omitempty"`
	Materias    []string `json:"materias,omitempty"`
}
