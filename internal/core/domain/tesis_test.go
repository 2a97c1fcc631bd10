package domain

import "testing"

func TestTesisChunk_Validate(t *testing.T) {
	tests := []struct {
		name    string
		chunk   TesisChunk
		wantErr bool
	}{
		{
			name:  "valid chunk",
			chunk: TesisChunk{IDTesis: 4821, Similarity: 0.72, Anio: 2021},
		},
		{
			name:  "unknown year is valid",
			chunk: TesisChunk{IDTesis: 4821, Similarity: 0.5},
		},
		{
			name:    "missing id",
			chunk:   TesisChunk{Similarity: 0.5},
			wantErr: true,
		},
		{
			name:    "similarity above 1",
			chunk:   TesisChunk{IDTesis: 1, Similarity: 1.2},
			wantErr: true,
		},
		{
			name:    "negative similarity",
			chunk:   TesisChunk{IDTesis: 1, Similarity: -0.1},
			wantErr: true,
		},
		{
			name:    "three-digit year",
			chunk:   TesisChunk{IDTesis: 1, Similarity: 0.5, Anio: 999},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.chunk.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTesisChunk_Content(t *testing.T) {
	chunk := TesisChunk{ChunkText: "fragment", Texto: "full text"}
	if got := chunk.Content(); got != "fragment" {
		t.Errorf("expected chunk text, got %q", got)
	}

	chunk.ChunkText = ""
	if got := chunk.Content(); got != "full text" {
		t.Errorf("expected full text fallback, got %q", got)
	}
}

func TestRankedSourceSet_IDs(t *testing.T) {
	set := RankedSourceSet{
		{TesisChunk: TesisChunk{IDTesis: 10}},
		{TesisChunk: TesisChunk{IDTesis: 20}},
	}
	ids := set.IDs()
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Errorf("unexpected ids: %v", ids)
	}
}
