package domain

// SearchFilters narrows the vector search. All fields are optional; empty
// filters apply no constraint. Filters are conjunctive: a candidate must
// satisfy every populated field, where the materia filter matches on overlap
// (at least one shared tag).
type SearchFilters struct {
	Materias  []string `json:"materias,omitempty"`
	TipoTesis string   `json:"tipo_tesis,omitempty"`
	AnioMin   int      `json:"anio_min,omitempty"`
	AnioMax   int      `json:"anio_max,omitempty"`
}

// IsZero reports whether no constraint is set.
func (f SearchFilters) IsZero() bool {
	return len(f.Materias) == 0 && f.TipoTesis == "" && f.AnioMin == 0 && f.AnioMax == 0
}

// MateriaExpansions maps a materia label to related labels that should be
// searched alongside it. Kept as configuration rather than inline
// conditionals so the taxonomy can grow without touching search code.
type MateriaExpansions map[string][]string

// DefaultMateriaExpansions returns the seeded expansion table. Fiscal matters
// are indexed under the broader administrative materia, so a fiscal filter
// must also pull in Administrativa or it silently misses most of the corpus.
func DefaultMateriaExpansions() MateriaExpansions {
	return MateriaExpansions{
		"Fiscal (ADM)": {"Administrativa"},
		"Fiscal":       {"Administrativa"},
	}
}

// Expand returns a copy of the filters with the materia list widened by the
// expansion table. Duplicates are removed; order of the original labels is
// preserved, expansions appended.
func (f SearchFilters) Expand(expansions MateriaExpansions) SearchFilters {
	if len(f.Materias) == 0 || len(expansions) == 0 {
		return f
	}
	seen := make(map[string]bool, len(f.Materias))
	out := make([]string, 0, len(f.Materias))
	add := func(m string) {
		if m != "" && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	for _, m := range f.Materias {
		add(m)
		for _, extra := range expansions[m] {
			add(extra)
		}
	}
	expanded := f
	expanded.Materias = out
	return expanded
}
