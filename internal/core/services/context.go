package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// ContextConfig bounds how much source text is packed into a single prompt.
type ContextConfig struct {
	// MaxCharsPerSource truncates an individual source's content.
	MaxCharsPerSource int
	// MaxTotalChars stops adding sources once the rendered context would
	// exceed it. The first source is always included.
	MaxTotalChars int
}

func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		MaxCharsPerSource: 5000,
		MaxTotalChars:     15000,
	}
}

// ContextAssembler renders a ranked source set into the deterministic
// Spanish context block handed to the generation model. Identical inputs
// always produce identical output.
type ContextAssembler struct {
	cfg ContextConfig
}

func NewContextAssembler(cfg ContextConfig) *ContextAssembler {
	return &ContextAssembler{cfg: cfg}
}

const contextHeader = "FUENTES JURISPRUDENCIALES:\n\n"

const noSourcesContext = "NO SE ENCONTRARON FUENTES.\n\n" +
	"No hay tesis relevantes para esta consulta en el índice. " +
	"Indica al usuario que no se encontraron criterios aplicables y no inventes citas.\n"

// Render produces the context block for the given sources, in order. An empty
// set yields an explicit no-sources block so the generation model never has to
// guess whether retrieval happened.
func (a *ContextAssembler) Render(sources []domain.ScoredSource) string {
	if len(sources) == 0 {
		return noSourcesContext
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	for i, src := range sources {
		block := a.renderSource(i+1, src)
		if i > 0 && a.cfg.MaxTotalChars > 0 && b.Len()+len(block) > a.cfg.MaxTotalChars {
			break
		}
		b.WriteString(block)
	}
	return b.String()
}

func (a *ContextAssembler) renderSource(n int, src domain.ScoredSource) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- TESIS %d (ID: %d) ---\n", n, src.IDTesis)
	fmt.Fprintf(&b, "Rubro: %s\n", valueOr(src.Rubro, "N/A"))
	fmt.Fprintf(&b, "Tipo: %s\n", valueOr(src.TipoTesis, "N/A"))
	fmt.Fprintf(&b, "Época: %s\n", valueOr(src.Epoca, "N/A"))
	if src.HasYear() {
		fmt.Fprintf(&b, "Año: %d\n", src.Anio)
	} else {
		b.WriteString("Año: N/A\n")
	}
	if len(src.Materias) > 0 {
		fmt.Fprintf(&b, "Materias: %s\n", strings.Join(src.Materias, ", "))
	}
	fmt.Fprintf(&b, "Similitud: %.1f%%\n", src.Similarity*100)
	fmt.Fprintf(&b, "Relevancia: %.1f%%\n", src.FinalScore*100)

	content := truncate(src.Content(), a.cfg.MaxCharsPerSource)
	fmt.Fprintf(&b, "\nContenido:\n%s\n\n", content)
	return b.String()
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
