package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven"
)

// reusePatterns mark follow-up questions about material already on the table.
var reusePatterns = []string{
	"explica", "explícame", "detalla", "amplía", "profundiza",
	"por qué", "por que", "qué significa", "que significa",
	"la tesis anterior", "esa tesis", "esta tesis", "la anterior",
	"el criterio anterior", "ese criterio", "dime más", "dime mas",
}

// searchPatterns mark explicit requests for fresh retrieval.
var searchPatterns = []string{
	"busca", "búscame", "buscame", "encuentra", "encuéntrame",
	"otra tesis", "otras tesis", "otro criterio", "otros criterios",
	"nueva búsqueda", "nueva busqueda", "algo más sobre", "algo mas sobre",
	"tesis sobre", "jurisprudencia sobre", "criterios sobre",
}

// shortQueryRunes is the length under which a query with a sourced recent
// turn is presumed to be a follow-up.
const shortQueryRunes = 40

// IntentClassifier decides whether a turn needs fresh retrieval or can be
// answered from sources already cited, and rewrites follow-up queries into
// standalone ones. Pattern matching resolves the common cases; the language
// model breaks ties. The classifier never fails: ambiguity and model errors
// default to a new search, which is always safe, only slower.
type IntentClassifier struct {
	llm    driven.LLMService
	logger *slog.Logger
}

func NewIntentClassifier(llm driven.LLMService, logger *slog.Logger) *IntentClassifier {
	return &IntentClassifier{llm: llm, logger: logger}
}

// Classify returns the intent of the query given the conversation so far.
func (c *IntentClassifier) Classify(ctx context.Context, query string, history []domain.Message) domain.Intent {
	if !hasSources(history) {
		return domain.IntentNewSearch
	}

	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range searchPatterns {
		if strings.Contains(q, p) {
			return domain.IntentNewSearch
		}
	}
	for _, p := range reusePatterns {
		if strings.Contains(q, p) {
			return domain.IntentReuse
		}
	}
	if utf8.RuneCountInString(q) < shortQueryRunes {
		return domain.IntentReuse
	}

	return c.classifyWithLLM(ctx, query, history)
}

func (c *IntentClassifier) classifyWithLLM(ctx context.Context, query string, history []domain.Message) domain.Intent {
	if c.llm == nil {
		return domain.IntentNewSearch
	}

	system := "Eres un clasificador de intención para un asistente de jurisprudencia mexicana. " +
		"Decide si la pregunta del usuario se refiere a las tesis ya citadas en la conversación " +
		"(REUSE) o requiere buscar tesis nuevas (NEW_SEARCH). Responde únicamente REUSE o NEW_SEARCH."

	var b strings.Builder
	b.WriteString("Conversación reciente:\n")
	writeHistoryWindow(&b, history, 4)
	b.WriteString("\nPregunta actual: ")
	b.WriteString(query)

	answer, err := c.llm.Complete(ctx, system, b.String())
	if err != nil {
		c.logger.Warn("intent classification fallback", "error", err)
		return domain.IntentNewSearch
	}
	if strings.Contains(strings.ToUpper(answer), "REUSE") {
		return domain.IntentReuse
	}
	return domain.IntentNewSearch
}

// Rewrite turns a context-dependent follow-up into a standalone search query.
// Without history, or when the model fails or changes nothing, the original
// query is returned untouched with UsedContext false.
func (c *IntentClassifier) Rewrite(ctx context.Context, query string, history []domain.Message) domain.RewrittenQuery {
	original := domain.RewrittenQuery{Query: query}
	if len(history) == 0 || c.llm == nil {
		return original
	}

	system := "Reescribe la pregunta del usuario como una consulta de búsqueda autónoma " +
		"sobre jurisprudencia mexicana, resolviendo pronombres y referencias a la conversación. " +
		"Si la pregunta ya es autónoma, devuélvela sin cambios. Responde solo con la consulta."

	var b strings.Builder
	b.WriteString("Conversación reciente:\n")
	writeHistoryWindow(&b, history, 4)
	b.WriteString("\nPregunta actual: ")
	b.WriteString(query)

	answer, err := c.llm.Complete(ctx, system, b.String())
	if err != nil {
		c.logger.Warn("query rewrite fallback", "error", err)
		return original
	}
	rewritten := strings.TrimSpace(strings.Trim(strings.TrimSpace(answer), `"`))
	if rewritten == "" || strings.EqualFold(rewritten, strings.TrimSpace(query)) {
		return original
	}
	return domain.RewrittenQuery{Query: rewritten, UsedContext: true}
}

// writeHistoryWindow appends the last n messages, each truncated, in
// chronological order.
func writeHistoryWindow(b *strings.Builder, history []domain.Message, n int) {
	start := len(history) - n
	if start < 0 {
		start = 0
	}
	for _, msg := range history[start:] {
		b.WriteString(string(msg.Role))
		b.WriteString(": ")
		b.WriteString(truncate(msg.Content, 200))
		b.WriteString("\n")
	}
}
