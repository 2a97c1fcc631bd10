package domain

import "time"

// Message roles as stored by the conversation service.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prior turn of a conversation. Assistant turns may carry the
// sources cited in that turn; those retain their original scoring fields so
// they can be merged against freshly retrieved candidates. This core only
// reads conversations - persistence belongs to the conversation service.
type Message struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Sources   []ScoredSource `json:"sources,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// HasSources reports whether the turn carries cited sources.
func (m Message) HasSources() bool {
	return len(m.Sources) > 0
}

// Intent is the branch decision for an incoming query: run a new vector
// search, or answer from the sources already surfaced in the conversation.
type Intent string

const (
	IntentNewSearch Intent = "new_search"
	IntentReuse     Intent = "reuse"
)

// RewrittenQuery is the output of the query rewriter: the user's utterance
// turned into a standalone search query, with a flag telling whether the
// conversation context actually changed it.
type RewrittenQuery struct {
	Query       string `json:"query"`
	UsedContext bool   `json:"used_context"`
}
