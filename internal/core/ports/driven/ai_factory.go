package driven

// AIProvider identifies an embedding/LLM provider.
type AIProvider string

const (
	AIProviderOpenAI AIProvider = "openai"
	AIProviderMock   AIProvider = "mock"
)

// AISettings configures one AI service instance.
type AISettings struct {
	Provider AIProvider
	APIKey   string
	Model    string
	BaseURL  string
	// Dimensions requests reduced-dimension embeddings. Must match the
	// dimension the index was built with.
	Dimensions int
}

// AIServiceFactory creates AI services from settings
type AIServiceFactory interface {
	CreateEmbeddingService(settings AISettings) (EmbeddingService, error)
	CreateLLMService(settings AISettings) (LLMService, error)
}
