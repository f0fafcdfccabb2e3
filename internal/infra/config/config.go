package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries every tunable the service reads from the environment.
type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	OllamaURL       string
	EmbeddingModel  string
	EmbedderTimeout int

	LLMProvider   string
	OllamaModel   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
	LLMMaxTokens  int
	LLMTimeout    int
	LLMRateLimit  float64
	LLMRateBurst  int

	KeywordSearchURL     string
	KeywordSearchTimeout int

	RerankURL     string
	RerankModel   string
	RerankTimeout int

	VectorWeight     float64
	KeywordWeight    float64
	RetrieveTopK     int
	RerankTopK       int
	MaxContextTokens int

	CacheSize       int
	CacheTTLMinutes int

	OTelEnabled bool
}

// Load reads the configuration from environment variables with defaults
// suitable for local development.
func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),

		DBHost:     getEnv("DB_HOST", "legal-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "legal_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "legal_password"),
		DBName:     getEnv("DB_NAME", "legal_db"),

		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "all-minilm"),
		EmbedderTimeout: getEnvInt("EMBEDDER_TIMEOUT", 30),

		LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.1"),
		OpenAIAPIKey:  getSecret("OPENAI_API_KEY", "OPENAI_API_KEY_FILE", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),
		GeminiAPIKey:  getSecret("GEMINI_API_KEY", "GEMINI_API_KEY_FILE", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		LLMMaxTokens:  getEnvInt("LLM_MAX_TOKENS", 2000),
		LLMTimeout:    getEnvInt("LLM_TIMEOUT", 120),
		LLMRateLimit:  getEnvFloat("LLM_RATE_LIMIT", 2.0),
		LLMRateBurst:  getEnvInt("LLM_RATE_BURST", 4),

		KeywordSearchURL:     getEnv("KEYWORD_SEARCH_URL", "http://keyword-indexer:9021"),
		KeywordSearchTimeout: getEnvInt("KEYWORD_SEARCH_TIMEOUT", 10),

		RerankURL:     getEnv("RERANK_URL", "http://cross-encoder:9022"),
		RerankModel:   getEnv("RERANK_MODEL", "ms-marco-MiniLM-L-12-v2"),
		RerankTimeout: getEnvInt("RERANK_TIMEOUT", 30),

		VectorWeight:     getEnvFloat("VECTOR_WEIGHT", 0.6),
		KeywordWeight:    getEnvFloat("KEYWORD_WEIGHT", 0.4),
		RetrieveTopK:     getEnvInt("RETRIEVE_TOP_K", 15),
		RerankTopK:       getEnvInt("RERANK_TOP_K", 5),
		MaxContextTokens: getEnvInt("MAX_CONTEXT_TOKENS", 8000),

		CacheSize:       getEnvInt("ANSWER_CACHE_SIZE", 256),
		CacheTTLMinutes: getEnvInt("ANSWER_CACHE_TTL_MINUTES", 15),

		OTelEnabled: getEnvBool("OTEL_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
