package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Survey   SurveyConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Version            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini     string
	EmbedReviewTopic string // Watermill topic for review embedding
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string // e.g. "llama3", "qwen2.5"
}

// SurveyConfig holds the interview envelope and ranking knobs.
type SurveyConfig struct {
	MinQuestions        int
	MaxQuestions        int
	SkipLimit           int
	CandidateCount      int
	TopKEvidence        int
	SimilarityThreshold float64
	GuardBackend        string // "memory" or "redis"
	GuardTTLSeconds     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Version:            getEnv("APP_VERSION", "dev"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EmbedReviewTopic: getEnv("EMBED_REVIEW_TOPIC_NAME", "EMBED_REVIEW"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
		},
		Survey: SurveyConfig{
			MinQuestions:        getEnvAsInt("SURVEY_MIN_QUESTIONS", 3),
			MaxQuestions:        getEnvAsInt("SURVEY_MAX_QUESTIONS", 7),
			SkipLimit:           getEnvAsInt("SURVEY_SKIP_LIMIT", 2),
			CandidateCount:      getEnvAsInt("SURVEY_CANDIDATE_COUNT", 3),
			TopKEvidence:        getEnvAsInt("SURVEY_TOP_K_EVIDENCE", 8),
			SimilarityThreshold: getEnvAsFloat("SURVEY_SIMILARITY_THRESHOLD", 0.7),
			GuardBackend:        getEnv("SURVEY_GUARD_BACKEND", "memory"),
			GuardTTLSeconds:     getEnvAsInt("SURVEY_GUARD_TTL_SECONDS", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
