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
	Upload   UploadConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type UploadConfig struct {
	Dir          string
	MaxSizeBytes int
}

type APIKeys struct {
	GoogleGemini     string
	WorkspaceTopic   string // In-process topic for workspace events
	JwtSecret        string
	SessionStorePath string
}

type AIConfig struct {
	LLMProvider     string // "gemini" or "ollama"
	LLMModel        string // e.g. "gemini-2.0-flash", "llama3"
	OllamaBaseURL   string
	DisplayLanguage string // Language for mind map labels; quotes stay verbatim
	MindmapTextCap  int
	DeepDiveTextCap int
	ChatTextCap     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "./uploads"),
			MaxSizeBytes: getEnvAsInt("UPLOAD_MAX_SIZE_BYTES", 50*1024*1024),
		},
		Keys: APIKeys{
			GoogleGemini:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			WorkspaceTopic:   getEnv("WORKSPACE_EVENTS_TOPIC_NAME", "WORKSPACE_EVENTS"),
			JwtSecret:        getEnv("JWT_SECRET", ""),
			SessionStorePath: getEnv("SESSION_STORE_PATH", "sessions.db"),
		},
		Ai: AIConfig{
			LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:        getEnv("LLM_MODEL", "gemini-2.0-flash"),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			DisplayLanguage: getEnv("MINDMAP_DISPLAY_LANGUAGE", "Simplified Chinese (简体中文)"),
			MindmapTextCap:  getEnvAsInt("MINDMAP_TEXT_CAP", 300000),
			DeepDiveTextCap: getEnvAsInt("DEEPDIVE_TEXT_CAP", 8000),
			ChatTextCap:     getEnvAsInt("CHAT_TEXT_CAP", 5000),
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
