package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration. It is loaded once at process start
// and passed explicitly to every component; there is no global settings object.
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	OpenAI   OpenAIConfig
	Assembly AssemblyAIConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// AnalysisConfig holds pipeline limits and extraction caps.
type AnalysisConfig struct {
	MaxFileSizeBytes    int64  `envconfig:"MAX_FILE_SIZE" default:"26214400"` // 25 MiB
	MaxAudioDuration    int    `envconfig:"MAX_AUDIO_DURATION" default:"600"` // seconds
	TargetSampleRate    int    `envconfig:"TARGET_SAMPLE_RATE" default:"16000"`
	SupportedFormats    string `envconfig:"SUPPORTED_FORMATS" default:"mp3,wav,m4a,mp4,ogg,flac,webm"`
	MaxActionItems      int    `envconfig:"MAX_ACTION_ITEMS" default:"10"`
	MaxDecisions        int    `envconfig:"MAX_DECISIONS" default:"5"`
	MaxTopics           int    `envconfig:"MAX_TOPICS" default:"5"`
	TranscriberProvider string `envconfig:"TRANSCRIBER_PROVIDER" default:"openai"`
}

// OpenAIConfig holds OpenAI API configuration.
type OpenAIConfig struct {
	APIKey         string `envconfig:"OPENAI_API_KEY"`
	BaseURL        string `envconfig:"OPENAI_API_URL" default:"https://api.openai.com"`
	ChatModel      string `envconfig:"OPENAI_CHAT_MODEL" default:"gpt-4o-mini"`
	WhisperModel   string `envconfig:"OPENAI_WHISPER_MODEL" default:"whisper-1"`
	TimeoutSeconds int    `envconfig:"OPENAI_TIMEOUT" default:"60"`
}

// AssemblyAIConfig holds AssemblyAI API configuration.
type AssemblyAIConfig struct {
	APIKey         string `envconfig:"ASSEMBLYAI_API_KEY"`
	BaseURL        string `envconfig:"ASSEMBLYAI_API_URL" default:"https://api.assemblyai.com"`
	TimeoutSeconds int    `envconfig:"ASSEMBLYAI_TIMEOUT" default:"30"`
}

// RedisConfig holds Redis configuration for session status tracking.
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds object storage configuration for report archival.
// Archival is disabled when Endpoint is empty.
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meetinglens-reports"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// AuthConfig holds bearer-token auth configuration.
// Auth is disabled when Secret is empty.
type AuthConfig struct {
	Secret string `envconfig:"AUTH_JWT_SECRET"`
}

// Load loads configuration from the environment, reading .env first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analysis.MaxFileSizeBytes <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.Analysis.MaxAudioDuration <= 0 {
		return fmt.Errorf("MAX_AUDIO_DURATION must be positive")
	}
	switch c.Analysis.TranscriberProvider {
	case "openai", "assemblyai":
	default:
		return fmt.Errorf("TRANSCRIBER_PROVIDER must be openai or assemblyai, got %q", c.Analysis.TranscriberProvider)
	}
	return nil
}

// ValidateAPIKey reports whether the configured transcription/LLM credentials
// look usable. OpenAI keys are expected to carry the sk- prefix.
func (c *Config) ValidateAPIKey() bool {
	switch c.Analysis.TranscriberProvider {
	case "assemblyai":
		if c.Assembly.APIKey == "" {
			return false
		}
	}
	if c.OpenAI.APIKey == "" {
		return false
	}
	return strings.HasPrefix(c.OpenAI.APIKey, "sk-")
}

// SupportedFormatsList returns the supported extensions, lowercased, without dots.
func (c *Config) SupportedFormatsList() []string {
	parts := strings.Split(c.Analysis.SupportedFormats, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetRedisAddr returns the Redis address.
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
