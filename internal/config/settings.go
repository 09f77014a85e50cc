package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Settings is the runtime configuration of the service.
// Values are resolved as defaults, then the optional YAML file, then the environment (.env included).
type Settings struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`

	Provider             string  `yaml:"llm_provider"`
	OpenAIAPIKey         string  `yaml:"openai_api_key"`
	OpenAIModel          string  `yaml:"openai_model"`
	OpenAIEmbeddingModel string  `yaml:"openai_embedding_model"`
	GeminiAPIKey         string  `yaml:"gemini_api_key"`
	GeminiModel          string  `yaml:"gemini_model"`
	GeminiEmbeddingModel string  `yaml:"gemini_embedding_model"`
	AITimeoutSeconds     float64 `yaml:"ai_http_timeout"`

	DocsDir          string `yaml:"docs_dir"`
	DocsExtraFormats bool   `yaml:"docs_extra_formats"`
	IndexPersistDir  string `yaml:"index_persist_dir"`
	RagTopK          int    `yaml:"rag_top_k"`
	QdrantHost       string `yaml:"qdrant_host"`
	QdrantPort       int    `yaml:"qdrant_port"`

	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	CacheBackend    string `yaml:"cache_backend"`
	RedisAddr       string `yaml:"redis_addr"`
	RedisPassword   string `yaml:"redis_password"`

	AuthToken        string `yaml:"ai_service_token"`
	RateLimitEnabled bool   `yaml:"rate_limit_enabled"`
}

func Defaults() Settings {
	return Settings{
		AppEnv:               "development",
		LogLevel:             "debug",
		Provider:             ProviderOpenAI,
		OpenAIModel:          "gpt-5-nano",
		OpenAIEmbeddingModel: "text-embedding-3-small",
		GeminiModel:          "gemini-2.5-flash-lite",
		GeminiEmbeddingModel: "gemini-embedding-001",
		AITimeoutSeconds:     45.0,
		DocsDir:              "./docs",
		IndexPersistDir:      "./data/chroma",
		RagTopK:              5,
		QdrantPort:           QdrantGrpcPort,
		CacheTTLSeconds:      0,
		CacheBackend:         CacheBackendMemory,
		RedisAddr:            DefaultRedisAddr,
	}
}

// Load resolves Settings. configPath may be empty; a missing .env file is not an error.
func Load(configPath string) (Settings, error) {
	s := Defaults()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return s, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return s, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := s.applyEnv(); err != nil {
		return s, err
	}
	return s, s.Validate()
}

func (s *Settings) applyEnv() error {
	setString(&s.AppEnv, "APP_ENV")
	setString(&s.LogLevel, "LOG_LEVEL")
	setString(&s.Provider, "LLM_PROVIDER")
	setString(&s.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&s.OpenAIModel, "OPENAI_MODEL")
	setString(&s.OpenAIEmbeddingModel, "OPENAI_EMBEDDING_MODEL")
	setString(&s.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&s.GeminiModel, "GEMINI_MODEL")
	setString(&s.GeminiEmbeddingModel, "GEMINI_EMBEDDING_MODEL")
	setString(&s.DocsDir, "DOCS_DIR")
	setString(&s.IndexPersistDir, "CHROMA_PERSIST_DIR")
	setString(&s.IndexPersistDir, "INDEX_PERSIST_DIR")
	setString(&s.QdrantHost, "QDRANT_HOST")
	setString(&s.CacheBackend, "CACHE_BACKEND")
	setString(&s.RedisAddr, "REDIS_ADDR")
	setString(&s.RedisPassword, "REDIS_PASSWORD")
	setString(&s.AuthToken, "AI_SERVICE_TOKEN")

	if v, ok := lookup("AI_HTTP_TIMEOUT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("AI_HTTP_TIMEOUT: %w", err)
		}
		s.AITimeoutSeconds = f
	}
	for key, target := range map[string]*int{
		"RAG_TOP_K":         &s.RagTopK,
		"QDRANT_PORT":       &s.QdrantPort,
		"CACHE_TTL_SECONDS": &s.CacheTTLSeconds,
	} {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*target = n
		}
	}
	for key, target := range map[string]*bool{
		"DOCS_EXTRA_FORMATS": &s.DocsExtraFormats,
		"RATE_LIMIT_ENABLED": &s.RateLimitEnabled,
	} {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*target = b
		}
	}
	return nil
}

func (s *Settings) Validate() error {
	s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))
	if s.Provider != ProviderOpenAI && s.Provider != ProviderGemini {
		return fmt.Errorf("unsupported llm_provider %q", s.Provider)
	}
	s.CacheBackend = strings.ToLower(strings.TrimSpace(s.CacheBackend))
	if s.CacheBackend != CacheBackendMemory && s.CacheBackend != CacheBackendRedis {
		return fmt.Errorf("unsupported cache_backend %q", s.CacheBackend)
	}
	if s.AITimeoutSeconds <= 0 {
		return errors.New("ai_http_timeout must be positive")
	}
	if s.RagTopK <= 0 {
		return errors.New("rag_top_k must be positive")
	}
	return nil
}

// APIKey is the stripped credential of the configured provider.
func (s Settings) APIKey() string {
	if s.Provider == ProviderGemini {
		return strings.TrimSpace(s.GeminiAPIKey)
	}
	return strings.TrimSpace(s.OpenAIAPIKey)
}

// Model is the generation model reported to clients.
func (s Settings) Model() string {
	if s.Provider == ProviderGemini {
		return s.GeminiModel
	}
	return s.OpenAIModel
}

func (s Settings) EmbeddingModel() string {
	if s.Provider == ProviderGemini {
		return s.GeminiEmbeddingModel
	}
	return s.OpenAIEmbeddingModel
}

func (s Settings) AITimeout() time.Duration {
	return time.Duration(s.AITimeoutSeconds * float64(time.Second))
}

func (s Settings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

func (s Settings) IsProd() bool {
	return strings.EqualFold(s.AppEnv, "production")
}

// MissingCredentialMessage is the detail returned when no upstream key is configured.
func (s Settings) MissingCredentialMessage() string {
	if s.Provider == ProviderGemini {
		return "GEMINI_API_KEY is not set. Add GEMINI_API_KEY=... to a .env file in the project root, then restart the service."
	}
	return "OPENAI_API_KEY is not set. For Docker: add OPENAI_API_KEY=sk-... to a .env file " +
		"in the project root (next to docker-compose.yml), then run: docker compose up --build"
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func setString(target *string, key string) {
	if v, ok := lookup(key); ok {
		*target = v
	}
}
