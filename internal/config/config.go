package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	AllowedOrigins []string      `yaml:"allowed_origins"` // CORS; ["*"] means any
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type AdminConfig struct {
	JWTSecret string `yaml:"jwt_secret"` // HS256; tokens minted by the external auth provider
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AIConfig struct {
	OpenAIKey       string `yaml:"openai_key"`
	OpenAIModel     string `yaml:"openai_model"`
	AnthropicKey    string `yaml:"anthropic_key"`
	AnthropicModel  string `yaml:"anthropic_model"`
	GeminiKey       string `yaml:"gemini_key"`
	GeminiModel     string `yaml:"gemini_model"`
	ConcurrentLimit int    `yaml:"concurrent_limit"` // max concurrent text-generation calls
}

type MediaConfig struct {
	ReplicateKey     string `yaml:"replicate_key"`
	ReplicateVersion string `yaml:"replicate_version"` // enhancement model version hash
	RunwayKey        string `yaml:"runway_key"`
	RunwayModel      string `yaml:"runway_model"`
	AssemblyAIKey    string `yaml:"assemblyai_key"`
	TavilyKey        string `yaml:"tavily_key"`
}

// PollConfig bounds every vendor poll loop. The original integration layer
// slept a fixed second forever; here both the cadence and the budget are
// explicit configuration.
type PollConfig struct {
	Interval    time.Duration `yaml:"interval"`
	MaxInterval time.Duration `yaml:"max_interval"`
	Multiplier  float64       `yaml:"multiplier"` // 1 disables backoff
	MaxWait     time.Duration `yaml:"max_wait"`
	MaxAttempts int           `yaml:"max_attempts"` // 0 = wall-clock bound only
}

type JobsConfig struct {
	Workers int `yaml:"workers"` // concurrent vendor jobs platform-wide
	Queue   int `yaml:"queue"`
}

type RateLimitConfig struct {
	Enabled   bool          `yaml:"enabled"`
	PerWindow int           `yaml:"per_window"`
	Window    time.Duration `yaml:"window"`
}

type SecretsConfig struct {
	// Manifest lists the credential names the availability registry checks.
	// Empty falls back to the built-in list below.
	Manifest []string `yaml:"manifest"`
}

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Server    ServerConfig    `yaml:"server"`
	Admin     AdminConfig     `yaml:"admin"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	AI        AIConfig        `yaml:"ai"`
	Media     MediaConfig     `yaml:"media"`
	Poll      PollConfig      `yaml:"poll"`
	Jobs      JobsConfig      `yaml:"jobs"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Secrets   SecretsConfig   `yaml:"secrets"`

	Runtime RuntimeConfig `yaml:"-"`
}

// DefaultSecretManifest is the fixed set of external-service credential
// names the registry advertises when config carries no manifest of its own.
var DefaultSecretManifest = []string{
	"OPENAI_API_KEY",
	"REPLICATE_API_KEY",
	"GETIMG_API_KEY",
	"RUNWAY_API_KEY",
	"HUGGINGFACE_API_KEY",
	"ANTHROPIC_API_KEY",
	"GEMINI_API_KEY",
	"MISTRAL_API_KEY",
	"ELEVENLABS_API_KEY",
	"ASSEMBLYAI_API_KEY",
	"WEBPILOT_API_KEY",
	"TAVILY_API_KEY",
	"E2B_API_KEY",
	"GITHUB_API_KEY",
	"ANYTHINGLLM_API_KEY",
	"GROQ_API_KEY",
}

func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 5 * time.Minute
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 16
	}
	if cfg.AI.OpenAIModel == "" {
		cfg.AI.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.AI.AnthropicModel == "" {
		cfg.AI.AnthropicModel = "claude-3-5-haiku-latest"
	}
	if cfg.AI.GeminiModel == "" {
		cfg.AI.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.Media.RunwayModel == "" {
		cfg.Media.RunwayModel = "gen3a_turbo"
	}
	if cfg.Poll.Interval <= 0 {
		cfg.Poll.Interval = time.Second
	}
	if cfg.Poll.MaxInterval <= 0 {
		cfg.Poll.MaxInterval = 10 * time.Second
	}
	if cfg.Poll.Multiplier < 1 {
		cfg.Poll.Multiplier = 1.5
	}
	if cfg.Poll.MaxWait <= 0 {
		cfg.Poll.MaxWait = 4 * time.Minute
	}
	if cfg.Jobs.Workers <= 0 {
		cfg.Jobs.Workers = 8
	}
	if cfg.Jobs.Queue <= 0 {
		cfg.Jobs.Queue = cfg.Jobs.Workers * 4
	}
	if cfg.RateLimit.PerWindow <= 0 {
		cfg.RateLimit.PerWindow = 30
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = time.Minute
	}
	if len(cfg.Secrets.Manifest) == 0 {
		cfg.Secrets.Manifest = DefaultSecretManifest
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)

	// Credentials come from the process environment by fixed names; the YAML
	// values only override for local development.
	cfg.AI.OpenAIKey = envOr(cfg.AI.OpenAIKey, "OPENAI_API_KEY")
	cfg.AI.AnthropicKey = envOr(cfg.AI.AnthropicKey, "ANTHROPIC_API_KEY")
	cfg.AI.GeminiKey = envOr(cfg.AI.GeminiKey, "GEMINI_API_KEY")
	cfg.Media.ReplicateKey = envOr(cfg.Media.ReplicateKey, "REPLICATE_API_KEY")
	cfg.Media.RunwayKey = envOr(cfg.Media.RunwayKey, "RUNWAY_API_KEY")
	cfg.Media.AssemblyAIKey = envOr(cfg.Media.AssemblyAIKey, "ASSEMBLYAI_API_KEY")
	cfg.Media.TavilyKey = envOr(cfg.Media.TavilyKey, "TAVILY_API_KEY")

	// Minimal validation
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Admin.JWTSecret == "" {
		cfg.Admin.JWTSecret = os.Getenv("ADMIN_JWT_SECRET")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func envOr(v, name string) string {
	if v != "" {
		return v
	}
	return os.Getenv(name)
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
