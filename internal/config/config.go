package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/model"
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Auth      AuthConfig      `toml:"auth"`
	Drive     DriveConfig     `toml:"drive"`
	LLM       LLMConfig       `toml:"llm"`
	Assistant AssistantConfig `toml:"assistant"`
	Redis     RedisConfig     `toml:"redis"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

// AuthConfig holds the credential shapes. Exactly one of Installed, Web or
// ServiceAccount must be populated; the populated shape selects the strategy.
type AuthConfig struct {
	TokenFile      string               `toml:"token_file"`
	Installed      OAuthClientConfig    `toml:"installed"`
	Web            OAuthClientConfig    `toml:"web"`
	ServiceAccount ServiceAccountConfig `toml:"service_account"`
}

type OAuthClientConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	AuthURI      string `toml:"auth_uri"`
	TokenURI     string `toml:"token_uri"`
	RedirectURL  string `toml:"redirect_url"`
}

type ServiceAccountConfig struct {
	KeyFile string `toml:"key_file"`
}

type DriveConfig struct {
	DocumentIDs []string `toml:"document_ids"`
}

type LLMConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type AssistantConfig struct {
	Persona        string `toml:"persona"`
	FallbackPhrase string `toml:"fallback_phrase"`
	UnansweredLog  string `toml:"unanswered_log"`
}

type RedisConfig struct {
	Addr              string `toml:"addr"`
	Password          string `toml:"password"`
	DB                int    `toml:"db"`
	ContextTTLSeconds int    `toml:"context_ttl_seconds"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

// Validate fails fast on missing required keys, before any network call.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return fmt.Errorf("missing required config key %q (env GEMINI_API_KEY)", "llm.api_key")
	}
	if len(c.Drive.DocumentIDs) == 0 {
		return fmt.Errorf("missing required config key %q (env DOCUMENT_IDS)", "drive.document_ids")
	}
	for _, id := range c.Drive.DocumentIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("config key %q contains an empty document id", "drive.document_ids")
		}
	}
	shapes := 0
	if c.Auth.Installed.ClientID != "" {
		shapes++
	}
	if c.Auth.Web.ClientID != "" {
		shapes++
	}
	if c.Auth.ServiceAccount.KeyFile != "" {
		shapes++
	}
	if shapes == 0 {
		return fmt.Errorf("missing credential configuration: set one of %q, %q or %q",
			"auth.installed.client_id", "auth.web.client_id", "auth.service_account.key_file")
	}
	if shapes > 1 {
		return fmt.Errorf("ambiguous credential configuration: exactly one of %q, %q or %q may be set",
			"auth.installed", "auth.web", "auth.service_account")
	}
	if c.Assistant.FallbackPhrase == "" {
		return fmt.Errorf("missing required config key %q", "assistant.fallback_phrase")
	}
	return nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// DocumentIDs returns the configured ids in their configured order.
func (c *Config) DocumentIDs() []model.DocumentID {
	ids := make([]model.DocumentID, 0, len(c.Drive.DocumentIDs))
	for _, raw := range c.Drive.DocumentIDs {
		ids = append(ids, model.DocumentID(strings.TrimSpace(raw)))
	}
	return ids
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "agente-onboarding-b-one",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			TokenFile: "token.json",
			Installed: OAuthClientConfig{
				AuthURI:  "https://accounts.google.com/o/oauth2/auth",
				TokenURI: "https://oauth2.googleapis.com/token",
			},
			Web: OAuthClientConfig{
				AuthURI:  "https://accounts.google.com/o/oauth2/auth",
				TokenURI: "https://oauth2.googleapis.com/token",
			},
		},
		LLM: LLMConfig{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Model:   "gemini-1.5-flash",
		},
		Assistant: AssistantConfig{
			Persona: `Eres "B-One", el colega robot más enrollado de la empresa. Tu tono es informal, gamberro y positivo. Usa emojis. 😉
Basa tus respuestas ÚNICA Y EXCLUSIVAMENTE en la información de los documentos.
Si no encuentras la respuesta, di algo como: "Uups, sobre eso no me han pasado el chivatazo. Mejor pregúntale a un humano. 😅"`,
			FallbackPhrase: "Uups, sobre eso no me han pasado el chivatazo. Mejor pregúntale a un humano. 😅",
			UnansweredLog:  "unanswered_questions.log",
		},
		Redis: RedisConfig{
			Addr:              "",
			Password:          "",
			DB:                0,
			ContextTTLSeconds: 3600,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.TokenFile = getEnv("TOKEN_FILE", cfg.Auth.TokenFile)
	cfg.Auth.Installed.ClientID = getEnv("GOOGLE_OAUTH_CLIENT_ID", cfg.Auth.Installed.ClientID)
	cfg.Auth.Installed.ClientSecret = getEnv("GOOGLE_OAUTH_CLIENT_SECRET", cfg.Auth.Installed.ClientSecret)
	cfg.Auth.ServiceAccount.KeyFile = getEnv("GOOGLE_SA_KEY_FILE", cfg.Auth.ServiceAccount.KeyFile)

	if raw := getEnv("DOCUMENT_IDS", ""); raw != "" {
		cfg.Drive.DocumentIDs = splitAndTrim(raw)
	}

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("GEMINI_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)

	cfg.Assistant.Persona = getEnv("ASSISTANT_PERSONA", cfg.Assistant.Persona)
	cfg.Assistant.FallbackPhrase = getEnv("ASSISTANT_FALLBACK_PHRASE", cfg.Assistant.FallbackPhrase)
	cfg.Assistant.UnansweredLog = getEnv("UNANSWERED_LOG", cfg.Assistant.UnansweredLog)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.ContextTTLSeconds = getEnvAsInt("REDIS_CONTEXT_TTL_SECONDS", cfg.Redis.ContextTTLSeconds)
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
