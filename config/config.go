package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the search and chat core
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Providers ProvidersConfig `mapstructure:"providers"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Search    SearchConfig    `mapstructure:"search"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server and auth settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
	// JWTSecret verifies bearer tokens issued by the auth service.
	// Empty means the API is open.
	JWTSecret   string `mapstructure:"jwt_secret"`
	RequireAuth bool   `mapstructure:"require_auth"`
	// FrontendBaseURL is used when formatting "read full article" links.
	FrontendBaseURL string `mapstructure:"frontend_base_url"`
}

// ProvidersConfig contains external search provider credentials
type ProvidersConfig struct {
	Google GoogleSearchConfig `mapstructure:"google"`
	Serper SerperConfig       `mapstructure:"serper"`
	Brave  BraveConfig        `mapstructure:"brave"`
}

// GoogleSearchConfig configures the Google Custom Search provider
type GoogleSearchConfig struct {
	APIKey         string `mapstructure:"api_key"`
	SearchEngineID string `mapstructure:"search_engine_id"`
	Endpoint       string `mapstructure:"endpoint"`
}

// SerperConfig configures the serper.dev provider
type SerperConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

// BraveConfig configures the Brave Search provider
type BraveConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

// OpenAIConfig configures the LLM backend
type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// SearchConfig bounds the hybrid search pipeline
type SearchConfig struct {
	// ProviderTimeout caps a single provider call so one slow source
	// cannot stall the whole aggregate.
	ProviderTimeout    time.Duration `mapstructure:"provider_timeout"`
	MaxExternalResults int           `mapstructure:"max_external_results"`
	MaxLocalResults    int           `mapstructure:"max_local_results"`
}

// ChatConfig bounds chat sessions and their history
type ChatConfig struct {
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	HistoryCap  int           `mapstructure:"history_cap"`
	HistoryKeep int           `mapstructure:"history_keep"`
	// SessionStore selects the backend: "inmemory" or "redis".
	SessionStore string `mapstructure:"session_store"`
}

// StorageConfig contains persistence settings
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains the article store connection settings
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a postgres connection string from the configured fields.
func (p PostgresConfig) DSN() (string, error) {
	if p.URL != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.DBName == "" {
		return "", fmt.Errorf("postgres not configured (storage.postgres.host/dbname or url)")
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl), nil
}

// RedisConfig contains the optional redis session store settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Validate checks the settings the core cannot run without. Provider and
// LLM keys are checked at construction time by their packages.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Chat.HistoryKeep > c.Chat.HistoryCap {
		return fmt.Errorf("chat.history_keep (%d) must not exceed chat.history_cap (%d)", c.Chat.HistoryKeep, c.Chat.HistoryCap)
	}
	switch c.Chat.SessionStore {
	case "inmemory", "redis":
	default:
		return fmt.Errorf("chat.session_store must be inmemory or redis, got %q", c.Chat.SessionStore)
	}
	if c.Chat.SessionStore == "redis" && c.Storage.Redis.Addr == "" {
		return fmt.Errorf("storage.redis.addr is required for the redis session store")
	}
	return nil
}

// LoadConfig reads configuration from file and environment.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("json")

	viper.SetDefault("server.address", ":10002")
	viper.SetDefault("server.frontend_base_url", "http://localhost:3000")
	viper.SetDefault("openai.model", "gpt-4o")
	viper.SetDefault("openai.base_url", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("openai.temperature", 0.2)
	viper.SetDefault("openai.max_tokens", 1024)
	viper.SetDefault("openai.timeout", 30*time.Second)
	viper.SetDefault("search.provider_timeout", 8*time.Second)
	viper.SetDefault("search.max_external_results", 10)
	viper.SetDefault("search.max_local_results", 50)
	viper.SetDefault("chat.session_ttl", time.Hour)
	viper.SetDefault("chat.history_cap", 20)
	viper.SetDefault("chat.history_keep", 10)
	viper.SetDefault("chat.session_store", "inmemory")

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
		viper.AddConfigPath(filepath.Join(exeDir, "..", "config"))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("VESTNIK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match (VESTNIK_*)

	if err := viper.ReadInConfig(); err != nil {
		// config file is optional; env and defaults may be enough
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
