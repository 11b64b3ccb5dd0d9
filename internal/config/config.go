package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port             int           `mapstructure:"PORT"`
	GinMode          string        `mapstructure:"GIN_MODE"`
	Debug            bool          `mapstructure:"DEBUG"`
	DebugEndpoints   bool          `mapstructure:"DEBUG_ENDPOINTS"`
	CORSOrigins      string        `mapstructure:"CORS_ORIGINS"`
	GeminiAPIKey     string        `mapstructure:"GEMINI_API_KEY"`
	GeminiBaseURL    string        `mapstructure:"GEMINI_BASE_URL"`
	GeminiModel      string        `mapstructure:"GEMINI_MODEL"`
	GeminiImageModel string        `mapstructure:"GEMINI_IMAGE_MODEL"`
	StoryWordLimit   int           `mapstructure:"STORY_WORD_LIMIT"`
	ProviderTimeout  time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	ImageTimeout     time.Duration `mapstructure:"IMAGE_TIMEOUT"`
	PartyIdleTTL     time.Duration `mapstructure:"PARTY_IDLE_TTL"`
	ReaperInterval   time.Duration `mapstructure:"REAPER_INTERVAL"`
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`

	// EnvFile is the .env file that was read, empty when none was found.
	EnvFile string `mapstructure:"-"`
}

var defaults = map[string]any{
	"PORT":               3000,
	"GIN_MODE":           "release",
	"DEBUG":              false,
	"DEBUG_ENDPOINTS":    false,
	"CORS_ORIGINS":       "*",
	"GEMINI_API_KEY":     "",
	"GEMINI_BASE_URL":    "https://generativelanguage.googleapis.com/v1beta",
	"GEMINI_MODEL":       "gemini-2.0-flash",
	"GEMINI_IMAGE_MODEL": "gemini-2.5-flash-image",
	"STORY_WORD_LIMIT":   30,
	"PROVIDER_TIMEOUT":   5 * time.Second,
	"IMAGE_TIMEOUT":      15 * time.Second,
	"PARTY_IDLE_TTL":     time.Duration(0),
	"REAPER_INTERVAL":    time.Minute,
	"DATABASE_URL":       "",
}

// LoadConfig loads the configuration from command-line flags, environment
// variables and a .env file, in that order of precedence. args excludes the
// program name.
func LoadConfig(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("partytale", pflag.ContinueOnError)
	fs.Int("port", 3000, "HTTP listen port")
	fs.String("config-dir", ".", "directory holding the .env file")
	fs.Bool("debug", false, "verbose logging and gin debug mode")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := v.BindPFlag("PORT", fs.Lookup("port")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("DEBUG", fs.Lookup("debug")); err != nil {
		return nil, err
	}

	configDir, _ := fs.GetString("config-dir")
	v.AddConfigPath(configDir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	} else {
		cfg.EnvFile = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if cfg.Debug {
		cfg.GinMode = "debug"
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid PORT %d", c.Port)
	case c.StoryWordLimit <= 0:
		return fmt.Errorf("STORY_WORD_LIMIT must be positive, got %d", c.StoryWordLimit)
	case c.ProviderTimeout <= 0:
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %s", c.ProviderTimeout)
	case c.ImageTimeout <= 0:
		return fmt.Errorf("IMAGE_TIMEOUT must be positive, got %s", c.ImageTimeout)
	case c.PartyIdleTTL < 0:
		return fmt.Errorf("PARTY_IDLE_TTL must not be negative, got %s", c.PartyIdleTTL)
	case c.PartyIdleTTL > 0 && c.ReaperInterval <= 0:
		return fmt.Errorf("REAPER_INTERVAL must be positive when PARTY_IDLE_TTL is set, got %s", c.ReaperInterval)
	}
	return nil
}
