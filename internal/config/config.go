package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvConfig names the env var pointing at an explicit config file.
const EnvConfig = "DALIL_CONFIG"

// Config holds application configuration.
type Config struct {
	Data      DataConfig
	Database  DatabaseConfig
	Generator GeneratorConfig
	Wizard    WizardConfig
	Extract   ExtractConfig
	Trace     TraceConfig
}

// DataConfig holds the base directory for logs and exports.
type DataConfig struct {
	Dir string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// GeneratorConfig selects and configures the auto-fill generator.
type GeneratorConfig struct {
	Provider  string
	Model     string
	APIKey    string `mapstructure:"api_key"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	BaseURL   string `mapstructure:"base_url"`
}

// WizardConfig controls the cosmetic progress loop.
type WizardConfig struct {
	Step     int
	Interval time.Duration
}

// ExtractConfig toggles the text-extraction helper.
type ExtractConfig struct {
	Enabled bool
}

// TraceConfig configures OTLP export of generation runs. An empty endpoint
// defers to OTEL_EXPORTER_OTLP_ENDPOINT.
type TraceConfig struct {
	Endpoint string
	Insecure bool
}

// ResolvedAPIKey returns the configured key, falling back to the env var named by APIKeyEnv.
func (g GeneratorConfig) ResolvedAPIKey() string {
	if g.APIKey != "" {
		return g.APIKey
	}
	if g.APIKeyEnv != "" {
		return os.Getenv(g.APIKeyEnv)
	}
	return ""
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dalil"
	}
	return filepath.Join(home, ".local", "share", "dalil")
}

// Load reads configuration from file and env. Env var overrides use prefix DALIL_.
// path, when non-empty, wins over DALIL_CONFIG and the default location.
func Load(path string) (Config, error) {
	v := viper.New()

	dataDir := defaultDataDir()
	v.SetDefault("data.dir", dataDir)
	v.SetDefault("database.path", "")
	v.SetDefault("generator.provider", "simulated")
	v.SetDefault("generator.model", "gpt-4o-mini")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("wizard.step", 10)
	v.SetDefault("wizard.interval", "300ms")
	v.SetDefault("extract.enabled", true)
	v.SetDefault("trace.endpoint", "")
	v.SetDefault("trace.insecure", true)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dalil"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DALIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Database.Path == "" {
		c.Database.Path = filepath.Join(c.Data.Dir, "dalil.db")
	}
	return c, nil
}
