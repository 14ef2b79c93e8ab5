// Package config loads adaptiq settings from defaults, an optional YAML
// file, a .env file and ADAPTIQ_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/validate"
)

const (
	EnvPrefix       = "ADAPTIQ"
	DefaultBankPath = "dataset.csv"
	configName      = "adaptiq"
)

type Config struct {
	Bank     BankConfig       `mapstructure:"bank"`
	Database DatabaseConfig   `mapstructure:"database"`
	Log      LogConfig        `mapstructure:"log"`
	Server   ServerConfig     `mapstructure:"server"`
	Predict  PredictConfig    `mapstructure:"predict"`
	LLM      llm.Config       `mapstructure:"llm"`
	Policy   recommend.Policy `mapstructure:"-"`
}

type BankConfig struct {
	Path string `mapstructure:"path" json:"path" validate:"required"`
}

type DatabaseConfig struct {
	// Path is the SQLite file. Empty means the XDG data directory.
	Path string `mapstructure:"path" json:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" json:"format" validate:"oneof=text json"`
	// File, when set, receives log output instead of stderr.
	File string `mapstructure:"file" json:"file"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" json:"addr" validate:"required"`
	AppName         string        `mapstructure:"app_name" json:"app_name"`
	CORSOrigins     string        `mapstructure:"cors_origins" json:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" validate:"gt=0"`
}

type PredictConfig struct {
	ModelPath string `mapstructure:"model_path" json:"model_path"`
	UseLLM    bool   `mapstructure:"use_llm" json:"use_llm"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bank.path", DefaultBankPath)
	v.SetDefault("database.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.app_name", "adaptiq")
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("predict.model_path", "")
	v.SetDefault("predict.use_llm", true)

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	for name, model := range map[string]string{
		"anthropic":  d.Anthropic.Model,
		"openai":     d.OpenAI.Model,
		"gemini":     d.Gemini.Model,
		"openrouter": d.OpenRouter.Model,
	} {
		v.SetDefault("llm."+name+".model", model)
		v.SetDefault("llm."+name+".api_key", "")
	}
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.anthropic.base_url", "")
}

// bindEnv adds the short variable names on top of the automatic
// ADAPTIQ_<KEY> mapping.
func bindEnv(v *viper.Viper) error {
	binds := [][]string{
		{"bank.path", "ADAPTIQ_BANK_PATH", "ADAPTIQ_BANK"},
		{"database.path", "ADAPTIQ_DATABASE_PATH", "ADAPTIQ_DB"},
	}
	for _, p := range []string{"anthropic", "openai", "gemini", "openrouter"} {
		up := strings.ToUpper(p)
		binds = append(binds,
			[]string{"llm." + p + ".api_key", "ADAPTIQ_LLM_" + up + "_API_KEY", "ADAPTIQ_" + up + "_API_KEY"},
			[]string{"llm." + p + ".model", "ADAPTIQ_LLM_" + up + "_MODEL", "ADAPTIQ_" + up + "_MODEL"},
		)
	}
	binds = append(binds, []string{"llm.openai.base_url", "ADAPTIQ_LLM_OPENAI_BASE_URL", "ADAPTIQ_OPENAI_BASE_URL"})
	for _, b := range binds {
		if err := v.BindEnv(b...); err != nil {
			return err
		}
	}
	return nil
}

// NewViper builds the viper instance. configFile may be empty, in which
// case ./adaptiq.yaml and $XDG_CONFIG_HOME/adaptiq/adaptiq.yaml are tried
// and a missing file is not an error. A .env file in the working
// directory is loaded first without overriding the real environment.
func NewViper(configFile string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName(configName)
	v.AddConfigPath(".")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "adaptiq"), nil
}

// FromViper decodes and validates the full configuration.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	p, err := recommend.LoadPolicy(v)
	if err != nil {
		return nil, err
	}
	c.Policy = p
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load is NewViper followed by FromViper.
func Load(configFile string) (*viper.Viper, *Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, nil, err
	}
	c, err := FromViper(v)
	if err != nil {
		return nil, nil, err
	}
	return v, c, nil
}

// Validate checks field constraints. The LLM section is not checked
// here since a missing provider only disables AI features.
func (c *Config) Validate() error {
	val := validate.New()
	sections := []struct {
		name string
		v    any
	}{
		{"bank", c.Bank},
		{"log", c.Log},
		{"server", c.Server},
	}
	for _, s := range sections {
		if err := val.Struct(s.v); err != nil {
			return fmt.Errorf("invalid %s config: %w", s.name, err)
		}
	}
	return c.Policy.Validate()
}

// DBPath returns the configured database path or the default location.
func (c *Config) DBPath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	return store.DefaultDBPath()
}
