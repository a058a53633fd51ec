package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/boxoffice/internal/cmd/globals"
	"github.com/agentstation/boxoffice/internal/letters"
	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
)

// EnvPrefix is prepended to every environment variable the CLI reads.
const EnvPrefix = "BOXOFFICE"

// DefaultInput is the bootstrap file read when none is configured.
const DefaultInput = "input.txt"

// Config holds the application configuration loaded from config files,
// environment variables, .env files and command-line flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Box office configuration
	Input        string
	Letters      string
	Sample       bool
	HoldingLimit int
	MaxRetries   int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (BOXOFFICE_*)
// 3. .env files
// 4. Config file (~/.boxoffice.yaml or ./.boxoffice.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// LoadConfigFile is LoadConfig with an explicit config file, which must exist.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile == "" {
		configFile = v.GetString("config")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".boxoffice")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot parse config file", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Input:        v.GetString("input"),
		Letters:      v.GetString("letters"),
		Sample:       v.GetBool("sample"),
		HoldingLimit: v.GetInt("holding_limit"),
		MaxRetries:   v.GetInt("max_retries"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", DefaultInput)
	v.SetDefault("letters", letters.DefaultPath)
	v.SetDefault("holding_limit", ledger.DefaultHoldingLimit)
	v.SetDefault("max_retries", 0)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Validate checks values that cannot be corrected later.
func (c *Config) Validate() error {
	if c.HoldingLimit <= 0 {
		return errors.NewConfigError("holding_limit", "must be positive", nil)
	}
	if c.MaxRetries < 0 {
		return errors.NewConfigError("max_retries", "must not be negative", nil)
	}
	return nil
}

// UpdateFromFlags copies explicitly set flags over the loaded values so
// that flags take precedence over config files and environment variables.
func (c *Config) UpdateFromFlags(flags *globals.Flags, changed func(name string) bool) {
	if changed("verbose") {
		c.Verbose = flags.Verbose
	}
	if changed("quiet") {
		c.Quiet = flags.Quiet
	}
	if changed("no-color") {
		c.NoColor = flags.NoColor
	}
	if changed("format") || changed("output") {
		c.Format = flags.Format
	}
	if changed("log-level") {
		c.LogLevel = flags.LogLevel
	}
	if changed("input") {
		c.Input = flags.Input
	}
	if changed("letters") {
		c.Letters = flags.Letters
	}
	if changed("sample") {
		c.Sample = flags.Sample
	}
	if changed("config") {
		c.ConfigFile = flags.ConfigFile
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env; neither overrides the real environment
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
