package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by bit.
const EnvPrefix = "BIT"

// Config holds the application configuration loaded from flags,
// environment, .env files and the optional config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Home is the application directory. Empty means ~/.binance-icons-toolkit.
	Home string

	Workers        int
	IconsBaseURL   string
	RepositoryURL  string
	ExchangeURL    string
	PackageVersion string

	// SVGO is the svgo executable, looked up in PATH when empty.
	SVGO string

	// Logging configuration. LogLevel is the --log-level flag; EnvLogLevel
	// comes from LOG_LEVEL or the config file and ranks below -v and -q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. BIT_* environment variables
//  3. .env and .env.local
//  4. configFile, or ~/.bit.yaml when configFile is empty
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("workers", constants.DefaultWorkers)
	v.SetDefault("icons_base_url", constants.IconsBaseURL)
	v.SetDefault("repository_url", constants.RepositoryURL)
	v.SetDefault("exchange_url", constants.ExchangeURL)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("." + constants.AppName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "cannot read config file", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Home:           v.GetString("home"),
		Workers:        v.GetInt("workers"),
		IconsBaseURL:   v.GetString("icons_base_url"),
		RepositoryURL:  v.GetString("repository_url"),
		ExchangeURL:    v.GetString("exchange_url"),
		PackageVersion: v.GetString("package_version"),
		SVGO:           v.GetString("svgo"),

		EnvLogLevel: getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}

	if config.Workers <= 0 {
		config.Workers = constants.DefaultWorkers
	}
	if config.Workers > constants.MaxWorkers {
		config.Workers = constants.MaxWorkers
	}

	return config, nil
}

// UpdateFromFlags applies parsed flags on top of the loaded values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads .env files. Existing variables are not overridden;
// .env.local is read after .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
