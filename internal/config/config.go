package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teemow/sheetcheck/internal/logging"
)

// EnvPrefix is prepended to every environment variable, e.g.
// SHEETCHECK_CREDENTIALS_PATH.
const EnvPrefix = "SHEETCHECK"

// Setting keys. They double as flag names.
const (
	KeyProjectRoot     = "project-root"
	KeySecretsPath     = "secrets-path"
	KeyCredentialsPath = "credentials-path"
	KeySpreadsheet     = "spreadsheet"
	KeyDriveEndpoint   = "drive-endpoint"
	KeySheetsEndpoint  = "sheets-endpoint"
	KeyLogLevel        = "log-level"
	KeyLogFormat       = "log-format"
)

// Defaults match the layout of a Streamlit project using st-gsheets-connection.
const (
	DefaultProjectRoot     = "."
	DefaultSecretsPath     = ".streamlit/secrets.toml"
	DefaultCredentialsPath = "service-account.json"
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = logging.FormatText
)

// Config is the resolved configuration of a diagnostic run.
type Config struct {
	// ProjectRoot is the directory relative paths are resolved against
	ProjectRoot string

	// SecretsPath is the Streamlit secrets file
	SecretsPath string

	// CredentialsPath is the service-account key file
	CredentialsPath string

	// Spreadsheet is an optional spreadsheet ID or URL to open after listing
	Spreadsheet string

	// DriveEndpoint and SheetsEndpoint override the API base URLs (e.g. for
	// a private API gateway). Empty means the public Google endpoints.
	DriveEndpoint  string
	SheetsEndpoint string

	LogLevel  string
	LogFormat string
}

// New returns a viper instance with sheetcheck defaults and environment
// binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyProjectRoot, DefaultProjectRoot)
	v.SetDefault(KeySecretsPath, DefaultSecretsPath)
	v.SetDefault(KeyCredentialsPath, DefaultCredentialsPath)
	v.SetDefault(KeySpreadsheet, "")
	v.SetDefault(KeyDriveEndpoint, "")
	v.SetDefault(KeySheetsEndpoint, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	return v
}

// BindFlags registers the check flags on flags and binds them to v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.String(KeyProjectRoot, DefaultProjectRoot, "Directory the secrets and credentials paths are relative to. Can also use SHEETCHECK_PROJECT_ROOT env var.")
	flags.String(KeySecretsPath, DefaultSecretsPath, "Path to the Streamlit secrets file. Can also use SHEETCHECK_SECRETS_PATH env var.")
	flags.String(KeyCredentialsPath, DefaultCredentialsPath, "Path to the service-account key file. Can also use SHEETCHECK_CREDENTIALS_PATH env var.")
	flags.String(KeySpreadsheet, "", "Spreadsheet ID or URL to open after listing (default: connections.gsheets.spreadsheet from the secrets file). Can also use SHEETCHECK_SPREADSHEET env var.")
	flags.String(KeyLogLevel, DefaultLogLevel, "Log level for diagnostic logs on stderr: debug, info, warn, error")
	flags.String(KeyLogFormat, DefaultLogFormat, "Log format for diagnostic logs on stderr: text or json")

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration out of v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ProjectRoot:     strings.TrimSpace(v.GetString(KeyProjectRoot)),
		SecretsPath:     strings.TrimSpace(v.GetString(KeySecretsPath)),
		CredentialsPath: strings.TrimSpace(v.GetString(KeyCredentialsPath)),
		Spreadsheet:     strings.TrimSpace(v.GetString(KeySpreadsheet)),
		DriveEndpoint:   strings.TrimSpace(v.GetString(KeyDriveEndpoint)),
		SheetsEndpoint:  strings.TrimSpace(v.GetString(KeySheetsEndpoint)),
		LogLevel:        strings.TrimSpace(v.GetString(KeyLogLevel)),
		LogFormat:       strings.TrimSpace(v.GetString(KeyLogFormat)),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.ProjectRoot == "" {
		return fmt.Errorf("%s must not be empty", KeyProjectRoot)
	}
	if c.SecretsPath == "" {
		return fmt.Errorf("%s must not be empty", KeySecretsPath)
	}
	if c.CredentialsPath == "" {
		return fmt.Errorf("%s must not be empty", KeyCredentialsPath)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON, "":
	default:
		return fmt.Errorf("unknown log format %q, must be one of: text, json", c.LogFormat)
	}
	return nil
}

// Resolve returns path joined to ProjectRoot, unless path is absolute.
func (c Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectRoot, path)
}

// SecretsFile returns the resolved secrets file path.
func (c Config) SecretsFile() string {
	return c.Resolve(c.SecretsPath)
}

// CredentialsFile returns the resolved service-account key path.
func (c Config) CredentialsFile() string {
	return c.Resolve(c.CredentialsPath)
}
