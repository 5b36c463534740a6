package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Record sources
const (
	SourceSheets   = "sheets"
	SourcePostgres = "postgres"
)

// Output formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Environment variables that override file values
const (
	EnvDatabaseURL     = "DATABASE_URL"
	EnvEmailSender     = "MATCH_EMAIL_SENDER"
	EnvEmailRecipients = "MATCH_EMAIL_RECIPIENTS"
)

const (
	defaultChallengeHeader = "Smartsheet-Hook-Challenge"
	defaultEmailSubject    = "Shelter Connect: Potential Matches"
	defaultServerAddr      = ":8080"
	defaultOutputDir       = "output"
	defaultGmailUserID     = "me"
)

// ServerConfig configures the HTTP trigger
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ChallengeHeader string `yaml:"challengeHeader"`
}

// ScheduleConfig configures recurring runs
type ScheduleConfig struct {
	RRule string `yaml:"rrule"`
}

// Config represents the application configuration
type Config struct {
	Source string `yaml:"source" validate:"required,oneof=sheets postgres"`

	ReferralSheetID string `yaml:"referralSheetID" validate:"required_if=Source sheets"`
	ReferralTab     string `yaml:"referralTab" validate:"required_if=Source sheets"`
	ShelterSheetID  string `yaml:"shelterSheetID" validate:"required_if=Source sheets"`
	ShelterTab      string `yaml:"shelterTab" validate:"required_if=Source sheets"`
	BedSheetID      string `yaml:"bedSheetID" validate:"required_if=Source sheets"`
	BedTab          string `yaml:"bedTab" validate:"required_if=Source sheets"`

	DatabaseURL string `yaml:"databaseURL" validate:"required_if=Source postgres"`

	GmailUserID     string   `yaml:"gmailUserID"`
	EmailSender     string   `yaml:"emailSender" validate:"omitempty,email"`
	EmailRecipients []string `yaml:"emailRecipients" validate:"dive,email"`
	EmailSubject    string   `yaml:"emailSubject"`

	OutputDir    string `yaml:"outputDir"`
	OutputFormat string `yaml:"outputFormat" validate:"omitempty,oneof=xlsx csv"`

	Server   ServerConfig   `yaml:"server"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads the configuration for an environment.
// env="test" looks for shelter_match_config.test.yaml; a .env file in the
// working directory is loaded first so its variables can override file values.
func LoadWithEnv(env string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads, applies environment overrides to, and validates the configuration at path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Schedule.RRule != "" {
		if _, err := rrule.StrToRRule(cfg.Schedule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in schedule: %w", err)
		}
	}

	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv(EnvEmailSender); v != "" {
		cfg.EmailSender = v
	}
	if v := os.Getenv(EnvEmailRecipients); v != "" {
		cfg.EmailRecipients = splitList(v)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.GmailUserID == "" {
		cfg.GmailUserID = defaultGmailUserID
	}
	if cfg.EmailSubject == "" {
		cfg.EmailSubject = defaultEmailSubject
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = FormatXLSX
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultServerAddr
	}
	if cfg.Server.ChallengeHeader == "" {
		cfg.Server.ChallengeHeader = defaultChallengeHeader
	}
}

// splitList splits a comma separated environment value, dropping blanks
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// findConfigFile locates the config file for env
// If env is provided, it adds it as an extension (e.g., "shelter_match_config.test.yaml")
func findConfigFile(env string) (string, error) {
	return findFile(envFileName("shelter_match_config", env, "yaml"))
}

func envFileName(base, env, ext string) string {
	if env == "" {
		return base + "." + ext
	}
	return base + "." + env + "." + ext
}

// findFile searches for name in the current directory, then the home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
