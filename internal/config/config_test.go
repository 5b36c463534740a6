package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetsConfig() *Config {
	return &Config{
		Source:          SourceSheets,
		ReferralSheetID: "ref123",
		ReferralTab:     "Referrals",
		ShelterSheetID:  "shelter456",
		ShelterTab:      "Shelters",
		BedSheetID:      "beds789",
		BedTab:          "Beds",
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shelter_match_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// clearEnv stops overrides from the developer's shell leaking into a test
func clearEnv(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "")
	t.Setenv(EnvEmailSender, "")
	t.Setenv(EnvEmailRecipients, "")
}

func TestValidate_ValidSheetsConfig(t *testing.T) {
	cfg := sheetsConfig()
	cfg.EmailSender = "matches@example.org"
	cfg.EmailRecipients = []string{"intake@example.org", "ops@example.org"}
	cfg.OutputFormat = FormatCSV
	cfg.Schedule.RRule = "FREQ=DAILY;BYHOUR=7;BYMINUTE=30"

	assert.NoError(t, Validate(cfg))
}

func TestValidate_PostgresNeedsOnlyDatabaseURL(t *testing.T) {
	cfg := &Config{
		Source:      SourcePostgres,
		DatabaseURL: "postgres://localhost:5432/shelters",
	}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		contains string
	}{
		{"missing source", func(cfg *Config) { cfg.Source = "" }, "validation failed"},
		{"unknown source", func(cfg *Config) { cfg.Source = "excel" }, "validation failed"},
		{"sheets source without bed tab", func(cfg *Config) { cfg.BedTab = "" }, "validation failed"},
		{"postgres source without url", func(cfg *Config) { cfg.Source = SourcePostgres }, "validation failed"},
		{"bad recipient", func(cfg *Config) { cfg.EmailRecipients = []string{"not-an-email"} }, "validation failed"},
		{"bad sender", func(cfg *Config) { cfg.EmailSender = "nobody" }, "validation failed"},
		{"unknown output format", func(cfg *Config) { cfg.OutputFormat = "pdf" }, "validation failed"},
		{"invalid rrule", func(cfg *Config) { cfg.Schedule.RRule = "INVALID_RRULE_SYNTAX" }, "invalid rrule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sheetsConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
source: sheets
referralSheetID: "ref123"
referralTab: "Referrals"
shelterSheetID: "shelter456"
shelterTab: "Shelters"
bedSheetID: "beds789"
bedTab: "Beds"
gmailUserID: "matcher@example.org"
emailSender: "matcher@example.org"
emailRecipients:
  - "intake@example.org"
emailSubject: "Matches"
outputDir: "/tmp/matches"
outputFormat: csv
server:
  addr: ":9090"
  challengeHeader: "X-Hook-Challenge"
schedule:
  rrule: "FREQ=WEEKLY;BYDAY=MO,WE,FR;BYHOUR=8"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, SourceSheets, cfg.Source)
	assert.Equal(t, "ref123", cfg.ReferralSheetID)
	assert.Equal(t, "Beds", cfg.BedTab)
	assert.Equal(t, "matcher@example.org", cfg.GmailUserID)
	assert.Equal(t, []string{"intake@example.org"}, cfg.EmailRecipients)
	assert.Equal(t, "Matches", cfg.EmailSubject)
	assert.Equal(t, "/tmp/matches", cfg.OutputDir)
	assert.Equal(t, FormatCSV, cfg.OutputFormat)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "X-Hook-Challenge", cfg.Server.ChallengeHeader)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO,WE,FR;BYHOUR=8", cfg.Schedule.RRule)
}

func TestLoadFromPath_Defaults(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
source: postgres
databaseURL: "postgres://localhost/shelters"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "me", cfg.GmailUserID)
	assert.Equal(t, "Shelter Connect: Potential Matches", cfg.EmailSubject)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, FormatXLSX, cfg.OutputFormat)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "Smartsheet-Hook-Challenge", cfg.Server.ChallengeHeader)
	assert.Empty(t, cfg.Schedule.RRule)
	assert.Empty(t, cfg.EmailRecipients)
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "postgres://env-host/shelters")
	t.Setenv(EnvEmailSender, "env-sender@example.org")
	t.Setenv(EnvEmailRecipients, " a@example.org, ,b@example.org ")

	path := writeConfig(t, `
source: postgres
databaseURL: "postgres://file-host/shelters"
emailSender: "file-sender@example.org"
emailRecipients:
  - "file@example.org"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env-host/shelters", cfg.DatabaseURL)
	assert.Equal(t, "env-sender@example.org", cfg.EmailSender)
	assert.Equal(t, []string{"a@example.org", "b@example.org"}, cfg.EmailRecipients)
}

func TestLoadFromPath_EnvSatisfiesRequiredDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDatabaseURL, "postgres://env-host/shelters")

	path := writeConfig(t, "source: postgres\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env-host/shelters", cfg.DatabaseURL)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
source: postgres
databaseURL: "postgres://localhost/shelters"
schedule:
  rrule: "INVALID_RRULE_SYNTAX"
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
source: sheets
referralSheetID: "ref123"
referralTab: "Referrals"
# Missing shelter and bed sheets
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `
source: sheets
  invalid indentation
referralTab: "Referrals"
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestEnvFileName(t *testing.T) {
	assert.Equal(t, "shelter_match_config.yaml", envFileName("shelter_match_config", "", "yaml"))
	assert.Equal(t, "oauthClient.prod.json", envFileName("oauthClient", "prod", "json"))
}

func TestLoadOAuthClientFromPath(t *testing.T) {
	dir := t.TempDir()

	valid := `{"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"project_id": "test-project",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"client_secret": "test-secret",
		"redirect_uris": ["http://localhost"]
	}}`
	validPath := filepath.Join(dir, "oauthClient.test.json")
	require.NoError(t, os.WriteFile(validPath, []byte(valid), 0600))

	cfg, err := LoadOAuthClientFromPath(validPath)
	require.NoError(t, err)
	assert.Equal(t, "test-project", cfg.Installed.ProjectID)

	missingSecret := `{"installed": {
		"client_id": "test-client-id",
		"project_id": "test-project",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"redirect_uris": []
	}}`
	invalidPath := filepath.Join(dir, "oauthClient.bad.json")
	require.NoError(t, os.WriteFile(invalidPath, []byte(missingSecret), 0600))

	_, err = LoadOAuthClientFromPath(invalidPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
