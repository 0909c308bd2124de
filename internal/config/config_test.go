// Package config provides configuration management for the race ledger.
package config

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	raceLedgerName               = "race-ledger"
	testAppName                  = "test-app"
	testDBPassword               = "TEST_DB_PASSWORD"
	expandedSecretValue          = "expanded_secret_value"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != raceLedgerName {
		t.Errorf("expected app name '%s', got '%s'", raceLedgerName, cfg.App.Name)
	}

	if cfg.Database.Port != 5432 {
		t.Errorf("expected database port 5432, got %d", cfg.Database.Port)
	}

	if cfg.Standings.TopDrivers != 10 {
		t.Errorf("expected top_drivers 10, got %d", cfg.Standings.TopDrivers)
	}

	if len(cfg.Standings.Leagues) != 1 {
		t.Errorf("expected one configured league, got %d", len(cfg.Standings.Leagues))
	}

	if cfg.Standings.CacheTTL().Seconds() != 300 {
		t.Errorf("expected cache TTL 300s, got %v", cfg.Standings.CacheTTL())
	}

	if !strings.HasPrefix(cfg.GetDatabaseDSN(), "postgres://") {
		t.Errorf("expected postgres DSN, got %s", cfg.GetDatabaseDSN())
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("RACE_LEDGER_APP_NAME", testAppName)

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

// TestLoadConfigExpandsPlaceholders tests ${VAR} expansion inside the YAML
func TestLoadConfigExpandsPlaceholders(t *testing.T) {
	t.Setenv(testDBPassword, expandedSecretValue)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Database.Password != expandedSecretValue {
		t.Errorf("expected expanded password, got '%s'", cfg.Database.Password)
	}
}

// TestLoadWithDefaultsMissingFile tests that defaults apply without a file
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("expected default environment, got '%s'", cfg.App.Environment)
	}
	if cfg.Standings.TopDrivers != 10 {
		t.Errorf("expected default top_drivers 10, got %d", cfg.Standings.TopDrivers)
	}
	if cfg.Standings.FetchConcurrency != 4 {
		t.Errorf("expected default fetch_concurrency 4, got %d", cfg.Standings.FetchConcurrency)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateFailures tests individual validation rules
func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		errPart string
	}{
		{
			name:    "invalid environment",
			mutate:  func(cfg *Config) { cfg.App.Environment = "invalid" },
			errPart: "Environment",
		},
		{
			name:    "invalid log level",
			mutate:  func(cfg *Config) { cfg.App.LogLevel = "verbose" },
			errPart: "LogLevel",
		},
		{
			name:    "invalid cron schedule",
			mutate:  func(cfg *Config) { cfg.Standings.RefreshSchedule = "every now and then" },
			errPart: "RefreshSchedule",
		},
		{
			name:    "invalid league id",
			mutate:  func(cfg *Config) { cfg.Standings.Leagues = []string{"not-a-uuid"} },
			errPart: "Leagues",
		},
		{
			name:    "schedule without leagues",
			mutate:  func(cfg *Config) { cfg.Standings.Leagues = nil },
			errPart: "requires at least one league",
		},
		{
			name: "production without ssl",
			mutate: func(cfg *Config) {
				cfg.App.Environment = "production"
				cfg.Database.SSLMode = "disable"
			},
			errPart: "SSL",
		},
		{
			name:    "idle above max connections",
			mutate:  func(cfg *Config) { cfg.Database.MaxIdleConnections = 50 },
			errPart: "max_idle_connections",
		},
		{
			name:    "bucket without region",
			mutate:  func(cfg *Config) { cfg.Export.S3Bucket = "charts" },
			errPart: "export.region",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(validConfigPath)
			if err != nil {
				t.Fatalf(expectedNoErrorLoadingConfig, err)
			}

			tt.mutate(cfg)
			err = Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}

// TestParseSecretData tests parsing secrets from string and binary payloads
func TestParseSecretData(t *testing.T) {
	payload := `{"database_user":"svc","database_password":"s3cret"}`

	fromString, err := parseSecretData(&secretsmanager.GetSecretValueOutput{SecretString: aws.String(payload)})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if fromString.DatabasePassword != "s3cret" {
		t.Errorf("expected password from string secret, got '%s'", fromString.DatabasePassword)
	}

	fromBinary, err := parseSecretData(&secretsmanager.GetSecretValueOutput{SecretBinary: []byte(payload)})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if fromBinary.DatabaseUser != "svc" {
		t.Errorf("expected user from binary secret, got '%s'", fromBinary.DatabaseUser)
	}

	if _, err := parseSecretData(&secretsmanager.GetSecretValueOutput{}); err == nil {
		t.Error("expected error for empty secret")
	}
}

// TestOverlaySecretsOnConfig tests that only non-empty secrets are applied
func TestOverlaySecretsOnConfig(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	overlaySecretsOnConfig(cfg, &SecretsOverlay{DatabasePassword: "rotated"})

	if cfg.Database.Password != "rotated" {
		t.Errorf("expected overlaid password, got '%s'", cfg.Database.Password)
	}
	if cfg.Database.User != "ledger" {
		t.Errorf("expected user unchanged, got '%s'", cfg.Database.User)
	}
}
