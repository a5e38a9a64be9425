package config

import (
	"testing"
	"time"
)

// archiveEnvVars lists all archive-related env vars that must be cleared between tests.
var archiveEnvVars = []string{
	"ORDERLEDGER_ARCHIVE_INTERVAL", "ORDERLEDGER_ARCHIVE_S3_BUCKET",
	"ORDERLEDGER_ARCHIVE_S3_ENDPOINT", "ORDERLEDGER_ARCHIVE_S3_REGION",
	"ORDERLEDGER_ARCHIVE_S3_KEY",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ORDERLEDGER_DATABASE_URL", "ORDERLEDGER_HTTP_ADDR", "ORDERLEDGER_NATS_URL", "ORDERLEDGER_AUTH_FILE"} {
		t.Setenv(key, "")
	}
	for _, key := range archiveEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name         string
		env          map[string]string
		wantErr      bool
		wantHTTPAddr string
		wantNATSURL  string
		wantAuthFile string
	}{
		{
			name:    "MissingDatabaseURL",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name:         "Defaults",
			env:          map[string]string{"ORDERLEDGER_DATABASE_URL": "postgres://localhost/orders"},
			wantHTTPAddr: ":8080",
		},
		{
			name: "CustomValues",
			env: map[string]string{
				"ORDERLEDGER_DATABASE_URL": "postgres://db:5432/orders",
				"ORDERLEDGER_HTTP_ADDR":    ":3000",
				"ORDERLEDGER_NATS_URL":     "nats://localhost:4222",
				"ORDERLEDGER_AUTH_FILE":    "/etc/orderledger/auth.toml",
			},
			wantHTTPAddr: ":3000",
			wantNATSURL:  "nats://localhost:4222",
			wantAuthFile: "/etc/orderledger/auth.toml",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DatabaseURL != tc.env["ORDERLEDGER_DATABASE_URL"] {
				t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, tc.env["ORDERLEDGER_DATABASE_URL"])
			}
			if cfg.HTTPAddr != tc.wantHTTPAddr {
				t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, tc.wantHTTPAddr)
			}
			if cfg.NATSURL != tc.wantNATSURL {
				t.Errorf("NATSURL = %q, want %q", cfg.NATSURL, tc.wantNATSURL)
			}
			if cfg.AuthFile != tc.wantAuthFile {
				t.Errorf("AuthFile = %q, want %q", cfg.AuthFile, tc.wantAuthFile)
			}
		})
	}
}

func TestLoadArchiveDefaults(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("ORDERLEDGER_DATABASE_URL", "postgres://localhost/orders")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ArchiveInterval != 15*time.Minute {
		t.Errorf("ArchiveInterval = %v, want 15m", cfg.ArchiveInterval)
	}
	if cfg.ArchiveS3Region != "us-east-1" {
		t.Errorf("ArchiveS3Region = %q, want %q", cfg.ArchiveS3Region, "us-east-1")
	}
	if cfg.ArchiveS3Key != "orderledger/archive.jsonl" {
		t.Errorf("ArchiveS3Key = %q, want %q", cfg.ArchiveS3Key, "orderledger/archive.jsonl")
	}
}

func TestLoadArchiveCustom(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("ORDERLEDGER_DATABASE_URL", "postgres://localhost/orders")
	t.Setenv("ORDERLEDGER_ARCHIVE_INTERVAL", "10m")
	t.Setenv("ORDERLEDGER_ARCHIVE_S3_BUCKET", "my-bucket")
	t.Setenv("ORDERLEDGER_ARCHIVE_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("ORDERLEDGER_ARCHIVE_S3_REGION", "eu-west-1")
	t.Setenv("ORDERLEDGER_ARCHIVE_S3_KEY", "custom/key.jsonl")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ArchiveInterval != 10*time.Minute {
		t.Errorf("ArchiveInterval = %v, want 10m", cfg.ArchiveInterval)
	}
	if cfg.ArchiveS3Bucket != "my-bucket" {
		t.Errorf("ArchiveS3Bucket = %q", cfg.ArchiveS3Bucket)
	}
	if cfg.ArchiveS3Endpoint != "http://minio:9000" {
		t.Errorf("ArchiveS3Endpoint = %q", cfg.ArchiveS3Endpoint)
	}
	if cfg.ArchiveS3Region != "eu-west-1" {
		t.Errorf("ArchiveS3Region = %q", cfg.ArchiveS3Region)
	}
	if cfg.ArchiveS3Key != "custom/key.jsonl" {
		t.Errorf("ArchiveS3Key = %q", cfg.ArchiveS3Key)
	}
}

func TestLoadArchiveInvalidInterval(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("ORDERLEDGER_DATABASE_URL", "postgres://localhost/orders")
	t.Setenv("ORDERLEDGER_ARCHIVE_INTERVAL", "not-a-duration")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid ORDERLEDGER_ARCHIVE_INTERVAL")
	}
}

func TestLoadArchiveDisabled(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("ORDERLEDGER_DATABASE_URL", "postgres://localhost/orders")
	t.Setenv("ORDERLEDGER_ARCHIVE_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ArchiveInterval != 0 {
		t.Errorf("ArchiveInterval = %v, want 0 (disabled)", cfg.ArchiveInterval)
	}
}

func TestEnvOrDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		key      string
		envVal   string
		fallback string
		want     string
	}{
		{"EmptyUsesDefault", "TEST_ENVDEFAULT_EMPTY", "", "default-val", "default-val"},
		{"SetUsesEnv", "TEST_ENVDEFAULT_SET", "custom", "default-val", "custom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envVal)
			got := envOrDefault(tc.key, tc.fallback)
			if got != tc.want {
				t.Errorf("envOrDefault(%q, %q) = %q, want %q", tc.key, tc.fallback, got, tc.want)
			}
		})
	}
}
