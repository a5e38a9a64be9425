package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // ORDERLEDGER_DATABASE_URL (required)
	HTTPAddr    string // ORDERLEDGER_HTTP_ADDR (default ":8080")
	NATSURL     string // ORDERLEDGER_NATS_URL (optional, empty = no events)
	AuthFile    string // ORDERLEDGER_AUTH_FILE (optional, empty = auth disabled)

	// Archive settings
	ArchiveInterval   time.Duration // ORDERLEDGER_ARCHIVE_INTERVAL (default 15m; 0 = disabled)
	ArchiveS3Bucket   string        // ORDERLEDGER_ARCHIVE_S3_BUCKET (enables S3 when set)
	ArchiveS3Endpoint string        // ORDERLEDGER_ARCHIVE_S3_ENDPOINT (custom endpoint for MinIO)
	ArchiveS3Region   string        // ORDERLEDGER_ARCHIVE_S3_REGION (default "us-east-1")
	ArchiveS3Key      string        // ORDERLEDGER_ARCHIVE_S3_KEY (default "orderledger/archive.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:       os.Getenv("ORDERLEDGER_DATABASE_URL"),
		HTTPAddr:          envOrDefault("ORDERLEDGER_HTTP_ADDR", ":8080"),
		NATSURL:           os.Getenv("ORDERLEDGER_NATS_URL"),
		AuthFile:          os.Getenv("ORDERLEDGER_AUTH_FILE"),
		ArchiveS3Bucket:   os.Getenv("ORDERLEDGER_ARCHIVE_S3_BUCKET"),
		ArchiveS3Endpoint: os.Getenv("ORDERLEDGER_ARCHIVE_S3_ENDPOINT"),
		ArchiveS3Region:   envOrDefault("ORDERLEDGER_ARCHIVE_S3_REGION", "us-east-1"),
		ArchiveS3Key:      envOrDefault("ORDERLEDGER_ARCHIVE_S3_KEY", "orderledger/archive.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("ORDERLEDGER_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("ORDERLEDGER_ARCHIVE_INTERVAL", "15m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("ORDERLEDGER_ARCHIVE_INTERVAL: %w", err)
		}
		c.ArchiveInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
