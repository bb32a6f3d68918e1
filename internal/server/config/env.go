package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a .env
// file from the working directory first when one exists. A missing .env file
// is not an error.
//
// Recognized variables:
//
//	ADDRESS         HTTP bind address
//	BACKEND         storage backend (memory, sqlite, postgres, s3)
//	SQLITE_PATH     sqlite database file
//	DATABASE_DSN    PostgreSQL DSN
//	SECRET_KEY      JWT HMAC secret
//	TOKEN_VALIDITY  bearer token lifetime, Go duration syntax (e.g. "24h")
//	LOGIN_DELAY     simulated credential-check latency, Go duration syntax
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString(&config.EndpointAddr, "ADDRESS")
	setString(&config.Backend, "BACKEND")
	setString(&config.SQLitePath, "SQLITE_PATH")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "SECRET_KEY")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("LOGIN_DELAY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.LoginDelay = d
		}
	}
}
