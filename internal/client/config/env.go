package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "COURSECOMMENT_"

// Environment variable names.
const (
	EnvConfigFile        = EnvPrefix + "CONFIG"
	EnvEnvironment       = EnvPrefix + "ENV"
	EnvAPIBaseURL        = EnvPrefix + "API_BASE_URL"
	EnvDBPath            = EnvPrefix + "DB_PATH"
	EnvLogLevel          = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat         = EnvPrefix + "LOG_FORMAT"
	EnvRequestTimeout    = EnvPrefix + "REQUEST_TIMEOUT"
	EnvS3Endpoint        = EnvPrefix + "S3_ENDPOINT"
	EnvS3Region          = EnvPrefix + "S3_REGION"
	EnvS3Bucket          = EnvPrefix + "S3_BUCKET"
	EnvS3AccessKeyID     = EnvPrefix + "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = EnvPrefix + "S3_SECRET_ACCESS_KEY"
	EnvS3PublicURL       = EnvPrefix + "S3_PUBLIC_URL"
)

const dotEnvFile = ".env"

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// loadDotEnv exports the variables of a .env file into the process
// environment. Variables already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with the COURSECOMMENT_* variables that are set.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvEnvironment, &cfg.Environment},
		{EnvAPIBaseURL, &cfg.APIBaseURL},
		{EnvDBPath, &cfg.DBPath},
		{EnvLogLevel, &cfg.LogLevel},
		{EnvLogFormat, &cfg.LogFormat},
		{EnvS3Endpoint, &cfg.S3.Endpoint},
		{EnvS3Region, &cfg.S3.Region},
		{EnvS3Bucket, &cfg.S3.Bucket},
		{EnvS3AccessKeyID, &cfg.S3.AccessKeyID},
		{EnvS3SecretAccessKey, &cfg.S3.SecretAccessKey},
		{EnvS3PublicURL, &cfg.S3.PublicURL},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
