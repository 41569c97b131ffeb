package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coursecomment/coursecomment/internal/posts"
	"github.com/coursecomment/coursecomment/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Durations
// use timex.Duration so files can specify them either as strings like "3s"
// or as integer nanoseconds. Empty fields leave the current value alone.
type FileConfig struct {
	Environment    string         `json:"environment" yaml:"environment"`
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	DBPath         string         `json:"db_path" yaml:"db_path"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	S3             posts.S3Config `json:"s3" yaml:"s3"`
}

// parseFile overlays cfg with values from a JSON or YAML file. The format
// follows the extension: .yaml and .yml are YAML, anything else JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.Environment, fc.Environment)
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	setString(&cfg.S3.Endpoint, fc.S3.Endpoint)
	setString(&cfg.S3.Region, fc.S3.Region)
	setString(&cfg.S3.Bucket, fc.S3.Bucket)
	setString(&cfg.S3.AccessKeyID, fc.S3.AccessKeyID)
	setString(&cfg.S3.SecretAccessKey, fc.S3.SecretAccessKey)
	setString(&cfg.S3.PublicURL, fc.S3.PublicURL)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
