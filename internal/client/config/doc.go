// Package config loads runtime configuration for the course-review CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults). The environment default
//     is stamped at build time through buildinfo.Environment.
//  2. Optional config file selected with -c/--config or COURSECOMMENT_CONFIG.
//     Files ending in .yaml or .yml are YAML, anything else JSON.
//  3. COURSECOMMENT_* environment variables, including those from a .env
//     file in the working directory.
//  4. Command-line flags given explicitly (see BindFlags).
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "environment": "production",
//	  "api_base_url": "https://example.com/v1/api",
//	  "db_path": "/home/me/.config/coursecomment/client.db",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "request_timeout": "10s",
//	  "s3": {"endpoint": "http://localhost:9000", "bucket": "posts"}
//	}
package config
