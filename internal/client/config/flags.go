package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig         = "config"
	FlagEnvironment    = "env"
	FlagAPIBaseURL     = "api"
	FlagDBPath         = "db"
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
	FlagRequestTimeout = "timeout"
)

// BindFlags registers the configuration flags on fs. Their defaults are
// zero values; only flags given on the command line override the other
// sources.
//
//	-c, --config string       JSON or YAML config file
//	    --env string          production or development
//	    --api string          API base URL
//	    --db string           sqlite database path
//	    --log-level string    debug, info, warn or error
//	    --log-format string   text, json or console
//	    --timeout duration    per-command deadline (0 = none)
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "JSON or YAML config file")
	fs.String(FlagEnvironment, "", "environment: production or development")
	fs.String(FlagAPIBaseURL, "", "API base URL")
	fs.String(FlagDBPath, "", "sqlite database path")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, "", "log format: text, json, console")
	fs.Duration(FlagRequestTimeout, 0, "per-command deadline, 0 means none")
}

// configFilePath returns the config file named by the flag, falling back to
// the environment.
func configFilePath(fs *pflag.FlagSet, lookup lookupFunc) string {
	if fs != nil && fs.Changed(FlagConfig) {
		if v, err := fs.GetString(FlagConfig); err == nil && v != "" {
			return v
		}
	}
	if v, ok := lookup(EnvConfigFile); ok {
		return v
	}
	return ""
}

// parseFlags overlays cfg with the flags that were set explicitly.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{FlagEnvironment, &cfg.Environment},
		{FlagAPIBaseURL, &cfg.APIBaseURL},
		{FlagDBPath, &cfg.DBPath},
		{FlagLogLevel, &cfg.LogLevel},
		{FlagLogFormat, &cfg.LogFormat},
	}
	for _, s := range strs {
		if fs.Lookup(s.name) == nil || !fs.Changed(s.name) {
			continue
		}
		v, err := fs.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	if fs.Lookup(FlagRequestTimeout) != nil && fs.Changed(FlagRequestTimeout) {
		d, err := fs.GetDuration(FlagRequestTimeout)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = d
	}
	return nil
}
