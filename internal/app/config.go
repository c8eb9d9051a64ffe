package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// Sources are the tool sources to load, in order: table files or
	// directories, namespace paths, plugin paths.
	Sources []string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Sources) == 0 {
		return nil, errors.New("at least one source is required")
	}
	return &cfg, nil
}
