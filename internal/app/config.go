package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// CircuitPath is a .hcl file or a directory of them. Empty means run
	// the built-in example circuit.
	CircuitPath string

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkerCount < 1 {
		return nil, errors.New("WorkerCount must be at least 1")
	}
	return &cfg, nil
}
