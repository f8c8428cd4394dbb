package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	StackPath string // hcl files

	Provider string // "mem" or "aws"
	Region   string

	Destroy bool

	LogFormat       string
	LogLevel        string
	WorkerCount     int
	ProviderTimeout time.Duration
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.StackPath == "" {
		return nil, errors.New("StackPath is a required configuration field and cannot be empty")
	}
	if cfg.Provider != "mem" && cfg.Provider != "aws" {
		return nil, fmt.Errorf("unknown provider %q: must be 'mem' or 'aws'", cfg.Provider)
	}
	if cfg.Provider == "aws" && cfg.Region == "" {
		return nil, errors.New("the aws provider requires a region")
	}
	if cfg.WorkerCount < 1 {
		return nil, errors.New("WorkerCount must be at least 1")
	}

	return &cfg, nil
}
