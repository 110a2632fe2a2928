package main

import (
	"github.com/caarlos0/env/v11"
)

// envConfig supplies flag defaults from the environment. Flags given on
// the command line win.
type envConfig struct {
	Defs     string `env:"SERIALIZERS_DEFS"`
	LogLevel string `env:"SERIALIZERS_LOG_LEVEL" envDefault:"warn"`
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, err
	}
	return cfg, nil
}
