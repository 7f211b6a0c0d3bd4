package main

import (
	"github.com/vitalvas/exprkit/vmbench"
	"github.com/vitalvas/exprkit/xconfig"
	"github.com/vitalvas/exprkit/xlogger"
)

const envPrefix = "EXPRKIT"

type Config struct {
	Logger   xlogger.Config `yaml:"logger"`
	Backend  string         `yaml:"backend" default:"baseline"`
	Simplify bool           `yaml:"simplify"`
	Bench    vmbench.Config `yaml:"bench"`
}

func loadConfig(filename string) (Config, error) {
	opts := []xconfig.Option{xconfig.WithEnv(envPrefix)}
	if filename != "" {
		opts = append([]xconfig.Option{xconfig.WithFiles(filename), xconfig.WithStrict()}, opts...)
	}

	var cfg Config
	if err := xconfig.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
