package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tetrion/driver"
)

// fileConfig is the on-disk shape of a YAML config file. Every field
// is optional; zero values fall back to driver.DefaultConfig.
type fileConfig struct {
	Cols               int   `yaml:"cols"`
	Rows               int   `yaml:"rows"`
	PreviewSize        int   `yaml:"preview_size"`
	Seed               int64 `yaml:"seed"`
	InitialGarbageRows int   `yaml:"initial_garbage_rows"`
}

func loadFileConfig(path string) (fileConfig, error) {
	if path == "" {
		return fileConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

func (fc fileConfig) apply(cfg driver.Config) driver.Config {
	if fc.Cols != 0 {
		cfg.Cols = fc.Cols
	}
	if fc.Rows != 0 {
		cfg.Rows = fc.Rows
	}
	if fc.PreviewSize != 0 {
		cfg.PreviewSize = fc.PreviewSize
	}
	if fc.Seed != 0 {
		cfg.Seed = fc.Seed
	}
	if fc.InitialGarbageRows != 0 {
		cfg.InitialGarbageRows = fc.InitialGarbageRows
	}
	return cfg
}
