package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultConfigPath is read when present, a missing default file is not an error.
const defaultConfigPath = ".bumpcheck.yaml"

// branchEnvVars are consulted in order when no branch flag is given.
var branchEnvVars = []string{"SEMAPHORE_GIT_BRANCH", "GITHUB_HEAD_REF", "GITHUB_REF_NAME", "BRANCH_NAME"}

// Config holds the release check settings.
type Config struct {
	Root          string `yaml:"root"`
	Manifest      string `yaml:"manifest"`
	NextFile      string `yaml:"next_file"`
	Repo          string `yaml:"repo"`
	Ref           string `yaml:"ref"`
	CheckTag      bool   `yaml:"check_tag"`
	CheckRegistry bool   `yaml:"check_registry"`
}

// loadConfig reads a YAML config file. Only an explicitly requested file must exist.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}

	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// branchFromEnv returns the first non-empty CI branch variable.
func branchFromEnv(getenv func(string) string) string {
	for _, key := range branchEnvVars {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// rootDir returns the working tree the local files are read from.
func (c *Config) rootDir() string {
	if c.Root == "" {
		return "."
	}
	return c.Root
}
