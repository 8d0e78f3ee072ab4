// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Poem  PoemConfig        `toml:"poem"`
	Poets map[string]string `toml:"poets"`
}

// PoemConfig maps generation-related settings.
type PoemConfig struct {
	Poet    *string   `toml:"poet"`
	Lines   *int      `toml:"lines"`
	Depth   *int      `toml:"depth"`
	Devices *[]string `toml:"devices"`
	Seed    *int64    `toml:"seed"`
}

// DefaultPoets maps poet names to corpus files inside the corpus directory.
var DefaultPoets = map[string]string{
	"Emily Dickinson":     "dickinson.txt",
	"Robert Frost":        "frost.txt",
	"William Shakespeare": "shakespeare.txt",
	"Edgar Allan Poe":     "poe.txt",
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// PoetFiles merges configured poets over the defaults.
func (c FileConfig) PoetFiles() map[string]string {
	out := make(map[string]string, len(DefaultPoets)+len(c.Poets))
	for name, file := range DefaultPoets {
		out[name] = file
	}
	for name, file := range c.Poets {
		out[name] = file
	}
	return out
}

// PoetNames returns the known poet names sorted alphabetically.
func (c FileConfig) PoetNames() []string {
	files := c.PoetFiles()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveCorpus returns the corpus path for poet. Relative files are
// resolved against dir.
func (c FileConfig) ResolveCorpus(poet, dir string) (string, bool) {
	file, ok := c.PoetFiles()[poet]
	if !ok {
		return "", false
	}
	if filepath.IsAbs(file) {
		return file, true
	}
	return filepath.Join(dir, file), true
}
