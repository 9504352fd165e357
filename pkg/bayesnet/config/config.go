// Package config loads networks, query files and engine settings.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// Settings tunes the engine and the CLI.
type Settings struct {
	Workers   int     `yaml:"workers"`
	CacheSize int     `yaml:"cache_size"`
	DB        string  `yaml:"db"`
	LogLevel  string  `yaml:"log_level"`
	Tolerance float64 `yaml:"tolerance"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Workers:   4,
		CacheSize: 256,
		LogLevel:  "info",
		Tolerance: 1e-9,
	}
}

// LoadSettings loads settings from a YAML file. Keys the file omits keep
// their defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Workers < 1 {
		return nil, fmt.Errorf("settings %s: workers must be positive: %w", path, internalerr.ErrInvalidInput)
	}
	if s.CacheSize < 0 {
		return nil, fmt.Errorf("settings %s: cache_size must not be negative: %w", path, internalerr.ErrInvalidInput)
	}
	if _, err := s.Level(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return &s, nil
}

// Level parses LogLevel (debug, info, warn, error).
func (s Settings) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s.LogLevel, internalerr.ErrInvalidInput)
	}
	return l, nil
}

// Input is a query file: the network path on the first line, then one
// query per line.
type Input struct {
	NetworkPath string
	Queries     []string
}

// LoadInput reads a query file. Blank lines are kept so parse errors can
// name the file line; query.Parser.ParseAll skips them.
func LoadInput(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	in := &Input{}
	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			in.NetworkPath = strings.TrimSpace(line)
			first = false
			continue
		}
		in.Queries = append(in.Queries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if in.NetworkPath == "" {
		return nil, fmt.Errorf("input %s: first line must name the network file: %w", path, internalerr.ErrInvalidInput)
	}
	return in, nil
}
