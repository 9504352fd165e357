package config

import (
	"fmt"
	"path/filepath"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
	"github.com/cognicore/bayesnet/pkg/bayesnet/query"
)

// Loader loads an input file together with the network it names
type Loader struct {
	InputPath   string
	NetworkPath string // Optional, overrides the input file's first line
}

// Components holds everything a run needs
type Components struct {
	Network     *network.Network
	NetworkPath string
	Queries     []inference.Query
}

// Load reads the input file, then the network, then parses the queries
// against the network.
func (l *Loader) Load() (*Components, error) {
	in, err := LoadInput(l.InputPath)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}

	netPath := l.NetworkPath
	if netPath == "" {
		netPath = in.NetworkPath
		// Relative network paths are taken from the input file's directory.
		if !filepath.IsAbs(netPath) {
			netPath = filepath.Join(filepath.Dir(l.InputPath), netPath)
		}
	}

	n, err := LoadNetwork(netPath)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}

	// Queries start on the second line of the file.
	queries, err := query.NewParser(n).ParseAll(append([]string{""}, in.Queries...))
	if err != nil {
		return nil, fmt.Errorf("load queries from %s: %w", l.InputPath, err)
	}

	return &Components{Network: n, NetworkPath: netPath, Queries: queries}, nil
}
