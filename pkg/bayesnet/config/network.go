package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// VariableSpec declares a variable and its outcomes in file order.
type VariableSpec struct {
	Name     string   `yaml:"name" xml:"NAME"`
	Outcomes []string `yaml:"outcomes" xml:"OUTCOME"`
}

// DefinitionSpec is one CPT as written in a network file. Table lists the
// probabilities with the parents in Given order followed by For, For
// varying fastest.
type DefinitionSpec struct {
	For   string    `yaml:"for"`
	Given []string  `yaml:"given"`
	Table []float64 `yaml:"table"`
}

// NetworkSpec is the file form of a network before structural checks.
type NetworkSpec struct {
	Name        string           `yaml:"name"`
	Variables   []VariableSpec   `yaml:"variables"`
	Definitions []DefinitionSpec `yaml:"cpts"`
}

// LoadNetwork reads a network file, choosing the format by extension:
// .xml for XMLBIF, .yaml or .yml for YAML.
func LoadNetwork(path string) (*network.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ns *NetworkSpec
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xml":
		ns, err = DecodeXMLBIF(f)
	case ".yaml", ".yml":
		ns, err = DecodeYAML(f)
	default:
		return nil, fmt.Errorf("load network %s: unknown extension %q: %w", path, ext, internalerr.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("load network %s: %w", path, err)
	}

	n, err := ns.Build()
	if err != nil {
		return nil, fmt.Errorf("load network %s: %w", path, err)
	}
	return n, nil
}

type xmlDefinition struct {
	For   string   `xml:"FOR"`
	Given []string `xml:"GIVEN"`
	Table string   `xml:"TABLE"`
}

type xmlNetwork struct {
	Name        string          `xml:"NAME"`
	Variables   []VariableSpec  `xml:"VARIABLE"`
	Definitions []xmlDefinition `xml:"DEFINITION"`
}

// DecodeXMLBIF reads the first NETWORK element of an XMLBIF document. The
// document may be wrapped in a BIF element and may declare any encoding
// the charset package knows.
func DecodeXMLBIF(r io.Reader) (*NetworkSpec, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("xmlbif: no NETWORK element: %w", internalerr.ErrInvalidInput)
		}
		if err != nil {
			return nil, fmt.Errorf("xmlbif: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "NETWORK" {
			continue
		}

		var raw xmlNetwork
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return nil, fmt.Errorf("xmlbif: %w", err)
		}
		return raw.networkSpec()
	}
}

func (raw xmlNetwork) networkSpec() (*NetworkSpec, error) {
	ns := &NetworkSpec{Name: strings.TrimSpace(raw.Name)}
	for _, v := range raw.Variables {
		ns.Variables = append(ns.Variables, VariableSpec{
			Name:     strings.TrimSpace(v.Name),
			Outcomes: trimAll(v.Outcomes),
		})
	}
	for _, d := range raw.Definitions {
		table, err := parseTable(d.Table)
		if err != nil {
			return nil, fmt.Errorf("xmlbif: definition for %s: %w", strings.TrimSpace(d.For), err)
		}
		ns.Definitions = append(ns.Definitions, DefinitionSpec{
			For:   strings.TrimSpace(d.For),
			Given: trimAll(d.Given),
			Table: table,
		})
	}
	return ns, nil
}

func parseTable(text string) ([]float64, error) {
	fields := strings.Fields(text)
	table := make([]float64, len(fields))
	for i, field := range fields {
		p, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("table entry %d %q: %w", i, field, internalerr.ErrInvalidInput)
		}
		table[i] = p
	}
	return table, nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// DecodeYAML reads the YAML network form:
//
//	variables:
//	  - {name: A, outcomes: [T, F]}
//	cpts:
//	  - {for: A, table: [0.7, 0.3]}
func DecodeYAML(r io.Reader) (*NetworkSpec, error) {
	var ns NetworkSpec
	if err := yaml.NewDecoder(r).Decode(&ns); err != nil {
		return nil, fmt.Errorf("yaml network: %w", err)
	}
	return &ns, nil
}

// Build resolves names into variables and CPTs and assembles the network.
// CPTs keep definition order. Every declared variable needs exactly one
// definition and every name used in a definition must be declared.
func (s *NetworkSpec) Build() (*network.Network, error) {
	vars := make(map[string]network.Variable, len(s.Variables))
	for _, vs := range s.Variables {
		if _, dup := vars[vs.Name]; dup {
			return nil, fmt.Errorf("variable %s declared twice: %w", vs.Name, internalerr.ErrInvalidInput)
		}
		v, err := network.NewVariable(vs.Name, vs.Outcomes...)
		if err != nil {
			return nil, err
		}
		vars[vs.Name] = v
	}

	lookup := func(name string) (network.Variable, error) {
		v, ok := vars[name]
		if !ok {
			return network.Variable{}, internalerr.Variable("build network", name, "",
				fmt.Errorf("undeclared variable: %w", internalerr.ErrInvalidInput))
		}
		return v, nil
	}

	cpts := make([]*network.CPT, 0, len(s.Definitions))
	defined := make(map[string]bool, len(s.Definitions))
	for _, d := range s.Definitions {
		v, err := lookup(d.For)
		if err != nil {
			return nil, err
		}
		parents := make([]network.Variable, 0, len(d.Given))
		for _, g := range d.Given {
			p, err := lookup(g)
			if err != nil {
				return nil, err
			}
			parents = append(parents, p)
		}
		cpt, err := network.NewCPT(v, parents, d.Table)
		if err != nil {
			return nil, err
		}
		cpts = append(cpts, cpt)
		defined[d.For] = true
	}
	for _, vs := range s.Variables {
		if !defined[vs.Name] {
			return nil, internalerr.Variable("build network", vs.Name, "",
				fmt.Errorf("no definition: %w", internalerr.ErrInvalidInput))
		}
	}
	return network.New(cpts)
}
