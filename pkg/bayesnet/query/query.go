// Package query parses the textual query form P(Q=v,...|E=v,...),alg.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// Parser turns query lines into inference queries. With a Network set it
// also checks names and outcomes against it.
type Parser struct {
	Network *network.Network
}

// NewParser creates a parser validating against n. n may be nil.
func NewParser(n *network.Network) *Parser {
	return &Parser{Network: n}
}

// Parse reads one query. The ",alg" suffix is optional and defaults to 0.
func (p *Parser) Parse(line string) (inference.Query, error) {
	line = strings.TrimSpace(line)
	body, selector, err := splitSelector(line)
	if err != nil {
		return inference.Query{}, fmt.Errorf("parse %q: %w", line, err)
	}
	alg, err := inference.ParseAlgorithm(selector)
	if err != nil {
		return inference.Query{}, fmt.Errorf("parse %q: %w", line, err)
	}

	targetText, evidenceText, hasBar := strings.Cut(body, "|")
	target, err := parseBindings(targetText)
	if err != nil {
		return inference.Query{}, fmt.Errorf("parse %q: query side: %w", line, err)
	}
	var evidence []inference.Binding
	if hasBar {
		if evidence, err = parseBindings(evidenceText); err != nil {
			return inference.Query{}, fmt.Errorf("parse %q: evidence side: %w", line, err)
		}
	}

	q := inference.Query{Target: target, Evidence: evidence, Algorithm: alg}
	if err := p.check(q); err != nil {
		return inference.Query{}, fmt.Errorf("parse %q: %w", line, err)
	}
	return q, nil
}

// ParseAll parses every non-blank line, reporting failures with their
// 1-based position in lines.
func (p *Parser) ParseAll(lines []string) ([]inference.Query, error) {
	var out []inference.Query
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		q, err := p.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// splitSelector separates "P(...)" from its optional ",n" suffix and
// returns the text between the parentheses.
func splitSelector(line string) (string, int, error) {
	if !strings.HasPrefix(line, "P(") {
		return "", 0, fmt.Errorf("missing P( prefix: %w", internalerr.ErrInvalidInput)
	}
	closing := strings.Index(line, ")")
	if closing < 0 {
		return "", 0, fmt.Errorf("missing closing parenthesis: %w", internalerr.ErrInvalidInput)
	}
	body := line[len("P("):closing]

	rest := strings.TrimSpace(line[closing+1:])
	if rest == "" {
		return body, 0, nil
	}
	tail, ok := strings.CutPrefix(rest, ",")
	if !ok {
		return "", 0, fmt.Errorf("unexpected %q after query: %w", rest, internalerr.ErrInvalidInput)
	}
	n, err := strconv.Atoi(strings.TrimSpace(tail))
	if err != nil {
		return "", 0, fmt.Errorf("algorithm selector %q: %w", tail, internalerr.ErrInvalidInput)
	}
	return body, n, nil
}

func parseBindings(text string) ([]inference.Binding, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no bindings: %w", internalerr.ErrInvalidInput)
	}
	var out []inference.Binding
	for _, part := range strings.Split(text, ",") {
		name, value, ok := strings.Cut(part, "=")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if !ok || name == "" || value == "" || strings.Contains(value, "=") {
			return nil, fmt.Errorf("binding %q: %w", strings.TrimSpace(part), internalerr.ErrInvalidInput)
		}
		out = append(out, inference.Binding{Variable: name, Value: value})
	}
	return out, nil
}

func (p *Parser) check(q inference.Query) error {
	seen := make(map[string]bool, len(q.Target)+len(q.Evidence))
	for _, b := range append(append([]inference.Binding{}, q.Target...), q.Evidence...) {
		if seen[b.Variable] {
			return internalerr.Variable("check query", b.Variable, "", fmt.Errorf("bound twice: %w", internalerr.ErrInvalidInput))
		}
		seen[b.Variable] = true

		if p.Network == nil {
			continue
		}
		v, ok := p.Network.Variable(b.Variable)
		if !ok {
			return internalerr.Variable("check query", b.Variable, "", fmt.Errorf("unknown variable: %w", internalerr.ErrInvalidInput))
		}
		if _, err := v.OutcomeIndex(b.Value); err != nil {
			return internalerr.Variable("check query", b.Variable, b.Value, fmt.Errorf("unknown outcome: %w", internalerr.ErrInvalidInput))
		}
	}
	return nil
}
