// Package report assembles and writes the results of a batch of queries.
package report

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
)

// Line is one answered query.
type Line struct {
	Query  inference.Query
	Result inference.Result
}

// Report is the outcome of one run, lines in input order.
type Report struct {
	ID        string
	Network   string
	CreatedAt time.Time
	Lines     []Line
}

// Builder stamps reports with monotonic ULIDs. Safe for concurrent use.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewBuilder creates a new report builder
func NewBuilder() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Build pairs queries with their results. The slices must be the same length.
func (b *Builder) Build(networkName string, queries []inference.Query, results []inference.Result) (Report, error) {
	if len(queries) != len(results) {
		return Report{}, fmt.Errorf("report: %d queries but %d results", len(queries), len(results))
	}

	b.mu.Lock()
	now := b.now().UTC()
	id, err := ulid.New(ulid.Timestamp(now), b.entropy)
	b.mu.Unlock()
	if err != nil {
		return Report{}, fmt.Errorf("report id: %w", err)
	}

	rep := Report{
		ID:        id.String(),
		Network:   networkName,
		CreatedAt: now,
		Lines:     make([]Line, len(queries)),
	}
	for i := range queries {
		rep.Lines[i] = Line{Query: queries[i], Result: results[i]}
	}
	return rep, nil
}

// FormatResult renders one result as "probability,additions,multiplications"
// with the probability rounded to five decimals.
func FormatResult(r inference.Result) string {
	return fmt.Sprintf("%.5f,%d,%d", r.Probability, r.Additions, r.Multiplications)
}

// Write emits one FormatResult line per result, separated by newlines with
// no trailing newline.
func Write(w io.Writer, results []inference.Result) error {
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = FormatResult(r)
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// Results lists the results of rep in order.
func (rep Report) Results() []inference.Result {
	out := make([]inference.Result, len(rep.Lines))
	for i, l := range rep.Lines {
		out[i] = l.Result
	}
	return out
}
