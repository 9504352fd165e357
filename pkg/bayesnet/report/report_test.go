package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
)

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "0.28417,7,32", FormatResult(inference.Result{Probability: 0.284171835, Additions: 7, Multiplications: 32}))
	assert.Equal(t, "1.00000,0,0", FormatResult(inference.Result{Probability: 1}))
	assert.Equal(t, "0.00063,0,4", FormatResult(inference.Result{Probability: 0.000628111, Multiplications: 4}))
}

func TestWriteHasNoTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []inference.Result{
		{Probability: 0.69, Additions: 2},
		{Probability: 0.9},
	}))
	assert.Equal(t, "0.69000,2,0\n0.90000,0,0", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestBuildKeepsOrder(t *testing.T) {
	b := NewBuilder()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	qs := []inference.Query{
		{Target: []inference.Binding{{Variable: "A", Value: "T"}}, Algorithm: inference.Enumeration},
		{Target: []inference.Binding{{Variable: "B", Value: "F"}}, Algorithm: inference.VariableElimination},
	}
	rs := []inference.Result{{Probability: 0.7}, {Probability: 0.31, Additions: 2}}
	rep, err := b.Build("chain", qs, rs)
	require.NoError(t, err)

	assert.Equal(t, "chain", rep.Network)
	assert.Equal(t, fixed, rep.CreatedAt)
	require.Len(t, rep.Lines, 2)
	assert.Equal(t, "P(B=F),2", rep.Lines[1].Query.String())
	assert.Equal(t, rs, rep.Results())

	id, err := ulid.Parse(rep.ID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(fixed), id.Time())

	_, err = b.Build("chain", qs, rs[:1])
	assert.Error(t, err)
}

func TestBuilderIDsAreUniqueAndIncreasing(t *testing.T) {
	b := NewBuilder()
	prev := ""
	for i := 0; i < 1000; i++ {
		rep, err := b.Build("n", nil, nil)
		require.NoError(t, err)
		assert.Greater(t, rep.ID, prev)
		prev = rep.ID
	}
}
