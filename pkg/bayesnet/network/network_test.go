package network_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/bayesnet/internal/testnet"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

func TestNewVariableRejectsBadDomains(t *testing.T) {
	_, err := network.NewVariable("", "T")
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = network.NewVariable("A")
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = network.NewVariable("A", "T", "T")
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestOutcomeIndex(t *testing.T) {
	v := network.MustVariable("Season", "winter", "spring", "summer")

	idx, err := v.OutcomeIndex("summer")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = v.OutcomeIndex("autumn")
	assert.ErrorIs(t, err, internalerr.ErrInvalidOutcome)
}

func TestOffsetAndAtRoundTrip(t *testing.T) {
	scope := []network.Variable{
		network.MustVariable("X", "a", "b", "c"),
		network.MustVariable("Y", "0", "1"),
	}
	require.Equal(t, 6, network.Size(scope))

	// Y is the fastest digit.
	assert.Equal(t, network.Assignment{"X": "a", "Y": "1"}, network.At(scope, 1))
	assert.Equal(t, network.Assignment{"X": "b", "Y": "0"}, network.At(scope, 2))

	for i := 0; i < network.Size(scope); i++ {
		off, err := network.Offset(scope, network.At(scope, i))
		require.NoError(t, err)
		assert.Equal(t, i, off)
	}
}

func TestOffsetErrors(t *testing.T) {
	scope := []network.Variable{network.MustVariable("X", "a", "b")}

	_, err := network.Offset(scope, network.Assignment{"Y": "a"})
	assert.ErrorIs(t, err, internalerr.ErrMissingAssignment)

	_, err = network.Offset(scope, network.Assignment{"X": "z"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidOutcome)
}

func TestCPTProbabilityOfUsesDeclaredOrder(t *testing.T) {
	net := testnet.Alarm()
	alarm, ok := net.CPT("A")
	require.True(t, ok)
	assert.Equal(t, []string{"E", "B"}, alarm.ParentNames())

	p, err := alarm.ProbabilityOf(network.Assignment{"E": "T", "B": "F", "A": "T"})
	require.NoError(t, err)
	assert.InDelta(t, 0.29, p, 1e-12)

	p, err = alarm.ProbabilityOf(network.Assignment{"E": "F", "B": "T", "A": "F", "J": "T"})
	require.NoError(t, err)
	assert.InDelta(t, 0.06, p, 1e-12)

	_, err = alarm.ProbabilityOf(network.Assignment{"A": "T", "E": "T"})
	assert.ErrorIs(t, err, internalerr.ErrMissingAssignment)
}

func TestNewCPTRejectsWrongTableLength(t *testing.T) {
	a := network.MustVariable("A", "T", "F")
	b := network.MustVariable("B", "T", "F")

	_, err := network.NewCPT(b, []network.Variable{a}, []float64{0.5, 0.5})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = network.NewCPT(b, []network.Variable{b}, []float64{0.5, 0.5, 0.5, 0.5})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestCPTColumnsSumToOne(t *testing.T) {
	for name, net := range map[string]*network.Network{
		"chain":   testnet.Chain(),
		"alarm":   testnet.Alarm(),
		"weather": testnet.Weather(),
	} {
		assert.NoError(t, net.Validate(1e-9), name)
	}

	b := network.MustVariable("B", "T", "F")
	bad, err := network.NewCPT(b, nil, []float64{0.5, 0.4})
	require.NoError(t, err)
	net, err := network.New([]*network.CPT{bad})
	require.NoError(t, err)
	assert.ErrorIs(t, net.Validate(1e-9), internalerr.ErrInvalidInput)
}

func TestNetworkStructureChecks(t *testing.T) {
	a := network.MustVariable("A", "T", "F")
	b := network.MustVariable("B", "T", "F")

	orphan, err := network.NewCPT(b, []network.Variable{a}, []float64{0.9, 0.1, 0.2, 0.8})
	require.NoError(t, err)
	_, err = network.New([]*network.CPT{orphan})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput, "parent without a cpt")

	ab, err := network.NewCPT(a, []network.Variable{b}, []float64{0.5, 0.5, 0.5, 0.5})
	require.NoError(t, err)
	_, err = network.New([]*network.CPT{ab, orphan})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput, "cycle")

	rootA, err := network.NewCPT(a, nil, []float64{0.5, 0.5})
	require.NoError(t, err)
	_, err = network.New([]*network.CPT{rootA, rootA})
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput), "duplicate definition")

	wide := network.MustVariable("A", "T", "F", "U")
	mismatched, err := network.NewCPT(b, []network.Variable{wide}, make([]float64, 6))
	require.NoError(t, err)
	_, err = network.New([]*network.CPT{rootA, mismatched})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput, "domain mismatch")
}

func TestAncestors(t *testing.T) {
	net := testnet.Alarm()

	got := network.Ancestors(net.CPTs(), "J")
	assert.Equal(t, map[string]struct{}{"J": {}, "A": {}, "E": {}, "B": {}}, got)

	got = network.Ancestors(net.CPTs(), "B")
	assert.Equal(t, map[string]struct{}{"B": {}}, got)
}

func TestCPTIsImmutable(t *testing.T) {
	net := testnet.Chain()
	c, _ := net.CPT("B")

	table := c.Table()
	table[0] = 42
	parents := c.Parents()
	parents[0] = network.MustVariable("Z", "x")

	p, err := c.ProbabilityOf(network.Assignment{"A": "T", "B": "T"})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, p, 1e-12)
	assert.Equal(t, []string{"A"}, c.ParentNames())
}
