package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

func TestLoadNetworkXMLBIF(t *testing.T) {
	n, err := LoadNetwork(filepath.Join("testdata", "alarm_net.xml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"E", "B", "A", "J", "M"}, network.Names(n.Variables()))
	a, ok := n.CPT("A")
	require.True(t, ok)
	assert.Equal(t, []string{"E", "B"}, a.ParentNames())

	p, err := a.ProbabilityOf(network.Assignment{"A": "T", "E": "F", "B": "T"})
	require.NoError(t, err)
	assert.InDelta(t, 0.94, p, 1e-12)
	assert.NoError(t, n.Validate(1e-9))
}

func TestLoadNetworkYAML(t *testing.T) {
	n, err := LoadNetwork(filepath.Join("testdata", "chain.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, n.Len())

	b, ok := n.CPT("B")
	require.True(t, ok)
	assert.Equal(t, []float64{0.9, 0.1, 0.2, 0.8}, b.Table())
}

func TestLoadNetworkUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	_, err := LoadNetwork(path)
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestDecodeXMLBIFDeclaredCharset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<NETWORK><VARIABLE><NAME>Lluvia</NAME><OUTCOME>s\xed</OUTCOME><OUTCOME>no</OUTCOME></VARIABLE>" +
		"<DEFINITION><FOR>Lluvia</FOR><TABLE>0.25 0.75</TABLE></DEFINITION></NETWORK>"
	ns, err := DecodeXMLBIF(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, ns.Variables, 1)
	assert.Equal(t, []string{"sí", "no"}, ns.Variables[0].Outcomes)

	n, err := ns.Build()
	require.NoError(t, err)
	v, ok := n.Variable("Lluvia")
	require.True(t, ok)
	assert.Equal(t, 2, v.Cardinality())
}

func TestDecodeXMLBIFRejects(t *testing.T) {
	cases := map[string]string{
		"no network": "<BIF></BIF>",
		"bad number": "<NETWORK><VARIABLE><NAME>A</NAME><OUTCOME>T</OUTCOME><OUTCOME>F</OUTCOME></VARIABLE>" +
			"<DEFINITION><FOR>A</FOR><TABLE>0.5 half</TABLE></DEFINITION></NETWORK>",
	}
	for name, doc := range cases {
		_, err := DecodeXMLBIF(strings.NewReader(doc))
		assert.ErrorIs(t, err, internalerr.ErrInvalidInput, name)
	}
}

func TestBuildRejectsBadDefinitions(t *testing.T) {
	tf := []string{"T", "F"}
	cases := map[string]NetworkSpec{
		"undeclared for": {
			Variables:   []VariableSpec{{Name: "A", Outcomes: tf}},
			Definitions: []DefinitionSpec{{For: "A", Table: []float64{0.5, 0.5}}, {For: "Z", Table: []float64{1, 0}}},
		},
		"undeclared given": {
			Variables:   []VariableSpec{{Name: "A", Outcomes: tf}},
			Definitions: []DefinitionSpec{{For: "A", Given: []string{"Z"}, Table: []float64{1, 0, 1, 0}}},
		},
		"missing definition": {
			Variables:   []VariableSpec{{Name: "A", Outcomes: tf}, {Name: "B", Outcomes: tf}},
			Definitions: []DefinitionSpec{{For: "A", Table: []float64{0.5, 0.5}}},
		},
		"duplicate variable": {
			Variables:   []VariableSpec{{Name: "A", Outcomes: tf}, {Name: "A", Outcomes: tf}},
			Definitions: []DefinitionSpec{{For: "A", Table: []float64{0.5, 0.5}}},
		},
		"short table": {
			Variables:   []VariableSpec{{Name: "A", Outcomes: tf}},
			Definitions: []DefinitionSpec{{For: "A", Table: []float64{1}}},
		},
		"cycle": {
			Variables: []VariableSpec{{Name: "A", Outcomes: tf}, {Name: "B", Outcomes: tf}},
			Definitions: []DefinitionSpec{
				{For: "A", Given: []string{"B"}, Table: []float64{1, 0, 1, 0}},
				{For: "B", Given: []string{"A"}, Table: []float64{1, 0, 1, 0}},
			},
		},
	}
	for name, ns := range cases {
		_, err := ns.Build()
		assert.ErrorIs(t, err, internalerr.ErrInvalidInput, name)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, 256, s.CacheSize)
	assert.Empty(t, s.DB)
	lvl, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadSettings(t *testing.T) {
	s, err := LoadSettings(filepath.Join("testdata", "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Workers)
	assert.Equal(t, 0, s.CacheSize)
	assert.InDelta(t, 1e-9, s.Tolerance, 0)
	lvl, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	_, err = LoadSettings(filepath.Join("testdata", "bad_settings.yaml"))
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestLoadInput(t *testing.T) {
	in, err := LoadInput(filepath.Join("testdata", "input.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alarm_net.xml", in.NetworkPath)
	assert.Len(t, in.Queries, 6)

	empty := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\nP(A=T),0\n"), 0644))
	_, err = LoadInput(empty)
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}
