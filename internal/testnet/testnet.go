// Package testnet builds small reference networks shared by tests and examples.
package testnet

import "github.com/cognicore/bayesnet/pkg/bayesnet/network"

func must(c *network.CPT, err error) *network.CPT {
	if err != nil {
		panic(err)
	}
	return c
}

func build(cpts ...*network.CPT) *network.Network {
	n, err := network.New(cpts)
	if err != nil {
		panic(err)
	}
	return n
}

// Chain is A -> B over {T,F}:
// P(A=T)=0.7, P(B=T|A=T)=0.9, P(B=T|A=F)=0.2.
func Chain() *network.Network {
	a := network.MustVariable("A", "T", "F")
	b := network.MustVariable("B", "T", "F")
	return build(
		must(network.NewCPT(a, nil, []float64{0.7, 0.3})),
		must(network.NewCPT(b, []network.Variable{a}, []float64{0.9, 0.1, 0.2, 0.8})),
	)
}

// Alarm is the burglary/earthquake alarm network with outcomes {T,F}.
// The alarm CPT declares its parents as E then B.
func Alarm() *network.Network {
	b := network.MustVariable("B", "T", "F")
	e := network.MustVariable("E", "T", "F")
	a := network.MustVariable("A", "T", "F")
	j := network.MustVariable("J", "T", "F")
	m := network.MustVariable("M", "T", "F")
	return build(
		must(network.NewCPT(b, nil, []float64{0.001, 0.999})),
		must(network.NewCPT(e, nil, []float64{0.002, 0.998})),
		must(network.NewCPT(a, []network.Variable{e, b}, []float64{
			0.95, 0.05, // E=T B=T
			0.29, 0.71, // E=T B=F
			0.94, 0.06, // E=F B=T
			0.001, 0.999, // E=F B=F
		})),
		must(network.NewCPT(j, []network.Variable{a}, []float64{0.9, 0.1, 0.05, 0.95})),
		must(network.NewCPT(m, []network.Variable{a}, []float64{0.7, 0.3, 0.01, 0.99})),
	)
}

// Weather mixes domain sizes: Season (3 outcomes) -> Rain (2) -> Traffic (3),
// and Season -> Wet <- Rain with Wet binary. Parent lists are declared out of
// alphabetical order on purpose.
func Weather() *network.Network {
	season := network.MustVariable("Season", "winter", "spring", "summer")
	rain := network.MustVariable("Rain", "yes", "no")
	traffic := network.MustVariable("Traffic", "low", "medium", "high")
	wet := network.MustVariable("Wet", "yes", "no")
	return build(
		must(network.NewCPT(season, nil, []float64{0.3, 0.3, 0.4})),
		must(network.NewCPT(rain, []network.Variable{season}, []float64{
			0.6, 0.4,
			0.5, 0.5,
			0.1, 0.9,
		})),
		must(network.NewCPT(traffic, []network.Variable{rain}, []float64{
			0.1, 0.3, 0.6,
			0.5, 0.3, 0.2,
		})),
		must(network.NewCPT(wet, []network.Variable{season, rain}, []float64{
			0.95, 0.05, // winter yes
			0.30, 0.70, // winter no
			0.90, 0.10, // spring yes
			0.20, 0.80, // spring no
			0.85, 0.15, // summer yes
			0.05, 0.95, // summer no
		})),
	)
}
