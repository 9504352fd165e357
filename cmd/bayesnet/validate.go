package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/bayesnet/pkg/bayesnet/config"
)

func newValidateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <network>",
		Short: "Check a network's structure and that every CPT column sums to one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := config.LoadNetwork(args[0])
			if err != nil {
				return err
			}
			if err := n.Validate(g.settings.Tolerance); err != nil {
				return fmt.Errorf("validate %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d variables\n", args[0], n.Len())
			for _, c := range n.CPTs() {
				fmt.Fprintf(out, "  %s outcomes=%v\n", c, c.Variable().Outcomes())
			}
			return nil
		},
	}
}
