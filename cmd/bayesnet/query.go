package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/bayesnet/pkg/bayesnet"
	"github.com/cognicore/bayesnet/pkg/bayesnet/config"
	"github.com/cognicore/bayesnet/pkg/bayesnet/query"
	"github.com/cognicore/bayesnet/pkg/bayesnet/report"
)

func newQueryCmd(g *globals) *cobra.Command {
	var networkPath string

	cmd := &cobra.Command{
		Use:   "query --net <network> <query>...",
		Short: "Answer queries given on the command line",
		Example: `  bayesnet query --net alarm_net.xml 'P(B=T|J=T,M=T),2'
  bayesnet query --net chain.yaml 'P(B=T),1' 'P(A=T,B=T)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := config.LoadNetwork(networkPath)
			if err != nil {
				return err
			}
			queries, err := query.NewParser(n).ParseAll(args)
			if err != nil {
				return fmt.Errorf("argument %w", err)
			}

			engine, err := bayesnet.New(bayesnet.Options{
				Network:   n,
				Name:      networkPath,
				Logger:    g.logger,
				Workers:   g.settings.Workers,
				CacheSize: g.settings.CacheSize,
			})
			if err != nil {
				return err
			}
			defer engine.Close()

			out := cmd.OutOrStdout()
			for _, q := range queries {
				r, err := engine.Answer(cmd.Context(), q)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, report.FormatResult(r))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&networkPath, "net", "", "network file (.xml or .yaml)")
	cmd.MarkFlagRequired("net")
	return cmd
}
