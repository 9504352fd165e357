package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/bayesnet/pkg/bayesnet"
	"github.com/cognicore/bayesnet/pkg/bayesnet/config"
	"github.com/cognicore/bayesnet/pkg/bayesnet/report"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store/sqlite"
)

func newRunCmd(g *globals) *cobra.Command {
	var (
		outputPath  string
		networkPath string
		workers     int
		dbPath      string
	)

	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Answer every query of an input file",
		Long: `Answer every query of an input file. The first line of the input names
the network file, relative to the input's directory; each further line is a
query such as P(B=T|J=T,M=T),2. One "probability,additions,multiplications"
line is written per query, in input order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				g.settings.Workers = workers
			}
			if cmd.Flags().Changed("db") {
				g.settings.DB = dbPath
			}

			loader := &config.Loader{InputPath: args[0], NetworkPath: networkPath}
			comp, err := loader.Load()
			if err != nil {
				return err
			}
			if err := comp.Network.Validate(g.settings.Tolerance); err != nil {
				g.logger.Warn("network columns do not sum to one", "network", comp.NetworkPath, "error", err)
			}

			engine, err := buildEngine(cmd.Context(), g, comp)
			if err != nil {
				return err
			}
			defer engine.Close()

			rep, err := engine.Run(cmd.Context(), comp.Queries)
			if err != nil {
				return err
			}
			return writeResults(cmd.OutOrStdout(), outputPath, rep)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write results to this file instead of stdout")
	cmd.Flags().StringVar(&networkPath, "net", "", "network file, overrides the input's first line")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultSettings().Workers, "queries evaluated concurrently")
	cmd.Flags().StringVar(&dbPath, "db", "", "record the run in this SQLite database")
	return cmd
}

func buildEngine(ctx context.Context, g *globals, comp *config.Components) (*bayesnet.Bayesnet, error) {
	var st store.Store
	if g.settings.DB != "" {
		var err error
		if st, err = sqlite.OpenSQLite(ctx, g.settings.DB); err != nil {
			return nil, fmt.Errorf("open history db: %w", err)
		}
	}
	engine, err := bayesnet.New(bayesnet.Options{
		Network:   comp.Network,
		Name:      comp.NetworkPath,
		Store:     st,
		Logger:    g.logger,
		Workers:   g.settings.Workers,
		CacheSize: g.settings.CacheSize,
	})
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, err
	}
	return engine, nil
}

// writeResults writes to path when set. Files get no trailing newline;
// stdout gets one.
func writeResults(stdout io.Writer, path string, rep report.Report) error {
	if path == "" {
		if err := report.Write(stdout, rep.Results()); err != nil {
			return err
		}
		if len(rep.Lines) > 0 {
			_, err := io.WriteString(stdout, "\n")
			return err
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, rep.Results()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
