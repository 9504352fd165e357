package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store/sqlite"
)

func newHistoryCmd(g *globals) *cobra.Command {
	var (
		dbPath  string
		limit   int
		records bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded with run --db",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("db") {
				g.settings.DB = dbPath
			}
			if g.settings.DB == "" {
				return fmt.Errorf("history: --db or a settings db is required: %w", internalerr.ErrInvalidInput)
			}

			st, err := sqlite.OpenSQLite(cmd.Context(), g.settings.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tCREATED\tNETWORK\tQUERIES")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.Network, len(r.Records))
				if !records {
					continue
				}
				for _, rec := range r.Records {
					fmt.Fprintf(tw, "\t%s\t%.5f,%d,%d\t\n", rec.Query, rec.Probability, rec.Additions, rec.Multiplications)
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database written by run --db")
	cmd.Flags().IntVar(&limit, "limit", 10, "show at most this many runs, 0 for all")
	cmd.Flags().BoolVar(&records, "records", false, "also list each run's query results")
	return cmd
}
