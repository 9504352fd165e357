package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cognicore/bayesnet/pkg/bayesnet/config"
)

// globals are the settings and logger shared by every subcommand, resolved
// before the subcommand runs.
type globals struct {
	configPath string
	logLevel   string

	settings config.Settings
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{settings: config.DefaultSettings()}

	root := &cobra.Command{
		Use:   "bayesnet",
		Short: "Exact inference over discrete Bayesian networks",
		Long: `bayesnet answers P(query | evidence) over a discrete Bayesian network
loaded from an XMLBIF (.xml) or YAML (.yaml) file.

Each query selects an algorithm:
  0  lookup of a full joint assignment
  1  enumeration
  2  variable elimination, lexicographic order
  3  variable elimination, smallest-factor-first order`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.resolve(cmd)
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "settings file (YAML)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newRunCmd(g),
		newQueryCmd(g),
		newValidateCmd(g),
		newHistoryCmd(g),
	)
	return root
}

// resolve loads the settings file, applies flag overrides and builds the
// logger. Logs go to stderr so results on stdout stay machine-readable.
func (g *globals) resolve(cmd *cobra.Command) error {
	if g.configPath != "" {
		s, err := config.LoadSettings(g.configPath)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		g.settings = *s
	}
	if cmd.Flags().Changed("log-level") {
		g.settings.LogLevel = g.logLevel
	}
	level, err := g.settings.Level()
	if err != nil {
		return err
	}
	g.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}
