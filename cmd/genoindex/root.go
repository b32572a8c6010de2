package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kbaird/genoindex"
)

var verbose bool

func newRootCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "genoindex",
		Short:         "Chunked dictionary-index approximate matcher for DNA patterns against a reference genome.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				genoindex.Log.SetLevel(logrus.DebugLevel)
				genoindex.Log.SetOutput(cmd.ErrOrStderr())
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	cmd.AddCommand(newBuildCommand(ctx))
	cmd.AddCommand(newSearchCommand(ctx))
	return cmd
}
