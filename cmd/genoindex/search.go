package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbaird/genoindex"
)

type searchOptions struct {
	reference  string
	indexDir   string
	mismatches int
	workers    int
	output     string
}

func newSearchCommand(ctx context.Context) *cobra.Command {
	var opt searchOptions

	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search a reference index for approximate matches of a pattern",
		Long: `Locates every near-match (up to --mismatches substitutions) of <pattern>
in the reference index, on either strand. Builds the index first if
--index-dir is missing or empty and --reference is given.`,
		Example: `  genoindex search --index-dir ./ref_index --mismatches 1 TGGATGTGAAATGAGTCAAG`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(ctx, opt, args[0])
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.StringVarP(&opt.reference, "reference", "r", "", "gzip-compressed FASTA reference file, used to build the index if absent")
	flags.StringVarP(&opt.indexDir, "index-dir", "i", "", "directory holding (or to hold) the index")
	flags.IntVarP(&opt.mismatches, "mismatches", "k", 0, "maximum number of substitution mismatches tolerated")
	flags.IntVarP(&opt.workers, "workers", "n", 0, "number of parallel chunk-search workers (default: min(8, NumCPU))")
	flags.StringVarP(&opt.output, "output", "o", "", "output file (default: alignments_<pattern>.txt; use - for stdout)")
	return cmd
}

func runSearch(ctx context.Context, opt searchOptions, pattern string) error {
	if opt.indexDir == "" {
		return errors.New("no index directory provided, use --index-dir")
	}

	out := os.Stdout
	outPath := opt.output
	if outPath == "" {
		outPath = "alignments_" + pattern + ".txt"
	}
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	d := genoindex.Driver{
		RefPath:  opt.reference,
		IndexDir: opt.indexDir,
		Workers:  opt.workers,
		Out:      out,
	}
	return d.Run(ctx, []byte(pattern), opt.mismatches)
}
