package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbaird/genoindex"
)

type buildOptions struct {
	reference string
	indexDir  string
}

func newBuildCommand(ctx context.Context) *cobra.Command {
	var opt buildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the chunked positional index for a reference genome",
		Long: `Reads a gzip-compressed FASTA reference, splits each contig into
overlapping chunks and writes a sequence file plus a positional index for
each one under --index-dir. Safe to re-run; existing artifacts are
overwritten in place.`,
		Example: `  genoindex build --reference GRCh38.fa.gz --index-dir ./ref_index`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(ctx, opt)
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.StringVarP(&opt.reference, "reference", "r", "", "gzip-compressed FASTA reference file")
	flags.StringVarP(&opt.indexDir, "index-dir", "i", "", "directory to write the index into")
	return cmd
}

func runBuild(ctx context.Context, opt buildOptions) error {
	if opt.reference == "" {
		return errors.New("no reference provided, use --reference")
	}
	if opt.indexDir == "" {
		return errors.New("no index directory provided, use --index-dir")
	}
	f, err := os.Open(opt.reference)
	if err != nil {
		return err
	}
	ref, err := genoindex.NewFastaGzReader(f)
	if err != nil {
		return err
	}
	defer ref.Close()
	return genoindex.BuildIndex(ref, opt.indexDir)
}
