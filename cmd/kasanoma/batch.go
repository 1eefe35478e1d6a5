package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michsethowusu/kasanoma/internal/batch"
)

func newBatchCmd(root *rootOptions) *cobra.Command {
	var (
		csvPath string
		opts    batch.Options
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Synthesize every row of a CSV file",
		Long: `Speaks the text column of every CSV row into <out>/audio_<n>.wav and writes
a metadata CSV with wav_filename and text columns.

Examples:
  kasanoma batch --csv input.csv
  kasanoma batch --csv input.csv --voice kofi --out wavs --metadata metadata.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(false)
			if err != nil {
				return err
			}

			f, err := os.Open(csvPath)
			if err != nil {
				return err
			}
			defer f.Close()

			a, err := newApp(cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			rows, err := batch.Run(cmd.Context(), a.tts, f, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synthesized %d rows into %s\n", len(rows), opts.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "input.csv", "Input CSV file")
	cmd.Flags().StringVar(&opts.OutputDir, "out", "wavs", "Directory for the WAV files")
	cmd.Flags().StringVar(&opts.MetadataPath, "metadata", "metadata.csv", "Metadata CSV to write")
	cmd.Flags().StringVar(&opts.Column, "column", batch.DefaultColumn, "CSV column holding the text")
	cmd.Flags().StringVar(&opts.Voice, "voice", "", "Voice name")
	cmd.Flags().StringVar(&opts.Language, "language", "", "Language folder")
	cmd.Flags().BoolVar(&opts.AutoDetect, "auto-detect", false, "Pick the language of each row from its script")

	return cmd
}
