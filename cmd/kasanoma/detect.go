package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michsethowusu/kasanoma/internal/voice"
)

func newDetectCmd(root *rootOptions) *cobra.Command {
	var fallback string

	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Detect the language of a text from its script",
		Long: `Prints the catalogued language a text would be spoken in and the share of
each script. Reads standard input when no text is given.

Examples:
  kasanoma detect "你好世界"
  echo "Привет" | kasanoma detect`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(false)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(data)
			}

			catalog, err := voice.Build(cfg.Voices.Dir, cfg.Voices.Extension)
			if err != nil {
				return err
			}

			if fallback == "" {
				fallback = catalog.DefaultSelection(cfg.Voices.DefaultLanguage).Language
			}

			stats := voice.Analyze(text)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "language: %s\n", voice.Detect(text, catalog, fallback))
			fmt.Fprintf(out, "script:   %s\n", orNone(stats.Script()))
			fmt.Fprintf(out, "chars:    %d\n", stats.Total)

			ratios := []struct {
				name  string
				count int
			}{
				{"latin", stats.Latin},
				{"cyrillic", stats.Cyrillic},
				{"chinese", stats.Chinese},
				{"japanese", stats.Japanese},
				{"korean", stats.Korean},
				{"arabic", stats.Arabic},
				{"thai", stats.Thai},
			}
			for _, r := range ratios {
				if r.count > 0 {
					fmt.Fprintf(out, "  %-9s %5.1f%%\n", r.name, 100*stats.Ratio(r.count))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&fallback, "fallback", "", "Language printed when detection fails (default: startup language)")

	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}

	return s
}
