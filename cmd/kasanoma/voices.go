package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/michsethowusu/kasanoma/internal/voice"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newVoicesCmd(root *rootOptions) *cobra.Command {
	var (
		language string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "voices",
		Short: "List the voice catalog",
		Long: `Scans the voices directory and lists every language folder and voice.

Examples:
  kasanoma voices
  kasanoma voices --language English
  kasanoma voices --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(false)
			if err != nil {
				return err
			}

			catalog, err := voice.Build(cfg.Voices.Dir, cfg.Voices.Extension)
			if err != nil {
				return err
			}

			voices := catalog.AllVoices()
			if language != "" {
				if !catalog.Has(language) {
					return fmt.Errorf("%w: %q", voice.ErrLanguageNotFound, language)
				}
				voices = catalog.Voices(language)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(voices)
			}

			if len(voices) == 0 {
				fmt.Fprintln(out, dimStyle.Render("No voice models found in "+cfg.Voices.Dir))
				return nil
			}

			fmt.Fprintln(out, renderCatalog(catalog, voices))
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d languages, %d voices in %s",
				catalog.Len(), catalog.VoiceCount(), catalog.Root())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Only list this language folder")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func renderCatalog(catalog *voice.Catalog, voices []voice.Voice) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("#", "LANGUAGE", "DISPLAY NAME", "VOICE", "VOICE NAME")

	for i, v := range voices {
		display := v.Language
		if lang, ok := catalog.Language(v.Language); ok {
			display = lang.DisplayName
		}

		t.Row(strconv.Itoa(i+1), v.Language, display, v.Name, v.DisplayName)
	}

	return t.String()
}
