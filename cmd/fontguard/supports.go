package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/fontguard/font"
)

func (a *app) supportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supports FONT TEXT",
		Short: "Report whether a font has glyphs for every character of TEXT",
		Long: `Report whether a font has glyphs for every character of TEXT.

Prints true or false. Exits with status 1 when characters are missing, and lists
them on stderr.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := a.filterFlag(cmd)
			return a.withLibrary(func(lib *font.Library) error {
				face, err := lib.LoadFontFile(args[0])
				if err != nil {
					return fmt.Errorf("load %s: %w", args[0], err)
				}
				defer func() { _ = face.Close() }()

				ok, err := face.SupportsText(args[1], filter)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, ok)
				if ok {
					return nil
				}

				missing, err := face.MissingRunes(args[1], filter)
				if err != nil {
					return err
				}
				return &ExitError{Code: 1, Message: "missing: " + formatRunes(missing)}
			})
		},
	}
	cmd.Flags().Bool("filter", true, "ignore non-printable characters (default from config)")
	return cmd
}

// formatRunes renders runes as "U+0041 'A'" pairs.
func formatRunes(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("U+%04X %q", r, r)
	}
	return strings.Join(parts, ", ")
}
