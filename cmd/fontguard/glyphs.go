package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/wippyai/fontguard/font"
)

func (a *app) glyphsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "glyphs FONT TEXT",
		Short: "List the glyph id of every character of TEXT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLibrary(func(lib *font.Library) error {
				face, err := lib.LoadFontFile(args[0])
				if err != nil {
					return fmt.Errorf("load %s: %w", args[0], err)
				}
				defer func() { _ = face.Close() }()

				ids, err := face.GlyphIDs(args[1])
				if err != nil {
					return err
				}

				table := tablewriter.NewWriter(a.stdout)
				table.Header("Char", "Code point", "Glyph")
				runes := []rune(args[1])
				i := 0
				for id, err := range ids {
					if err != nil {
						return err
					}
					r := runes[i]
					i++
					_ = table.Append(strconv.QuoteRune(r), fmt.Sprintf("U+%04X", r), strconv.FormatUint(uint64(id), 10))
				}
				return table.Render()
			})
		},
	}
}
