package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/wippyai/fontguard/font"
)

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info FONT...",
		Short: "Show family and style names of font files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLibrary(func(lib *font.Library) error {
				table := tablewriter.NewWriter(a.stdout)
				table.Header("File", "Family", "Style", "Notes")
				for _, path := range args {
					face, err := lib.LoadFontFile(path)
					if err != nil {
						return fmt.Errorf("load %s: %w", path, err)
					}
					_ = table.Append(path, face.FamilyName(), face.StyleName(), nameNotes(face))
					if err := face.Close(); err != nil {
						return err
					}
				}
				return table.Render()
			})
		},
	}
}

func nameNotes(face *font.Face) string {
	var notes string
	if face.Family().Lossy {
		notes = "family not UTF-8 (" + strconv.Itoa(len(face.Family().Raw)) + " bytes)"
	}
	if face.Style().Lossy {
		if notes != "" {
			notes += "; "
		}
		notes += "style not UTF-8 (" + strconv.Itoa(len(face.Style().Raw)) + " bytes)"
	}
	return notes
}
