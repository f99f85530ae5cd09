package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/fontguard/font"
)

type probeResult struct {
	path    string
	family  string
	missing []rune
	err     error
}

func (a *app) probeCommand() *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "probe --text TEXT FONT...",
		Short: "Check many fonts for coverage of TEXT in parallel",
		Long: `Check many fonts for coverage of TEXT in parallel.

Every worker pins its OS thread and loads fonts through its own library, so no
face is ever shared between threads. Exits with status 2 if any font fails to load.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.probe(cmd, text, args)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(a.stdout)
			table.Header("Font", "Family", "Supported", "Missing")
			failed := 0
			for _, r := range results {
				switch {
				case r.err != nil:
					failed++
					_ = table.Append(r.path, "", "error", r.err.Error())
				default:
					_ = table.Append(r.path, r.family, strconv.FormatBool(len(r.missing) == 0), formatRunes(r.missing))
				}
			}
			if err := table.Render(); err != nil {
				return err
			}
			if failed > 0 {
				return &ExitError{Code: 2, Message: fmt.Sprintf("%d of %d fonts failed to load", failed, len(results))}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "text to check (required)")
	cmd.Flags().Bool("filter", true, "ignore non-printable characters (default from config)")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

// probe fans paths out over cfg.Probe.Workers goroutines. Results keep the
// order of paths; per-font failures are recorded, not returned.
func (a *app) probe(cmd *cobra.Command, text string, paths []string) ([]probeResult, error) {
	filter := a.filterFlag(cmd)
	results := make([]probeResult, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(a.cfg.Probe.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.probeOne(path, text, filter)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *app) probeOne(path, text string, filter bool) probeResult {
	res := probeResult{path: path}
	res.err = a.withLibrary(func(lib *font.Library) error {
		face, err := lib.LoadFontFile(path)
		if err != nil {
			return err
		}
		defer func() { _ = face.Close() }()

		a.log.Debug("probing font",
			zap.String("path", path),
			zap.Uint64("owner", uint64(face.Owner())))

		res.family = face.FamilyName()
		res.missing, err = face.MissingRunes(text, filter)
		return err
	})
	return res
}
