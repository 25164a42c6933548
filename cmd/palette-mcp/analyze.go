package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-mcp/internal/analysis"
	"github.com/ironsheep/palette-mcp/internal/imaging"
)

func (a *app) newAnalyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <path>...",
		Short: "Print the most frequent and the dominant colors of images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.cfg.AnalysisOptions(log.Default())
			if err != nil {
				return err
			}
			analyzer := analysis.NewAnalyzer(opts...)
			cache := imaging.NewImageCache()
			out := cmd.OutOrStdout()

			results := make(map[string]*analysis.Result, len(args))
			for _, path := range args {
				if !imaging.IsSupported(path) {
					return fmt.Errorf("%s: unsupported image format", path)
				}
				px, err := cache.LoadPixels(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				res, err := analyzer.Analyze(px, a.cfg.TopColors)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				cache.Evict(path)

				if asJSON {
					results[path] = res
					continue
				}
				fmt.Fprintln(out, path)
				fmt.Fprintf(out, "  exact:    %s\n", strings.Join(res.Exact, " "))
				fmt.Fprintf(out, "  dominant: %s\n", strings.Join(res.Dominant, " "))
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON keyed by path")
	return cmd
}
