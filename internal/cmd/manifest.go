package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/utilkit/fileutil"
)

// NewManifestCmd creates the manifest subcommand.
func NewManifestCmd() *cobra.Command {
	var (
		output    string
		recursive bool
		workers   int
		dupes     bool
	)

	cmd := &cobra.Command{
		Use:   "manifest DIR",
		Short: "Hash a directory tree and summarise its contents",
		Long: `Hash every regular file under DIR concurrently and print a summary:
file count, distinct contents, total size and newest modification.

With --output the full manifest is written as JSON. With --dupes files
sharing the same contents are listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := fileutil.BuildManifest(args[0], recursive, workers)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			logger.Debug("manifest built", zap.String("root", args[0]), zap.Int("entries", m.Len()))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Files: %s\n", humanize.Comma(int64(m.Len())))
			fmt.Fprintf(out, "Distinct contents: %s\n", humanize.Comma(int64(m.UniqueCount())))
			fmt.Fprintf(out, "Total size: %s\n", humanize.IBytes(uint64(m.TotalSize())))
			if newest := m.Newest(); !newest.IsZero() {
				fmt.Fprintf(out, "Newest: %s\n", humanize.Time(newest))
			}

			if dupes {
				groups := m.Duplicates()
				for _, h := range slices.Sorted(maps.Keys(groups)) {
					fmt.Fprintf(out, "\n%s\n", h[:12])
					for _, p := range groups[h] {
						fmt.Fprintf(out, "  %s\n", p)
					}
				}
			}

			if output != "" {
				if err := m.Save(output); err != nil {
					return err
				}
				fmt.Fprintf(out, "Manifest written to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the manifest as JSON to this file")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Include subdirectories")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Hashing workers (0 for one per CPU)")
	cmd.Flags().BoolVar(&dupes, "dupes", false, "List files with identical contents")

	return cmd
}
