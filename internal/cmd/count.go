package cmd

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dendrascience/utilkit/fileutil"
)

// NewCountCmd creates the count subcommand.
// It provides file counting functionality for directory trees.
func NewCountCmd() *cobra.Command {
	var (
		path         string
		showProgress bool
		limit        int
		showSize     bool
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count files in a directory tree",
		Long: `Count the total number of files in a directory tree.

This is a utility command that recursively walks through a directory
and counts all files (excluding directories). With --limit the walk
stops as soon as the tree holds more than N files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			return runCount(cmd.OutOrStdout(), path, limit, showProgress, showSize)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./", "Path to count files in")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show progress every 10,000 files")
	cmd.Flags().IntVar(&limit, "limit", -1, "Stop counting above this many files (0 or less for no limit)")
	cmd.Flags().BoolVar(&showSize, "size", false, "Also report the total size of the files")

	return cmd
}

func runCount(out io.Writer, path string, limit int, showProgress, showSize bool) error {
	var (
		count int
		over  bool
		err   error
	)
	if showProgress && limit <= 0 {
		err = fileutil.WalkFiles(path, func(string, fs.DirEntry) error {
			count++
			if count%10000 == 0 {
				fmt.Fprintf(out, "Progress: %s files counted\n", humanize.Comma(int64(count)))
			}
			return nil
		})
	} else {
		count, over, err = fileutil.CountFiles(path, limit)
	}
	if err != nil {
		return fmt.Errorf("counting files: %w", err)
	}

	if over {
		fmt.Fprintf(out, "More than %s files\n", humanize.Comma(int64(limit)))
	} else {
		fmt.Fprintf(out, "Total files: %s\n", humanize.Comma(int64(count)))
	}
	if showSize {
		size, err := fileutil.DirSize(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Total size: %s\n", humanize.IBytes(uint64(size)))
	}
	return nil
}
