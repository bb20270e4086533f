package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/utilkit/fileutil"
)

// NewHashCmd creates the hash subcommand, which prints SHA-256 digests and
// optionally copies files into a content-addressed store.
func NewHashCmd() *cobra.Command {
	var (
		store    string
		hashPath bool
	)

	cmd := &cobra.Command{
		Use:   "hash FILE...",
		Short: "Print the SHA-256 hash of files",
		Long: `Print the SHA-256 hash of each file, one "HASH  PATH" line per file.

With --store the files are also copied into a content-addressed store
directory, bucketed by hash, and the stored path is printed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				if store != "" {
					stored, err := fileutil.CopyToStore(path, store)
					if err != nil {
						return err
					}
					logger.Debug("stored", zap.String("file", path), zap.String("dest", stored))
					fmt.Fprintf(out, "%s  %s\n", stored, path)
					continue
				}
				hash, err := fileutil.GetFileHash(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if hashPath {
					hash = fileutil.HashPathFromHash(hash)
				}
				fmt.Fprintf(out, "%s  %s\n", hash, path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "Copy files into this content-addressed store")
	cmd.Flags().BoolVar(&hashPath, "bucketed", false, "Print the bucketed store name instead of the bare hash")

	return cmd
}
