package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/utilkit/fileutil"
)

// NewCompressCmd creates the compress subcommand.
func NewCompressCmd() *cobra.Command {
	var (
		codec  string
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "compress SRC [DST]",
		Short: "Compress a file with gzip, zstd or lz4",
		Long: `Compress SRC into DST. Without DST the output is SRC plus the codec's
extension (.gz, .zst or .lz4).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := fileutil.ParseCodec(codec)
			if err != nil {
				return fmt.Errorf("invalid --codec %q: %w", codec, err)
			}
			var dst string
			if len(args) > 1 {
				dst = args[1]
			}
			written, err := fileutil.CompressFile(args[0], dst, c)
			if err != nil {
				return err
			}
			reportSizes(cmd, args[0], written)
			if remove {
				return removeSource(args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&codec, "codec", "c", "zstd", "Codec: gzip, zstd or lz4")
	cmd.Flags().BoolVar(&remove, "rm", false, "Remove SRC after compressing")

	return cmd
}

// NewDecompressCmd creates the decompress subcommand.
func NewDecompressCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "decompress SRC [DST]",
		Short: "Decompress a .gz, .zst or .lz4 file",
		Long: `Decompress SRC, choosing the codec from its extension. Without DST the
output is SRC without that extension.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dst string
			if len(args) > 1 {
				dst = args[1]
			}
			written, err := fileutil.DecompressFile(args[0], dst)
			if err != nil {
				return err
			}
			reportSizes(cmd, args[0], written)
			if remove {
				return removeSource(args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "rm", false, "Remove SRC after decompressing")

	return cmd
}

// NewZipCmd creates the zip subcommand.
func NewZipCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "zip DIR ARCHIVE",
		Short: "Pack a directory into a zip archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fileutil.ZipDirectory(args[0], args[1], recursive); err != nil {
				return err
			}
			n, err := fileutil.CountZipEntries(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s entries\n", args[1], humanize.Comma(int64(n)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Include subdirectories")

	return cmd
}

// NewUnzipCmd creates the unzip subcommand.
func NewUnzipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unzip ARCHIVE DIR",
		Short: "Extract a zip archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fileutil.Unzip(args[0], args[1])
		},
	}
}

func reportSizes(cmd *cobra.Command, src, dst string) {
	in, err := fileutil.Size(src)
	if err != nil {
		return
	}
	out, err := fileutil.Size(dst)
	if err != nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s -> %s)\n", src, dst,
		humanize.IBytes(uint64(in)), humanize.IBytes(uint64(out)))
}

func removeSource(path string) error {
	if err := os.Remove(path); err != nil {
		return err
	}
	logger.Debug("removed source", zap.String("file", path))
	return nil
}
