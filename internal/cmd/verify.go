package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/utilkit/console"
	"github.com/dendrascience/utilkit/fileutil"
)

// NewVerifyCmd creates the verify subcommand, which checks a
// content-addressed store written by "hash --store".
func NewVerifyCmd() *cobra.Command {
	var (
		showAll bool
		repair  bool
	)

	cmd := &cobra.Command{
		Use:   "verify STORE",
		Short: "Verify a content-addressed store",
		Long: `Verify every file in a content-addressed store.

Each file name must be a bucketed hash name, the file must sit in the
bucket directory its name implies, and its contents must hash to the name.
With --repair misplaced or corrupt files are stored again under their real
content address and the bad copy is removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args[0], showAll, repair)
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Report valid files as well")
	cmd.Flags().BoolVarP(&repair, "repair", "r", false, "Re-store misplaced and corrupt files")

	return cmd
}

func runVerify(cmd *cobra.Command, store string, showAll, repair bool) error {
	if !fileutil.IsDir(store) {
		return fmt.Errorf("%s: %w", store, fileutil.ErrExpectedDirectory)
	}
	con := console.New(cmd.OutOrStdout())

	var checked, bad int
	err := fileutil.WalkFiles(store, func(path string, _ fs.DirEntry) error {
		checked++
		problem := verifyStoreFile(store, path)
		if problem == "" {
			if showAll {
				con.Success("%s", path)
			}
			return nil
		}
		bad++
		con.Error("%s: %s", path, problem)
		if repair {
			stored, err := fileutil.CopyToStore(path, store)
			if err != nil {
				con.Warn("repair failed: %v", err)
				return nil
			}
			if stored != path {
				if err := os.Remove(path); err != nil {
					return err
				}
			}
			logger.Debug("repaired", zap.String("from", path), zap.String("to", stored))
			con.Info("re-stored as %s", stored)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking store: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nVerification complete:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Files checked: %s\n", humanize.Comma(int64(checked)))
	fmt.Fprintf(cmd.OutOrStdout(), "  Problems: %s\n", humanize.Comma(int64(bad)))
	if bad > 0 && !repair {
		return fmt.Errorf("%d of %d files failed verification", bad, checked)
	}
	return nil
}

// verifyStoreFile returns a description of what is wrong with path, or ""
// when it is a valid store entry.
func verifyStoreFile(store, path string) string {
	want, err := fileutil.HashFromHashPath(path)
	if err != nil {
		return "not a content-addressed name"
	}
	name := filepath.Base(path)
	prefix, err := fileutil.StorePrefixFromHashPath(name)
	if err != nil {
		return "not a content-addressed name"
	}
	if filepath.Dir(path) != filepath.Join(store, prefix) {
		return "stored outside bucket " + filepath.ToSlash(prefix)
	}
	if !strings.HasPrefix(name, fileutil.HashPathFromHash(want)) {
		return "bucket does not match hash"
	}
	got, err := fileutil.GetFileHash(path)
	if err != nil {
		return err.Error()
	}
	if got != want {
		return "content hash " + got[:12] + " does not match name"
	}
	return ""
}
