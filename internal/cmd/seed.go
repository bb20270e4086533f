package cmd

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dendrascience/utilkit/fileutil"
)

// NewSeedCmd creates the seed subcommand, which fills a directory with
// sample files for trying out count, hash, zip and verify.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		poolSize   int
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate sample files in a dated directory tree",
		Long: `Generate sample files under YYYY/MM/DD/HH directories.

Each file holds one UUID drawn from a small pool, so many files share
content, which makes the tree useful for exercising the content-addressed
store. A fixed --seed reproduces the same tree, contents included.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileCount <= 0 || poolSize <= 0 {
				return fmt.Errorf("--count and --pool must be positive")
			}
			return runSeed(cmd.OutOrStdout(), outputPath, fileCount, poolSize, seed)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 1000, "Number of files to generate")
	cmd.Flags().IntVar(&poolSize, "pool", 50, "Number of distinct file contents")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed, 0 for a random layout")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(out io.Writer, outputPath string, fileCount, poolSize int, seed uint64) error {
	if seed == 0 {
		seed = rand.Uint64()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	pool := make([]string, poolSize)
	for i := range pool {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return err
		}
		pool[i] = id.String()
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dirs := make(map[string]int)
	created := 0
	for created < fileCount {
		t := base.Add(time.Duration(rng.Int64N(int64(365 * 24 * time.Hour))))
		// Most files land at the deepest level.
		depth := 4
		if r := rng.IntN(100); r < 10 {
			depth = 1 + r%3
		}
		parts := []string{
			fmt.Sprintf("%04d", t.Year()),
			fmt.Sprintf("%02d", t.Month()),
			fmt.Sprintf("%02d", t.Day()),
			fmt.Sprintf("%02d", t.Hour()),
		}[:depth]
		dir := filepath.Join(append([]string{outputPath}, parts...)...)

		ext := ".json"
		if rng.IntN(2) == 1 {
			ext = ".txt"
		}
		path := filepath.Join(dir, fmt.Sprintf("%08x%s", rng.Uint32(), ext))
		if fileutil.Exists(path) {
			continue
		}
		if err := fileutil.EnsureDir(dir); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(pool[rng.IntN(poolSize)]+"\n"), 0o644); err != nil {
			return err
		}
		dirs[dir]++
		created++
	}

	fmt.Fprintf(out, "Created %s files in %s directories (seed %d)\n",
		humanize.Comma(int64(created)), humanize.Comma(int64(len(dirs))), seed)
	return nil
}
