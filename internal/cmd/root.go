package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/utilkit/internal/logging"
	"github.com/dendrascience/utilkit/version"
)

const (
	groupFiles     = "files"
	groupNetwork   = "network"
	groupUtilities = "utilities"
)

// logger is built by the root command before any subcommand runs.
var logger = logging.Nop()

// NewRootCmd creates the root cobra command for the utilkit CLI with all
// subcommands attached.
func NewRootCmd() *cobra.Command {
	var (
		verbose  bool
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:   "utilkit",
		Short: "utilkit - everyday file, network and drawing helpers",
		Long: `utilkit bundles the helpers of the utilkit Go library behind a small CLI.

Use subcommands to perform different operations:
  - hash, compress, decompress, zip, unzip, count, manifest, verify: work with files
  - download: fetch URLs over HTTP
  - config: read and edit properties, INI and YAML files
  - svg: draw simple SVG documents
  - seed: generate sample files`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if verbose {
				level = "debug"
			} else if !cmd.Flags().Changed("log-level") {
				logger = logging.Nop()
				return nil
			}
			l, _, err := logging.New(logging.Options{Level: level, Development: true})
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddGroup(&cobra.Group{ID: groupFiles, Title: "File Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: groupNetwork, Title: "Network Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: groupUtilities, Title: "Utility Commands"})

	for _, c := range []*cobra.Command{
		NewHashCmd(),
		NewCompressCmd(),
		NewDecompressCmd(),
		NewZipCmd(),
		NewUnzipCmd(),
		NewCountCmd(),
		NewManifestCmd(),
		NewVerifyCmd(),
	} {
		c.GroupID = groupFiles
		rootCmd.AddCommand(c)
	}

	downloadCmd := NewDownloadCmd()
	downloadCmd.GroupID = groupNetwork
	rootCmd.AddCommand(downloadCmd)

	for _, c := range []*cobra.Command{NewConfigCmd(), NewSVGCmd(), NewSeedCmd(), NewVersionCmd()} {
		c.GroupID = groupUtilities
		rootCmd.AddCommand(c)
	}

	return rootCmd
}
