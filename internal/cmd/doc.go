// Package cmd provides the command-line interface implementation for utilkit.
//
// It uses the Cobra library for command structure; main wraps the root
// command with Fang for styled help and errors.
//
// Commands are grouped on the root:
//   - Files: hash, compress, decompress, zip, unzip, count, manifest, verify
//   - Network: download
//   - Utilities: config, svg, seed, version
//
// Each command lives in its own file with a constructor returning a
// *cobra.Command. Commands write to cmd.OutOrStdout so tests can capture
// their output, and log operational detail through the zap logger that the
// root command builds from --verbose and --log-level.
package cmd
