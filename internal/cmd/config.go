package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/dendrascience/utilkit/config"
)

// NewConfigCmd creates the config command and its get, set, list and unset
// subcommands. The file format follows the extension of FILE.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and edit properties, INI and YAML files",
		Long: `Read and edit configuration files as flat key-value pairs.

Nested keys are addressed with dots: "server.port" is the key port in the
INI section [server] or under the YAML mapping server.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get FILE KEY",
			Short: "Print the value of a key",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := config.Load(args[0])
				if err != nil {
					return err
				}
				v, ok := c.Get(args[1])
				if !ok {
					return fmt.Errorf("%s: key %q: %w", args[0], args[1], config.ErrNotFound)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set FILE KEY VALUE",
			Short: "Set a key, creating the file if needed",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := loadOrNew(args[0])
				if err != nil {
					return err
				}
				c.Set(args[1], args[2])
				return c.Save(args[0])
			},
		},
		&cobra.Command{
			Use:   "unset FILE KEY",
			Short: "Remove a key",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := config.Load(args[0])
				if err != nil {
					return err
				}
				if !c.Remove(args[1]) {
					return fmt.Errorf("%s: key %q: %w", args[0], args[1], config.ErrNotFound)
				}
				return c.Save(args[0])
			},
		},
		&cobra.Command{
			Use:   "list FILE [PREFIX]",
			Short: "Print all keys as key = value",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := config.Load(args[0])
				if err != nil {
					return err
				}
				if len(args) > 1 {
					c = c.Sub(args[1])
				}
				out := cmd.OutOrStdout()
				for _, k := range c.Keys() {
					v, _ := c.Get(k)
					fmt.Fprintf(out, "%s = %s\n", k, v)
				}
				return nil
			},
		},
	)

	return cmd
}

func loadOrNew(path string) (*config.Configuration, error) {
	c, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.New(), nil
	}
	return c, err
}
