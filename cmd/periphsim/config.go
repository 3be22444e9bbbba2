//go:build !tinygo

package main

import (
	"github.com/spf13/cobra"

	"periphcode-go/board"
)

func newConfigCommand() *cobra.Command {
	var name, file string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Validate a board configuration and print it as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(name, file)
			if err != nil {
				return err
			}
			out, err := c.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "board", board.MetroM0, "built-in board")
	cmd.Flags().StringVar(&file, "file", "", "board YAML file (overrides --board)")
	return cmd
}
