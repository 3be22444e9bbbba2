//go:build !tinygo

package main

import (
	"io"

	"github.com/spf13/cobra"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "periphsim",
		Short:        "Exercise the SAMD21 ADC and I2C slave drivers off-target",
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.AddCommand(newADCCommand())
	cmd.AddCommand(newI2CSlaveCommand())
	cmd.AddCommand(newBridgeCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newMonitorCommand())
	return cmd
}
