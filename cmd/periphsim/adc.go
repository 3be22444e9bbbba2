//go:build !tinygo

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"periphcode-go/drivers/adc"
	"periphcode-go/samd21/sim"
)

func newADCCommand() *cobra.Command {
	var (
		channel uint8
		value   uint16
		vdda    uint32
		lin     uint8
		bias    uint8
	)
	cmd := &cobra.Command{
		Use:   "adc",
		Short: "Convert one channel on a simulated ADC",
		RunE: func(cmd *cobra.Command, args []string) error {
			chip := sim.New(sim.Options{Linearity: lin, Bias: bias})
			a, err := adc.New(chip.P.GCLK, chip.P.PM, chip.P.NVM, chip.P.ADC)
			if err != nil {
				return err
			}
			ch := adc.Channel(channel)
			mux, _ := ch.Muxpos()
			chip.ADC.Inputs[mux] = value & adc.FullScale

			v, err := a.ReadChecked(ch)
			if err != nil {
				return err
			}
			m := chip.ADC
			fmt.Fprintf(cmd.OutOrStdout(), "channel %d pin %v raw 0x%03x %d mV\n",
				channel, ch.Pin(), v, adc.Millivolts(v, vdda))
			fmt.Fprintf(cmd.OutOrStdout(), "calib 0x%04x triggers %d enables %d disables %d violations %d\n",
				m.CALIB.V, m.Triggers, m.Enables, m.Disables, m.Violations)
			return nil
		},
	}
	cmd.Flags().Uint8Var(&channel, "channel", 0, "logical channel 0..2")
	cmd.Flags().Uint16Var(&value, "value", 2048, "simulated input, 12-bit")
	cmd.Flags().Uint32Var(&vdda, "vdda", 3300, "analog supply in mV")
	cmd.Flags().Uint8Var(&lin, "linearity", 0, "factory linearity calibration")
	cmd.Flags().Uint8Var(&bias, "bias", 0, "factory bias calibration")
	return cmd
}
