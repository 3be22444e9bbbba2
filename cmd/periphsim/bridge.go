//go:build !tinygo

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"periphcode-go/board"
	"periphcode-go/drivers/adc"
	"periphcode-go/drivers/i2cslave"
	"periphcode-go/samd21/sim"
	"periphcode-go/services/adcbridge"
	"periphcode-go/x/irq"
)

func newBridgeCommand() *cobra.Command {
	var (
		name   string
		file   string
		values []uint
	)
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Run the ADC to I2C bridge once on a simulated board",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(name, file)
			if err != nil {
				return err
			}
			chip := sim.New()
			a, err := adc.New(chip.P.GCLK, chip.P.PM, chip.P.NVM, chip.P.ADC)
			if err != nil {
				return err
			}
			chans := make([]adc.Channel, len(cfg.Analog.Channels))
			for i, ch := range cfg.Analog.Channels {
				chans[i] = adc.Channel(ch)
			}
			for i, v := range values {
				if i >= adc.NumChannels {
					break
				}
				mux, _ := adc.Channel(i).Muxpos()
				chip.ADC.Inputs[mux] = uint16(v) & adc.FullScale
			}
			svc, err := adcbridge.New(a, chans)
			if err != nil {
				return err
			}

			sda, scl, err := cfg.I2CSlave.Pins()
			if err != nil {
				return err
			}
			s := chip.P.Sercom[cfg.I2CSlave.Sercom]
			c, err := i2cslave.New(s, chip.P.PM, sda, scl, cfg.I2CSlave.Address)
			if err != nil {
				return err
			}
			var slot irq.Slot[i2cslave.Controller]
			if err := slot.Init(c); err != nil {
				return err
			}
			chip.Sercom[s.Index()].Handler = func() { slot.Service(svc.Handle) }

			if err := svc.Poll(); err != nil {
				return err
			}
			buf := make([]byte, 2*len(chans))
			if err := chip.Master().Tx(uint16(cfg.I2CSlave.Address), nil, buf); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s addr 0x%02x frame %s\n", cfg.Name, cfg.I2CSlave.Address, board.Bytes(buf))
			for i, ch := range chans {
				raw := uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
				fmt.Fprintf(cmd.OutOrStdout(), "  ch%d %4d %4d mV\n", ch, raw, adc.Millivolts(raw, cfg.Analog.VDDAMilliVolts))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "board", board.MetroM0, "built-in board")
	cmd.Flags().StringVar(&file, "file", "", "board YAML file (overrides --board)")
	cmd.Flags().UintSliceVar(&values, "values", []uint{1024, 2048, 3072}, "simulated inputs for channels 0..2")
	return cmd
}

func loadConfig(name, file string) (board.Config, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return board.Config{}, err
		}
		return board.LoadYAML(b)
	}
	c, ok := board.Default(name)
	if !ok {
		return board.Config{}, fmt.Errorf("unknown board %q (known: %v)", name, board.Names())
	}
	return c, c.Validate()
}
