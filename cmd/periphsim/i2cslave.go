//go:build !tinygo

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"periphcode-go/board"
	"periphcode-go/drivers/i2cslave"
	"periphcode-go/samd21"
	"periphcode-go/samd21/sim"
	"periphcode-go/x/irq"
)

func newI2CSlaveCommand() *cobra.Command {
	var (
		cfg   board.I2CSlave
		reply string
		addr  uint8
		read  int
		times int
	)
	cmd := &cobra.Command{
		Use:   "i2cslave",
		Short: "Read from a simulated I2C slave through a bus master",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := board.ParseBytes(reply)
			if err != nil {
				return err
			}
			sda, scl, err := cfg.Pins()
			if err != nil {
				return err
			}
			chip := sim.New()
			s, err := chip.P.SercomByIndex(int(cfg.Sercom))
			if err != nil {
				return err
			}
			c, err := i2cslave.New(s, chip.P.PM, sda, scl, cfg.Address)
			if err != nil {
				return err
			}

			var slot irq.Slot[i2cslave.Controller]
			if err := slot.Init(c); err != nil {
				return err
			}
			m := chip.Sercom[s.Index()]
			m.Handler = func() {
				slot.Service(func(c *i2cslave.Controller) {
					if c.IsReadRequest() {
						c.StageReply(r)
					}
					c.ServiceInterrupt()
				})
			}

			if addr == 0 {
				addr = cfg.Address
			}
			bus := chip.Master()
			buf := make([]byte, read)
			for i := 0; i < times; i++ {
				if err := bus.Tx(uint16(addr), nil, buf); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "read %s\n", board.Bytes(buf))
			}
			idx, size := c.Cursor()
			fmt.Fprintf(cmd.OutOrStdout(), "sercom %d sent %d bytes, acks %d, cursor %d/%d\n",
				s.Index(), len(m.Sent), m.Responds, idx, size)
			return nil
		},
	}
	cmd.Flags().Uint8Var(&cfg.Sercom, "sercom", 3, "SERCOM index")
	cmd.Flags().StringVar(&cfg.SDA, "sda", samd21.PA22.String(), "SDA pin (PAD0)")
	cmd.Flags().StringVar(&cfg.SCL, "scl", samd21.PA23.String(), "SCL pin (PAD1)")
	cmd.Flags().Uint8Var(&cfg.Address, "slave-addr", 0x21, "slave address")
	cmd.Flags().Uint8Var(&addr, "addr", 0, "address the master reads (default: slave address)")
	cmd.Flags().StringVar(&reply, "reply", "1c 9a", "staged reply, hex pairs")
	cmd.Flags().IntVar(&read, "read", 3, "bytes per read")
	cmd.Flags().IntVar(&times, "times", 1, "number of reads")
	return cmd
}
