//go:build tinygo && atsamd21

// Command metrom0-adc prints the Metro M0's A0..A2 readings over USB CDC.
package main

import (
	"time"

	"periphcode-go/board"
	"periphcode-go/drivers/adc"
	"periphcode-go/samd21"
	"periphcode-go/x/conv"
)

const period = 500 * time.Millisecond

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[adc] boot")

	cfg, _ := board.Default(board.MetroM0)
	if err := cfg.Validate(); err != nil {
		fatal("config", err)
	}

	p, err := samd21.Take()
	if err != nil {
		fatal("take", err)
	}
	for _, ch := range cfg.Analog.Channels {
		adc.Channel(ch).Pin().ConfigureAnalog()
	}
	a, err := adc.New(p.GCLK, p.PM, p.NVM, p.ADC)
	if err != nil {
		fatal("adc", err)
	}
	lin, bias := a.Calibration()
	println("[adc] ready linearity=", conv.H8(lin), "bias=", bias)

	tick := time.NewTicker(period)
	defer tick.Stop()
	for range tick.C {
		for _, ch := range cfg.Analog.Channels {
			v := a.Read(adc.Channel(ch))
			println("[adc] ch", ch, "raw", conv.H16(v), "mv", adc.Millivolts(v, cfg.Analog.VDDAMilliVolts))
		}
	}
}

// fatal never returns; construction failures leave nothing useful to run.
func fatal(what string, err error) {
	for {
		println("[adc] fatal:", what, err.Error())
		time.Sleep(time.Second)
	}
}
