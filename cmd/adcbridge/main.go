//go:build tinygo && atsamd21

// Command adcbridge turns a Metro M0 into an I2C ADC: A0..A2 are sampled
// periodically and a master reading address 0x21 gets the latest values,
// two bytes each, big-endian.
package main

import (
	"context"
	"device/sam"
	"runtime/interrupt"
	"time"

	"periphcode-go/board"
	"periphcode-go/drivers/adc"
	"periphcode-go/drivers/i2cslave"
	"periphcode-go/errcode"
	"periphcode-go/samd21"
	"periphcode-go/services/adcbridge"
	"periphcode-go/x/conv"
	"periphcode-go/x/irq"
)

var (
	slot irq.Slot[i2cslave.Controller]
	svc  *adcbridge.Service
)

func isr(interrupt.Interrupt) { slot.Service(svc.Handle) }

func main() {
	time.Sleep(2 * time.Second)
	println("[bridge] boot")

	cfg, _ := board.Default(board.MetroM0)
	if err := cfg.Validate(); err != nil {
		fatal("config", err)
	}
	if cfg.I2CSlave.Sercom != 3 {
		fatal("config", &errcode.E{C: errcode.UnknownBlock, Op: "bridge", Msg: "vector is SERCOM3"})
	}

	p, err := samd21.Take()
	if err != nil {
		fatal("take", err)
	}

	chans := make([]adc.Channel, len(cfg.Analog.Channels))
	for i, ch := range cfg.Analog.Channels {
		chans[i] = adc.Channel(ch)
		chans[i].Pin().ConfigureAnalog()
	}
	a, err := adc.New(p.GCLK, p.PM, p.NVM, p.ADC)
	if err != nil {
		fatal("adc", err)
	}
	if svc, err = adcbridge.New(a, chans); err != nil {
		fatal("service", err)
	}

	s := p.Sercom[cfg.I2CSlave.Sercom]
	sda, scl, err := cfg.I2CSlave.Pins()
	if err != nil {
		fatal("pins", err)
	}
	for _, pin := range []samd21.Pin{sda, scl} {
		if err := pin.ConfigureSercom(s.Index()); err != nil {
			fatal("pins", err)
		}
	}
	if err := p.GCLK.Attach(s.ClockID(), samd21.GCLK_GEN0); err != nil {
		fatal("clock", err)
	}
	c, err := i2cslave.New(s, p.PM, sda, scl, cfg.I2CSlave.Address)
	if err != nil {
		fatal("i2cslave", err)
	}
	if err := slot.Init(c); err != nil {
		fatal("slot", err)
	}
	intr := interrupt.New(sam.IRQ_SERCOM3, isr)
	intr.SetPriority(0)
	intr.Enable()
	println("[bridge] ready addr=", conv.H8(c.Address()), "channels=", len(chans))

	every := time.Duration(cfg.Bridge.IntervalMillis) * time.Millisecond
	err = svc.Run(context.Background(), every)
	fatal("run", err)
}

func fatal(what string, err error) {
	for {
		println("[bridge] fatal:", what, err.Error())
		time.Sleep(time.Second)
	}
}
