//go:build tinygo && atsamd21

// Command itsybitsy-i2cslave answers I2C reads at 0x21 on SERCOM3 (SDA/SCL
// header pins) with a fixed reply and blinks the red LED.
package main

import (
	"device/sam"
	"machine"
	"runtime/interrupt"
	"time"

	"periphcode-go/board"
	"periphcode-go/drivers/i2cslave"
	"periphcode-go/errcode"
	"periphcode-go/samd21"
	"periphcode-go/x/conv"
	"periphcode-go/x/irq"
)

var (
	slot  irq.Slot[i2cslave.Controller]
	reply []byte
)

func isr(interrupt.Interrupt) {
	slot.Service(func(c *i2cslave.Controller) {
		if c.IsReadRequest() {
			c.StageReply(reply)
		}
		c.ServiceInterrupt()
	})
}

func main() {
	time.Sleep(2 * time.Second)
	println("[i2cs] boot")

	cfg, _ := board.Default(board.ItsyBitsyM0)
	if err := cfg.Validate(); err != nil {
		fatal("config", err)
	}
	// The vector below is bound to SERCOM3 at compile time.
	if cfg.I2CSlave.Sercom != 3 {
		fatal("config", &errcode.E{C: errcode.UnknownBlock, Op: "i2cs", Msg: "vector is SERCOM3"})
	}
	reply = cfg.I2CSlave.Reply

	c, err := bringUp(cfg.I2CSlave)
	if err != nil {
		fatal("i2cslave", err)
	}
	if err := slot.Init(c); err != nil {
		fatal("slot", err)
	}

	intr := interrupt.New(sam.IRQ_SERCOM3, isr)
	intr.SetPriority(0)
	intr.Enable()
	println("[i2cs] ready addr=", conv.H8(c.Address()), "reply", conv.Bytes(reply))

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		time.Sleep(200 * time.Millisecond)
		led.High()
		time.Sleep(200 * time.Millisecond)
		led.Low()
	}
}

func bringUp(cfg board.I2CSlave) (*i2cslave.Controller, error) {
	p, err := samd21.Take()
	if err != nil {
		return nil, err
	}
	s, err := p.SercomByIndex(int(cfg.Sercom))
	if err != nil {
		return nil, err
	}
	sda, scl, err := cfg.Pins()
	if err != nil {
		return nil, err
	}
	if err := sda.ConfigureSercom(s.Index()); err != nil {
		return nil, err
	}
	if err := scl.ConfigureSercom(s.Index()); err != nil {
		return nil, err
	}
	if err := p.GCLK.Attach(s.ClockID(), samd21.GCLK_GEN0); err != nil {
		return nil, err
	}
	return i2cslave.New(s, p.PM, sda, scl, cfg.Address)
}

func fatal(what string, err error) {
	for {
		println("[i2cs] fatal:", what, err.Error())
		time.Sleep(time.Second)
	}
}
