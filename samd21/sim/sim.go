// Package sim is a behavioural model of the SAMD21 blocks in package samd21,
// for running the drivers off-target.
//
// The model is strict where the silicon is unforgiving: writes to a block
// whose APB clock is gated are dropped and counted, writes to a
// synchronised register while a previous synchronisation is still pending
// are counted as violations, and a conversion trigger on a disabled ADC is
// ignored. Tests assert those counters stay at zero.
package sim

import (
	"periphcode-go/samd21"
	"periphcode-go/x/mmio"
)

// Options tunes the model. All fields are optional.
type Options struct {
	// SyncPolls is how many reads a synchronisation stays busy. Default 2.
	SyncPolls int
	// ConvPolls is how many INTFLAG reads a conversion takes. Default 1.
	ConvPolls int
	// Linearity and Bias are the factory ADC calibration in the NVM row.
	Linearity uint8
	Bias      uint8
}

// Chip is one simulated SAMD21.
type Chip struct {
	opts Options

	// P is what samd21.Take would return on hardware.
	P *samd21.Peripherals

	ADC    *ADCModel
	Sercom [samd21.SercomCount]*SercomModel

	APBCMASK    mmio.Mem[uint32]
	GCLKClkCtrl mmio.Mem[uint16]
	GCLKStatus  mmio.Mem[uint8]
	NVMLo       mmio.Mem[uint32]
	NVMHi       mmio.Mem[uint32]

	gclkSync busy
}

// New builds a chip in its reset state.
func New(opts ...Options) *Chip {
	o := Options{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.SyncPolls <= 0 {
		o.SyncPolls = 2
	}
	if o.ConvPolls <= 0 {
		o.ConvPolls = 1
	}
	c := &Chip{opts: o}

	c.NVMLo.V, c.NVMHi.V = samd21.EncodeADCCalibration(o.Linearity, o.Bias)
	c.GCLKClkCtrl.OnSet = func(_, v uint16) uint16 {
		c.gclkSync.start(c.opts.SyncPolls)
		return v
	}
	c.GCLKStatus.OnGet = func(m *mmio.Mem[uint8]) {
		m.V = 0
		if c.gclkSync.poll() {
			m.V = samd21.GCLK_STATUS_SYNCBUSY
		}
	}

	c.ADC = newADCModel(c)
	p := &samd21.Peripherals{
		ADC:  samd21.NewADC(c.ADC.regs()),
		PM:   samd21.NewPowerManager(&c.APBCMASK),
		GCLK: samd21.NewClockController(&c.GCLKClkCtrl, &c.GCLKStatus),
		NVM:  samd21.NewNVMCalibration(&c.NVMLo, &c.NVMHi),
	}
	for i := range c.Sercom {
		c.Sercom[i] = newSercomModel(c, uint8(i))
		p.Sercom[i] = samd21.NewSercom(uint8(i), c.Sercom[i].regs())
	}
	c.P = p
	return c
}

// gated reports whether the APB clock for mask is running.
func (c *Chip) gated(mask uint32) bool { return c.APBCMASK.V&mask == mask }

// busy models a synchronisation in flight for a number of status reads.
type busy struct{ n int }

func (b *busy) start(polls int) { b.n = polls }
func (b *busy) active() bool    { return b.n > 0 }

// poll consumes one status read and reports whether it read busy.
func (b *busy) poll() bool {
	if b.n > 0 {
		b.n--
		return true
	}
	return false
}
