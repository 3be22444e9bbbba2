package samd21

import (
	"sync/atomic"

	"periphcode-go/errcode"
)

// Peripherals is the set of blocks this module drives. There is exactly one
// set per chip; Take hands it out once.
type Peripherals struct {
	ADC    *ADC
	Sercom [SercomCount]*Sercom
	PM     *PowerManager
	GCLK   *ClockController
	NVM    *NVMCalibration
}

var taken atomic.Bool

// Take returns the chip's peripherals. Only the first call succeeds; later
// calls fail with errcode.BlockInUse, so two parts of a program can never
// both hold register handles for the same hardware.
func Take() (*Peripherals, error) {
	if !taken.CompareAndSwap(false, true) {
		return nil, &errcode.E{C: errcode.BlockInUse, Op: "samd21.Take"}
	}
	p, err := mapHardware()
	if err != nil {
		taken.Store(false)
		return nil, errcode.Wrap("samd21.Take", err)
	}
	return p, nil
}

// SercomByIndex returns SERCOM n or errcode.UnknownBlock.
func (p *Peripherals) SercomByIndex(n int) (*Sercom, error) {
	if n < 0 || n >= SercomCount || p.Sercom[n] == nil {
		return nil, &errcode.E{C: errcode.UnknownBlock, Op: "samd21.Sercom"}
	}
	return p.Sercom[n], nil
}
