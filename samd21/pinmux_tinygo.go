//go:build tinygo && atsamd21

package samd21

import (
	"machine"

	"periphcode-go/errcode"
)

// PORT numbering matches machine.Pin on this chip, so pin muxing is left to
// the machine package.

// ConfigureSercom routes p to its pad on SERCOM sercom, picking the
// alternate mux when that is where the pad lives.
func (p Pin) ConfigureSercom(sercom uint8) error {
	_, alt, ok := p.Pad(sercom)
	if !ok {
		return &errcode.E{C: errcode.UnknownPin, Op: "samd21.ConfigureSercom", Msg: p.String()}
	}
	mode := machine.PinSERCOM
	if alt {
		mode = machine.PinSERCOMAlt
	}
	machine.Pin(p).Configure(machine.PinConfig{Mode: mode})
	return nil
}

// ConfigureAnalog hands p to the ADC.
func (p Pin) ConfigureAnalog() {
	machine.Pin(p).Configure(machine.PinConfig{Mode: machine.PinAnalog})
}
