//go:build !(tinygo && atsamd21)

package samd21

import "periphcode-go/errcode"

// There is no memory-mapped hardware off-target; use samd21/sim instead.
func mapHardware() (*Peripherals, error) {
	return nil, errcode.Unsupported
}
