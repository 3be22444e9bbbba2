// Package board holds the per-board wiring the firmware needs: which ADC
// channels to sample, which SERCOM and pins carry the I2C slave, and at what
// address. Defaults are compiled in; on the host a YAML file can override
// them (see LoadYAML).
package board

import (
	"periphcode-go/drivers/adc"
	"periphcode-go/drivers/i2cslave"
	"periphcode-go/errcode"
	"periphcode-go/samd21"
)

// Board names.
const (
	MetroM0     = "metro_m0"
	ItsyBitsyM0 = "itsybitsy_m0"
)

type Config struct {
	Name     string   `json:"name"`
	Analog   Analog   `json:"analog"`
	I2CSlave I2CSlave `json:"i2c_slave"`
	Bridge   Bridge   `json:"bridge"`
}

type Analog struct {
	// Channels are logical adc.Channel numbers, sampled in this order.
	Channels []uint8 `json:"channels"`
	// VDDAMilliVolts is the analog supply, for millivolt conversion.
	VDDAMilliVolts uint32 `json:"vdda_mv"`
}

type I2CSlave struct {
	Sercom  uint8  `json:"sercom"`
	SDA     string `json:"sda"` // "PA22"
	SCL     string `json:"scl"`
	Address uint8  `json:"address"`
	// Reply is the fixed response for firmware that does not bridge samples.
	Reply Bytes `json:"reply,omitempty"`
}

type Bridge struct {
	IntervalMillis uint32 `json:"interval_ms"`
}

// Pins resolves SDA and SCL.
func (c I2CSlave) Pins() (sda, scl samd21.Pin, err error) {
	var ok bool
	if sda, ok = samd21.ParsePin(c.SDA); !ok {
		return samd21.NoPin, samd21.NoPin, &errcode.E{C: errcode.UnknownPin, Op: "board", Msg: "sda " + c.SDA}
	}
	if scl, ok = samd21.ParsePin(c.SCL); !ok {
		return samd21.NoPin, samd21.NoPin, &errcode.E{C: errcode.UnknownPin, Op: "board", Msg: "scl " + c.SCL}
	}
	return sda, scl, nil
}

var defaults = map[string]Config{
	MetroM0: {
		Name: MetroM0,
		// A0, A1, A2 are AIN0, AIN2, AIN3.
		Analog:   Analog{Channels: []uint8{0, 1, 2}, VDDAMilliVolts: 3300},
		I2CSlave: I2CSlave{Sercom: 3, SDA: "PA22", SCL: "PA23", Address: 0x21},
		Bridge:   Bridge{IntervalMillis: 100},
	},
	ItsyBitsyM0: {
		Name:     ItsyBitsyM0,
		Analog:   Analog{Channels: []uint8{0}, VDDAMilliVolts: 3300},
		I2CSlave: I2CSlave{Sercom: 3, SDA: "PA22", SCL: "PA23", Address: 0x21, Reply: Bytes{0x1c, 0x9a}},
		Bridge:   Bridge{IntervalMillis: 250},
	},
}

// Default returns a copy of the built-in configuration for name.
func Default(name string) (Config, bool) {
	c, ok := defaults[name]
	if !ok {
		return Config{}, false
	}
	c.Analog.Channels = append([]uint8(nil), c.Analog.Channels...)
	c.I2CSlave.Reply = append(Bytes(nil), c.I2CSlave.Reply...)
	return c, true
}

// Names lists the boards with built-in defaults.
func Names() []string { return []string{MetroM0, ItsyBitsyM0} }

// Validate checks the configuration against what the drivers accept.
func (c Config) Validate() error {
	bad := func(msg string) error {
		return &errcode.E{C: errcode.InvalidParams, Op: "board.Validate", Msg: msg}
	}
	if len(c.Analog.Channels) == 0 {
		return bad("no analog channels")
	}
	if len(c.Analog.Channels)*2 > i2cslave.TxCapacity {
		return bad("too many analog channels for one reply")
	}
	for _, ch := range c.Analog.Channels {
		if _, ok := adc.Channel(ch).Muxpos(); !ok {
			return bad("analog channel out of range")
		}
	}
	// SAMD21 operating range.
	if c.Analog.VDDAMilliVolts < 1620 || c.Analog.VDDAMilliVolts > 3630 {
		return bad("vdda_mv outside 1620..3630")
	}

	s := c.I2CSlave
	if s.Sercom >= samd21.SercomCount {
		return &errcode.E{C: errcode.UnknownBlock, Op: "board.Validate", Msg: "sercom"}
	}
	if s.Address > i2cslave.MaxAddress {
		return bad("address above 0x7F")
	}
	sda, scl, err := s.Pins()
	if err != nil {
		return err
	}
	if !sda.I2C() || !scl.I2C() {
		return bad("sda/scl pins lack I2C pads")
	}
	if pad, _, ok := sda.Pad(s.Sercom); !ok || pad != 0 {
		return bad("sda is not PAD0 of the sercom")
	}
	if pad, _, ok := scl.Pad(s.Sercom); !ok || pad != 1 {
		return bad("scl is not PAD1 of the sercom")
	}
	if len(s.Reply) > i2cslave.TxCapacity {
		return bad("reply longer than 128 bytes")
	}
	if c.Bridge.IntervalMillis == 0 {
		return bad("bridge interval_ms is zero")
	}
	return nil
}
