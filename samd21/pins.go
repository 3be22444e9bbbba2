package samd21

// Pin is a PORT pin: PA00..PA31 are 0..31, PB00..PB31 are 32..63.
type Pin uint8

const (
	PA00 Pin = iota
	PA01
	PA02
	PA03
	PA04
	PA05
	PA06
	PA07
	PA08
	PA09
	PA10
	PA11
	PA12
	PA13
	PA14
	PA15
	PA16
	PA17
	PA18
	PA19
	PA20
	PA21
	PA22
	PA23
	PA24
	PA25
	PA26
	PA27
	PA28
	PA29
	PA30
	PA31
)

const (
	PB00 Pin = iota + 32
	PB01
	PB02
	PB03
	PB04
	PB05
	PB06
	PB07
	PB08
	PB09
	PB10
	PB11
	PB12
	PB13
	PB14
	PB15
	PB16
	PB17
	PB18
	PB19
	PB20
	PB21
	PB22
	PB23
	PB24
	PB25
	PB26
	PB27
	PB28
	PB29
	PB30
	PB31
)

// NoPin marks an unused pin slot.
const NoPin Pin = 0xFF

func (p Pin) String() string {
	if p == NoPin || p > PB31 {
		return "NoPin"
	}
	b := [4]byte{'P', 'A', '0', '0'}
	if p >= PB00 {
		b[1] = 'B'
	}
	n := uint8(p) % 32
	b[2] += n / 10
	b[3] += n % 10
	return string(b[:])
}

// padMux is one SERCOM pad function of a pin.
type padMux struct {
	sercom int8 // -1 when absent
	pad    uint8
}

// sercomPads lists the SERCOM functions of each pin: peripheral function C
// first, alternate function D second.
var sercomPads = map[Pin][2]padMux{
	PA00: {none, {1, 0}},
	PA01: {none, {1, 1}},
	PA04: {none, {0, 0}},
	PA05: {none, {0, 1}},
	PA06: {none, {0, 2}},
	PA07: {none, {0, 3}},
	PA08: {{0, 0}, {2, 0}},
	PA09: {{0, 1}, {2, 1}},
	PA10: {{0, 2}, {2, 2}},
	PA11: {{0, 3}, {2, 3}},
	PA12: {{2, 0}, {4, 0}},
	PA13: {{2, 1}, {4, 1}},
	PA14: {{2, 2}, {4, 2}},
	PA15: {{2, 3}, {4, 3}},
	PA16: {{1, 0}, {3, 0}},
	PA17: {{1, 1}, {3, 1}},
	PA18: {{1, 2}, {3, 2}},
	PA19: {{1, 3}, {3, 3}},
	PA20: {{5, 2}, {3, 2}},
	PA21: {{5, 3}, {3, 3}},
	PA22: {{3, 0}, {5, 0}},
	PA23: {{3, 1}, {5, 1}},
	PA24: {{3, 2}, {5, 2}},
	PA25: {{3, 3}, {5, 3}},
	PA30: {none, {1, 2}},
	PA31: {none, {1, 3}},
	PB02: {none, {5, 0}},
	PB03: {none, {5, 1}},
	PB08: {none, {4, 0}},
	PB09: {none, {4, 1}},
	PB10: {none, {4, 2}},
	PB11: {none, {4, 3}},
	PB12: {{4, 0}, none},
	PB13: {{4, 1}, none},
	PB14: {{4, 2}, none},
	PB15: {{4, 3}, none},
	PB16: {{5, 0}, none},
	PB17: {{5, 1}, none},
	PB22: {none, {5, 2}},
	PB23: {none, {5, 3}},
	PB30: {none, {5, 0}},
	PB31: {none, {5, 1}},
}

var none = padMux{sercom: -1}

// Pad returns the pad p provides on SERCOM index sercom, and whether that is
// the alternate (function D) mux.
func (p Pin) Pad(sercom uint8) (pad uint8, alt bool, ok bool) {
	m, found := sercomPads[p]
	if !found {
		return 0, false, false
	}
	for i, f := range m {
		if f.sercom == int8(sercom) {
			return f.pad, i == 1, true
		}
	}
	return 0, false, false
}

// i2cPins have the pad drivers SERCOM I2C mode needs. Other pins mux to a
// SERCOM pad but cannot meet the I2C electrical spec.
var i2cPins = map[Pin]bool{
	PA08: true, PA09: true, PA12: true, PA13: true,
	PA16: true, PA17: true, PA22: true, PA23: true,
	PB12: true, PB13: true, PB16: true, PB17: true,
	PB30: true, PB31: true,
}

// I2C reports whether p can carry SDA or SCL.
func (p Pin) I2C() bool { return i2cPins[p] }

// ParsePin accepts "PA00".."PB31".
func ParsePin(s string) (Pin, bool) {
	if len(s) != 4 || s[0] != 'P' || (s[1] != 'A' && s[1] != 'B') ||
		s[2] < '0' || s[2] > '3' || s[3] < '0' || s[3] > '9' {
		return NoPin, false
	}
	n := (s[2]-'0')*10 + s[3] - '0'
	if n > 31 {
		return NoPin, false
	}
	if s[1] == 'B' {
		n += 32
	}
	return Pin(n), true
}
