// Package adc drives the SAMD21 ADC for one-shot, calibrated conversions.
//
//	a, err := adc.New(p.GCLK, p.PM, p.NVM, p.ADC)
//	v := a.Read(adc.Channel0)
//
// The converter is configured once in New (factory calibration, VDDANA/2
// reference with 1/2 gain, 12-bit, prescaler /32) and is only enabled for the
// duration of a Read. Every write into the ADC clock domain goes through an
// mmio.Synced handle, so it is always followed by the STATUS.SYNCBUSY wait.
//
// Read blocks without a timeout. A dead ADC clock hangs the caller. Do not
// call it from an interrupt handler.
package adc

import (
	"periphcode-go/errcode"
	"periphcode-go/samd21"
)

// ClockSource connects a running generic clock generator to a peripheral
// channel. *samd21.ClockController implements it.
type ClockSource interface {
	Attach(id, gen uint8) error
}

// PowerGate sets APB clock mask bits. *samd21.PowerManager implements it.
type PowerGate interface {
	Enable(mask uint32)
}

// CalibrationStore supplies the factory ADC constants.
// *samd21.NVMCalibration implements it.
type CalibrationStore interface {
	ADCCalibration() (linearity, bias uint8)
}

// Channel is a logical input on the Metro M0 analog header.
type Channel uint8

const (
	Channel0 Channel = iota // AIN0, A0
	Channel1                // AIN2, A1
	Channel2                // AIN3, A2
)

// NumChannels is the number of logical channels Read accepts.
const NumChannels = 3

// Muxpos returns the INPUTCTRL.MUXPOS selection for c. Unknown channels
// fall back to AIN0 with ok false.
func (c Channel) Muxpos() (mux uint8, ok bool) {
	switch c {
	case Channel0:
		return samd21.ADC_INPUTCTRL_MUXPOS_PIN0, true
	case Channel1:
		return samd21.ADC_INPUTCTRL_MUXPOS_PIN2, true
	case Channel2:
		return samd21.ADC_INPUTCTRL_MUXPOS_PIN3, true
	}
	return samd21.ADC_INPUTCTRL_MUXPOS_PIN0, false
}

// Pin returns the package pin behind c (AIN0 PA02, AIN2 PB08, AIN3 PB09),
// or samd21.NoPin for unknown channels.
func (c Channel) Pin() samd21.Pin {
	switch c {
	case Channel0:
		return samd21.PA02
	case Channel1:
		return samd21.PB08
	case Channel2:
		return samd21.PB09
	}
	return samd21.NoPin
}

// Resolution of a single conversion.
const (
	Bits      = 12
	FullScale = 1<<Bits - 1
)

const owner = "adc"

// Driver owns the ADC block from New until Release.
type Driver struct {
	blk       *samd21.ADC
	linearity uint8
	bias      uint8
}

// New powers, calibrates and configures the ADC. It fails with
// errcode.ClockUnavailable when the ADC clock channel cannot be attached,
// and with errcode.BlockInUse when another driver holds blk.
func New(clk ClockSource, pm PowerGate, cal CalibrationStore, blk *samd21.ADC) (*Driver, error) {
	if clk == nil || pm == nil || cal == nil || blk == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "adc.New"}
	}
	if err := blk.Claim(owner); err != nil {
		return nil, errcode.Wrap("adc.New", err)
	}

	pm.Enable(samd21.PM_APBCMASK_ADC)

	d := &Driver{blk: blk}
	d.linearity, d.bias = cal.ADCCalibration()
	blk.Calib().Write(uint16(d.linearity) |
		uint16(d.bias&samd21.ADC_CALIB_BIAS_Msk)<<samd21.ADC_CALIB_BIAS_Pos)

	if err := clk.Attach(samd21.GCLK_ID_ADC, samd21.GCLK_GEN0); err != nil {
		blk.Unclaim(owner)
		return nil, &errcode.E{C: errcode.ClockUnavailable, Op: "adc.New", Err: err}
	}
	blk.WaitSync()

	// VDDANA/2 reference, so halve the input to keep full scale at VDDANA.
	blk.RefCtrl().Write(samd21.ADC_REFCTRL_REFSEL_INTVCC1)
	blk.InputCtrl().Write(samd21.ADC_INPUTCTRL_MUXNEG_GND<<samd21.ADC_INPUTCTRL_MUXNEG_Pos |
		samd21.ADC_INPUTCTRL_GAIN_DIV2<<samd21.ADC_INPUTCTRL_GAIN_Pos)
	blk.AvgCtrl().Write(samd21.ADC_AVGCTRL_SAMPLENUM_1)
	blk.CtrlB().Write(samd21.ADC_CTRLB_RESSEL_12BIT<<samd21.ADC_CTRLB_RESSEL_Pos |
		samd21.ADC_CTRLB_PRESCALER_DIV32<<samd21.ADC_CTRLB_PRESCALER_Pos)

	return d, nil
}

// Read converts channel c and returns the raw 12-bit result. Channels other
// than 0..2 read AIN0; use ReadChecked to reject them instead.
func (d *Driver) Read(c Channel) uint16 {
	mux, _ := c.Muxpos()
	return d.convert(mux)
}

// ReadChecked is Read with errcode.InvalidParams for unknown channels.
func (d *Driver) ReadChecked(c Channel) (uint16, error) {
	mux, ok := c.Muxpos()
	if !ok {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "adc.Read", Msg: "channel out of range"}
	}
	return d.convert(mux), nil
}

func (d *Driver) convert(mux uint8) uint16 {
	b := d.blk
	b.WaitSync()
	b.InputCtrl().ReplaceBits(uint32(mux), samd21.ADC_INPUTCTRL_MUXPOS_Msk, samd21.ADC_INPUTCTRL_MUXPOS_Pos)
	b.CtrlA().SetBits(samd21.ADC_CTRLA_ENABLE)

	// The first result after a MUXPOS change still reflects the previous
	// input. Let it complete and drop it. A RESRDY left over from before
	// would end the wait early.
	b.IntFlag().Set(samd21.ADC_INTFLAG_RESRDY)
	d.trigger()
	b.IntFlag().Set(samd21.ADC_INTFLAG_RESRDY)

	d.trigger()
	v := b.Result().Get()

	b.CtrlA().ClearBits(samd21.ADC_CTRLA_ENABLE)
	return v
}

// trigger starts one conversion and waits for RESRDY.
func (d *Driver) trigger() {
	d.blk.SWTrig().Write(samd21.ADC_SWTRIG_START)
	for d.blk.IntFlag().Get()&samd21.ADC_INTFLAG_RESRDY == 0 {
	}
}

// EnableAveraging would accumulate n samples per result. Averaging never
// produced correct results on this part and is not offered; it always
// returns errcode.Unsupported and leaves the configuration untouched.
func (d *Driver) EnableAveraging(n int) error {
	return &errcode.E{C: errcode.Unsupported, Op: "adc.EnableAveraging"}
}

// Calibration returns the constants loaded into CALIB by New.
func (d *Driver) Calibration() (linearity, bias uint8) { return d.linearity, d.bias }

// Release disables the converter and hands the block back.
func (d *Driver) Release() *samd21.ADC {
	b := d.blk
	b.WaitSync()
	b.CtrlA().ClearBits(samd21.ADC_CTRLA_ENABLE)
	b.Unclaim(owner)
	d.blk = nil
	return b
}

// Millivolts converts a raw sample to millivolts given the analog supply.
// With the VDDANA/2 reference and 1/2 gain, full scale is vddaMV.
func Millivolts(raw uint16, vddaMV uint32) uint32 {
	return uint32(raw) * vddaMV / (FullScale + 1)
}
