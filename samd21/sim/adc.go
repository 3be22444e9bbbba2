package sim

import (
	"periphcode-go/samd21"
	"periphcode-go/x/mmio"
)

// ADCModel simulates the ADC block.
//
// Conversions sample Inputs[MUXPOS]. The first conversion after MUXPOS
// changes returns the previous input's value, as the sampling capacitor
// still holds that charge.
type ADCModel struct {
	chip *Chip

	CTRLA, REFCTRL, AVGCTRL, SWTRIG, INTFLAG, STATUS mmio.Mem[uint8]
	CTRLB, RESULT, CALIB                             mmio.Mem[uint16]
	INPUTCTRL                                        mmio.Mem[uint32]

	// Inputs is the value each MUXPOS selection converts to.
	Inputs [32]uint16

	Triggers        int // START writes while enabled
	IgnoredTriggers int // START writes while disabled
	Enables         int
	Disables        int
	Violations      int // synchronised writes issued while SYNCBUSY
	Ungated         int // writes dropped because PM.APBCMASK.ADC was clear

	sync     busy
	conv     int   // INTFLAG polls until the pending conversion lands; 0 = none
	chargeOn uint8 // MUXPOS the sampling capacitor last settled on
}

func newADCModel(c *Chip) *ADCModel {
	a := &ADCModel{chip: c}

	for _, r := range []*mmio.Mem[uint8]{&a.REFCTRL, &a.AVGCTRL} {
		r.OnSet = a.synced8(nil)
	}
	a.CTRLA.OnSet = a.synced8(func(old, v uint8) {
		switch {
		case old&samd21.ADC_CTRLA_ENABLE == 0 && v&samd21.ADC_CTRLA_ENABLE != 0:
			a.Enables++
		case old&samd21.ADC_CTRLA_ENABLE != 0 && v&samd21.ADC_CTRLA_ENABLE == 0:
			a.Disables++
		}
	})
	a.SWTRIG.OnSet = func(old, v uint8) uint8 {
		if _, ok := syncedWrite(a, old, v); !ok {
			return old
		}
		if v&samd21.ADC_SWTRIG_START != 0 {
			if a.CTRLA.V&samd21.ADC_CTRLA_ENABLE == 0 {
				a.IgnoredTriggers++
			} else {
				a.Triggers++
				a.conv = a.chip.opts.ConvPolls
			}
		}
		return 0 // START and FLUSH self-clear
	}
	a.CTRLB.OnSet = func(old, v uint16) uint16 { v, _ = syncedWrite(a, old, v); return v }
	a.CALIB.OnSet = func(old, v uint16) uint16 { v, _ = syncedWrite(a, old, v); return v }
	a.INPUTCTRL.OnSet = func(old, v uint32) uint32 { v, _ = syncedWrite(a, old, v); return v }

	a.STATUS.OnGet = func(m *mmio.Mem[uint8]) {
		m.V = 0
		if a.sync.poll() {
			m.V = samd21.ADC_STATUS_SYNCBUSY
		}
	}
	a.INTFLAG.OnGet = func(m *mmio.Mem[uint8]) {
		if a.conv > 0 {
			a.conv--
			if a.conv == 0 {
				a.complete()
			}
		}
	}
	a.INTFLAG.OnSet = func(old, v uint8) uint8 { return old &^ v }
	a.RESULT.OnGet = func(*mmio.Mem[uint16]) { a.INTFLAG.V &^= samd21.ADC_INTFLAG_RESRDY }
	return a
}

func (a *ADCModel) regs() samd21.ADCRegs {
	return samd21.ADCRegs{
		CTRLA:     &a.CTRLA,
		REFCTRL:   &a.REFCTRL,
		AVGCTRL:   &a.AVGCTRL,
		CTRLB:     &a.CTRLB,
		SWTRIG:    &a.SWTRIG,
		INPUTCTRL: &a.INPUTCTRL,
		INTFLAG:   &a.INTFLAG,
		STATUS:    &a.STATUS,
		RESULT:    &a.RESULT,
		CALIB:     &a.CALIB,
	}
}

// syncedWrite applies the gating and synchronisation rules shared by every
// register in the GCLK_ADC domain. It returns the value the register keeps
// and whether the write landed.
func syncedWrite[T uint8 | uint16 | uint32](a *ADCModel, old, v T) (T, bool) {
	if !a.chip.gated(samd21.PM_APBCMASK_ADC) {
		a.Ungated++
		return old, false
	}
	if a.sync.active() {
		a.Violations++
	}
	a.sync.start(a.chip.opts.SyncPolls)
	return v, true
}

func (a *ADCModel) synced8(after func(old, v uint8)) func(old, v uint8) uint8 {
	return func(old, v uint8) uint8 {
		kept, ok := syncedWrite(a, old, v)
		if ok && after != nil {
			after(old, v)
		}
		return kept
	}
}

func (a *ADCModel) complete() {
	mux := uint8(a.INPUTCTRL.V>>samd21.ADC_INPUTCTRL_MUXPOS_Pos) & samd21.ADC_INPUTCTRL_MUXPOS_Msk
	a.RESULT.V = a.Inputs[a.chargeOn]
	a.chargeOn = mux
	a.INTFLAG.V |= samd21.ADC_INTFLAG_RESRDY
}

// Enabled reports CTRLA.ENABLE.
func (a *ADCModel) Enabled() bool { return a.CTRLA.V&samd21.ADC_CTRLA_ENABLE != 0 }

// Muxpos returns the current INPUTCTRL.MUXPOS selection.
func (a *ADCModel) Muxpos() uint8 {
	return uint8(a.INPUTCTRL.V>>samd21.ADC_INPUTCTRL_MUXPOS_Pos) & samd21.ADC_INPUTCTRL_MUXPOS_Msk
}
