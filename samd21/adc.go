package samd21

import "periphcode-go/x/mmio"

// ADCRegs is the raw register set of the ADC block. It is only used to
// build an ADC; drivers go through the accessors below.
type ADCRegs struct {
	CTRLA     mmio.Register[uint8]
	REFCTRL   mmio.Register[uint8]
	AVGCTRL   mmio.Register[uint8]
	CTRLB     mmio.Register[uint16]
	SWTRIG    mmio.Register[uint8]
	INPUTCTRL mmio.Register[uint32]
	INTFLAG   mmio.Register[uint8]
	STATUS    mmio.Register[uint8]
	RESULT    mmio.Register[uint16]
	CALIB     mmio.Register[uint16]
}

// ADC is the analog-to-digital converter block.
//
// Every register that crosses into the GCLK_ADC domain is handed out as an
// mmio.Synced bound to STATUS.SYNCBUSY, so a write is never followed by a
// dependent access before it has propagated.
type ADC struct {
	owner
	r ADCRegs
}

// NewADC wraps a register set. Called by the peripheral mapping and the
// simulator.
func NewADC(r ADCRegs) *ADC { return &ADC{r: r} }

func (a *ADC) sync8(r mmio.Register[uint8]) mmio.Synced[uint8] {
	return mmio.SyncOn[uint8, uint8](r, a.r.STATUS, ADC_STATUS_SYNCBUSY)
}

func (a *ADC) CtrlA() mmio.Synced[uint8]   { return a.sync8(a.r.CTRLA) }
func (a *ADC) RefCtrl() mmio.Synced[uint8] { return a.sync8(a.r.REFCTRL) }
func (a *ADC) AvgCtrl() mmio.Synced[uint8] { return a.sync8(a.r.AVGCTRL) }
func (a *ADC) SWTrig() mmio.Synced[uint8]  { return a.sync8(a.r.SWTRIG) }

func (a *ADC) CtrlB() mmio.Synced[uint16] {
	return mmio.SyncOn[uint16, uint8](a.r.CTRLB, a.r.STATUS, ADC_STATUS_SYNCBUSY)
}

func (a *ADC) InputCtrl() mmio.Synced[uint32] {
	return mmio.SyncOn[uint32, uint8](a.r.INPUTCTRL, a.r.STATUS, ADC_STATUS_SYNCBUSY)
}

func (a *ADC) Calib() mmio.Synced[uint16] {
	return mmio.SyncOn[uint16, uint8](a.r.CALIB, a.r.STATUS, ADC_STATUS_SYNCBUSY)
}

// IntFlag is write-1-to-clear.
func (a *ADC) IntFlag() mmio.Register[uint8] { return a.r.INTFLAG }
func (a *ADC) Result() mmio.Register[uint16] { return a.r.RESULT }

// WaitSync blocks until STATUS.SYNCBUSY reads clear.
func (a *ADC) WaitSync() { mmio.WaitClear[uint8](a.r.STATUS, ADC_STATUS_SYNCBUSY) }
