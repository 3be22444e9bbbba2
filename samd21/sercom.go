package samd21

import "periphcode-go/x/mmio"

// I2CSRegs is the raw register set of one SERCOM in I2C slave mode.
type I2CSRegs struct {
	CTRLA    mmio.Register[uint32]
	CTRLB    mmio.Register[uint32]
	ADDR     mmio.Register[uint32]
	INTENSET mmio.Register[uint8]
	INTFLAG  mmio.Register[uint8]
	STATUS   mmio.Register[uint16]
	SYNCBUSY mmio.Register[uint32]
	DATA     mmio.Register[uint8]
}

// Sercom is one serial communication block. Everything that differs between
// SERCOM0..5 (register base, power bit, clock channel, vector) is derived
// from the index, so a single driver implementation serves all six.
type Sercom struct {
	owner
	index uint8
	r     I2CSRegs
}

// NewSercom wraps a register set for SERCOM index.
func NewSercom(index uint8, r I2CSRegs) *Sercom { return &Sercom{index: index, r: r} }

func (s *Sercom) Index() uint8      { return s.index }
func (s *Sercom) PowerMask() uint32 { return PM_APBCMASK_SERCOM0 << s.index }
func (s *Sercom) ClockID() uint8    { return GCLK_ID_SERCOM0_CORE + s.index }
func (s *Sercom) IRQ() int          { return IRQ_SERCOM0 + int(s.index) }

// waitSync covers software reset, enable and system operations. A software
// reset is also pending while CTRLA.SWRST still reads one.
func (s *Sercom) waitSync() {
	for s.r.SYNCBUSY.Get()&(SERCOM_SYNCBUSY_SWRST|SERCOM_SYNCBUSY_ENABLE|SERCOM_SYNCBUSY_SYSOP) != 0 ||
		s.r.CTRLA.Get()&SERCOM_I2CS_CTRLA_SWRST != 0 {
	}
}

func (s *Sercom) CtrlA() mmio.Synced[uint32]   { return mmio.Sync(s.r.CTRLA, s.waitSync) }
func (s *Sercom) IntEnSet() mmio.Synced[uint8] { return mmio.Sync(s.r.INTENSET, s.waitSync) }

// BusState is the I2C master view of STATUS, used once to force the bus idle.
func (s *Sercom) BusState() mmio.Synced[uint16] { return mmio.Sync(s.r.STATUS, s.waitSync) }

// CtrlB, Addr, IntFlag, Status and Data are not synchronised in slave mode and
// are safe to touch from the interrupt handler without spinning.
func (s *Sercom) CtrlB() mmio.Register[uint32]  { return s.r.CTRLB }
func (s *Sercom) Addr() mmio.Register[uint32]   { return s.r.ADDR }
func (s *Sercom) IntFlag() mmio.Register[uint8] { return s.r.INTFLAG }
func (s *Sercom) Status() mmio.Register[uint16] { return s.r.STATUS }
func (s *Sercom) Data() mmio.Register[uint8]    { return s.r.DATA }
