package sim

import (
	"periphcode-go/samd21"
	"periphcode-go/x/mmio"
)

// SercomModel simulates one SERCOM in I2C slave mode.
//
// Bus events are injected with the Raise methods. Each one sets its flag and,
// when the block is enabled and the flag is enabled in INTENSET, calls
// Handler the way the NVIC would call the vector.
type SercomModel struct {
	chip  *Chip
	index uint8

	CTRLA, CTRLB, ADDR, SYNCBUSY mmio.Mem[uint32]
	INTENSET, INTFLAG, DATA      mmio.Mem[uint8]
	STATUS                       mmio.Mem[uint16]

	// Handler is the interrupt vector for this SERCOM.
	Handler func()

	// Sent holds every byte written to DATA, in order.
	Sent []byte
	// RejectNextByte makes the next DATA write leave DRDY clear, as when
	// the shift register did not take the byte.
	RejectNextByte bool

	Resets     int
	Responds   int // CMD=3 writes
	Nacks      int // CMD=3 writes with ACKACT set
	Violations int
	Ungated    int

	sync     busy
	syncBits uint32
	inten    uint8
	wrote    bool // DATA written since the last data ready
}

func newSercomModel(c *Chip, index uint8) *SercomModel {
	s := &SercomModel{chip: c, index: index}

	s.CTRLA.OnSet = func(old, v uint32) uint32 {
		if !s.powered() {
			return old
		}
		if s.sync.active() {
			s.Violations++
		}
		if v&samd21.SERCOM_I2CS_CTRLA_SWRST != 0 {
			s.reset()
			s.syncBits = samd21.SERCOM_SYNCBUSY_SWRST
			s.sync.start(c.opts.SyncPolls)
			return samd21.SERCOM_I2CS_CTRLA_SWRST
		}
		if (old^v)&samd21.SERCOM_I2CS_CTRLA_ENABLE != 0 {
			s.syncBits = samd21.SERCOM_SYNCBUSY_ENABLE
			s.sync.start(c.opts.SyncPolls)
		}
		return v
	}
	s.CTRLA.OnGet = func(m *mmio.Mem[uint32]) {
		if m.V&samd21.SERCOM_I2CS_CTRLA_SWRST != 0 && !s.sync.active() {
			m.V &^= samd21.SERCOM_I2CS_CTRLA_SWRST
		}
	}
	s.SYNCBUSY.OnGet = func(m *mmio.Mem[uint32]) {
		m.V = 0
		if s.sync.poll() {
			m.V = s.syncBits
		}
	}
	s.SYNCBUSY.OnSet = func(old, _ uint32) uint32 { return old }

	s.CTRLB.OnSet = func(old, v uint32) uint32 {
		if !s.powered() {
			return old
		}
		cmd := (v >> samd21.SERCOM_I2CS_CTRLB_CMD_Pos) & samd21.SERCOM_I2CS_CTRLB_CMD_Msk
		if cmd == samd21.SERCOM_I2CS_CMD_RESPOND {
			s.Responds++
			if v&samd21.SERCOM_I2CS_CTRLB_ACKACT != 0 {
				s.Nacks++
			}
			s.INTFLAG.V &^= samd21.SERCOM_I2CS_INT_AMATCH | samd21.SERCOM_I2CS_INT_PREC
		}
		return v &^ (samd21.SERCOM_I2CS_CTRLB_CMD_Msk << samd21.SERCOM_I2CS_CTRLB_CMD_Pos)
	}
	s.ADDR.OnSet = s.plain32
	s.INTENSET.OnSet = func(old, v uint8) uint8 {
		if !s.powered() {
			return old
		}
		s.inten |= v
		return s.inten
	}
	s.INTFLAG.OnSet = func(old, v uint8) uint8 {
		if !s.powered() {
			return old
		}
		return old &^ v
	}
	s.STATUS.OnSet = func(old, v uint16) uint16 {
		if !s.powered() {
			return old
		}
		const bs = samd21.SERCOM_I2CM_STATUS_BUSSTATE_Msk << samd21.SERCOM_I2CM_STATUS_BUSSTATE_Pos
		if s.sync.active() {
			s.Violations++
		}
		s.syncBits = samd21.SERCOM_SYNCBUSY_SYSOP
		s.sync.start(c.opts.SyncPolls)
		return old&^bs | v&bs
	}
	s.DATA.OnSet = func(old, v uint8) uint8 {
		if !s.powered() {
			return old
		}
		s.Sent = append(s.Sent, v)
		s.wrote = true
		if s.RejectNextByte {
			s.RejectNextByte = false
			s.INTFLAG.V &^= samd21.SERCOM_I2CS_INT_DRDY
		}
		return v
	}
	return s
}

func (s *SercomModel) regs() samd21.I2CSRegs {
	return samd21.I2CSRegs{
		CTRLA:    &s.CTRLA,
		CTRLB:    &s.CTRLB,
		ADDR:     &s.ADDR,
		INTENSET: &s.INTENSET,
		INTFLAG:  &s.INTFLAG,
		STATUS:   &s.STATUS,
		SYNCBUSY: &s.SYNCBUSY,
		DATA:     &s.DATA,
	}
}

func (s *SercomModel) powered() bool {
	if !s.chip.gated(samd21.PM_APBCMASK_SERCOM0 << s.index) {
		s.Ungated++
		return false
	}
	return true
}

func (s *SercomModel) plain32(old, v uint32) uint32 {
	if !s.powered() {
		return old
	}
	return v
}

func (s *SercomModel) reset() {
	s.Resets++
	s.CTRLB.V, s.ADDR.V, s.STATUS.V = 0, 0, 0
	s.INTFLAG.V, s.INTENSET.V, s.DATA.V = 0, 0, 0
	s.inten = 0
	s.wrote = false
}

// Enabled reports CTRLA.ENABLE.
func (s *SercomModel) Enabled() bool { return s.CTRLA.V&samd21.SERCOM_I2CS_CTRLA_ENABLE != 0 }

// SlaveMode reports whether CTRLA.MODE selects I2C slave.
func (s *SercomModel) SlaveMode() bool {
	mode := (s.CTRLA.V >> samd21.SERCOM_I2CS_CTRLA_MODE_Pos) & samd21.SERCOM_I2CS_CTRLA_MODE_Msk
	return mode == samd21.SERCOM_I2CS_CTRLA_MODE_I2CSLAVE
}

// BusState returns STATUS.BUSSTATE.
func (s *SercomModel) BusState() uint16 {
	return (s.STATUS.V >> samd21.SERCOM_I2CM_STATUS_BUSSTATE_Pos) & samd21.SERCOM_I2CM_STATUS_BUSSTATE_Msk
}

// InterruptsEnabled returns the INTENSET mask.
func (s *SercomModel) InterruptsEnabled() uint8 { return s.inten }

// Matches reports whether addr is accepted by the ADDR/ADDRMASK pair.
func (s *SercomModel) Matches(addr uint16) bool {
	a := (s.ADDR.V >> samd21.SERCOM_I2CS_ADDR_ADDR_Pos) & samd21.SERCOM_I2CS_ADDR_ADDR_Msk
	m := (s.ADDR.V >> samd21.SERCOM_I2CS_ADDR_ADDRMASK_Pos) & samd21.SERCOM_I2CS_ADDR_ADDRMASK_Msk
	return (a^uint32(addr))&^m == 0
}

// RaiseAddressMatch flags an address match. read sets STATUS.DIR.
func (s *SercomModel) RaiseAddressMatch(read bool) {
	if read {
		s.STATUS.V |= samd21.SERCOM_I2CS_STATUS_DIR
	} else {
		s.STATUS.V &^= samd21.SERCOM_I2CS_STATUS_DIR
	}
	s.raise(samd21.SERCOM_I2CS_INT_AMATCH)
}

// RaiseDataReady flags that DATA may take the next byte.
func (s *SercomModel) RaiseDataReady() {
	s.wrote = false
	s.raise(samd21.SERCOM_I2CS_INT_DRDY)
}

// RaiseStop flags a stop condition.
func (s *SercomModel) RaiseStop() {
	s.STATUS.V &^= samd21.SERCOM_I2CS_STATUS_DIR
	s.raise(samd21.SERCOM_I2CS_INT_PREC)
}

// Raise sets any combination of INTFLAG bits at once and fires the vector
// once, for the cases where several events are pending on entry.
func (s *SercomModel) Raise(flags uint8) { s.raise(flags) }

// SetRxNack sets or clears STATUS.RXNACK, the master's response to the last
// byte sent.
func (s *SercomModel) SetRxNack(nack bool) {
	if nack {
		s.STATUS.V |= samd21.SERCOM_I2CS_STATUS_RXNACK
	} else {
		s.STATUS.V &^= samd21.SERCOM_I2CS_STATUS_RXNACK
	}
}

// Pending returns the INTFLAG bits currently set.
func (s *SercomModel) Pending() uint8 { return s.INTFLAG.V }

func (s *SercomModel) raise(flags uint8) {
	s.INTFLAG.V |= flags
	if s.Handler != nil && s.Enabled() && s.INTFLAG.V&s.inten != 0 {
		s.Handler()
	}
}
