package sim

import (
	"tinygo.org/x/drivers"

	"periphcode-go/errcode"
	"periphcode-go/samd21"
)

// Master is a bus controller attached to the simulated SERCOMs. It drives
// each transaction as the sequence of slave-side events the hardware would
// produce, so the slave's interrupt handler runs once per event.
type Master struct {
	chip *Chip
}

var _ drivers.I2C = (*Master)(nil)

// Master returns a bus controller wired to every SERCOM of c.
func (c *Chip) Master() *Master { return &Master{chip: c} }

// Tx performs a read of len(r) bytes from addr. Writes are not modelled
// and return errcode.Unsupported.
func (m *Master) Tx(addr uint16, w, r []byte) error {
	if len(w) > 0 {
		return &errcode.E{C: errcode.Unsupported, Op: "sim.Tx", Msg: "master write"}
	}
	s := m.slave(addr)
	if s == nil {
		return &errcode.E{C: errcode.NACK, Op: "sim.Tx", Msg: "address"}
	}

	s.SetRxNack(false)
	s.RaiseAddressMatch(true)
	if s.INTFLAG.V&samd21.SERCOM_I2CS_INT_AMATCH != 0 {
		// Nobody answered; the real bus would stretch SCL forever.
		s.INTFLAG.V &^= samd21.SERCOM_I2CS_INT_AMATCH
		return &errcode.E{C: errcode.NACK, Op: "sim.Tx", Msg: "address not acknowledged"}
	}
	if s.CTRLB.V&samd21.SERCOM_I2CS_CTRLB_ACKACT != 0 {
		return &errcode.E{C: errcode.NACK, Op: "sim.Tx", Msg: "address"}
	}

	for i := range r {
		s.RaiseDataReady()
		if !s.wrote {
			return &errcode.E{C: errcode.Error, Op: "sim.Tx", Msg: "slave sent no data"}
		}
		r[i] = s.DATA.V
		s.INTFLAG.V &^= samd21.SERCOM_I2CS_INT_DRDY
		// ACK every byte but the last.
		s.SetRxNack(i == len(r)-1)
	}
	s.RaiseStop()
	return nil
}

func (m *Master) slave(addr uint16) *SercomModel {
	for _, s := range m.chip.Sercom {
		if s.Enabled() && s.SlaveMode() && s.Matches(addr) {
			return s
		}
	}
	return nil
}
