// Package i2cslave runs a SAMD21 SERCOM as an interrupt-driven I2C slave
// transmitter.
//
// The controller answers a bus master's reads one byte per data-ready
// interrupt from a 128-byte reply buffer. Bring-up is one-shot in New; after
// that the interrupt vector for the SERCOM must call ServiceInterrupt once per
// entry:
//
//	func isr(interrupt.Interrupt) {
//		slot.Service(func(c *i2cslave.Controller) {
//			if c.IsReadRequest() {
//				c.StageReply(reply)
//			}
//			c.ServiceInterrupt()
//		})
//	}
//
// StageReply from the main loop races the vector. Callers that restage while
// a master may be reading must mask interrupts around the call (irq.Slot.With).
package i2cslave

import (
	"periphcode-go/errcode"
	"periphcode-go/samd21"
	"periphcode-go/x/mmio"
)

// TxCapacity is the size of the reply buffer.
const TxCapacity = 128

// Sentinel is sent once the staged reply is exhausted.
const Sentinel = 0xFF

// MaxAddress is the largest 7-bit slave address.
const MaxAddress = 0x7F

// PowerGate sets APB clock mask bits. *samd21.PowerManager implements it.
type PowerGate interface {
	Enable(mask uint32)
}

const owner = "i2cslave"

// Controller owns one SERCOM and its two pins from New until Release.
type Controller struct {
	s        *samd21.Sercom
	sda, scl samd21.Pin
	addr     uint8

	tx      [TxCapacity]byte
	txIndex int
	txSize  int
}

// New configures s as an I2C slave answering addr (exact match). sda and scl
// must be PAD0 and PAD1 of s, on pins with I2C pad drivers. The SERCOM core
// clock must already be running.
func New(s *samd21.Sercom, pm PowerGate, sda, scl samd21.Pin, addr uint8) (*Controller, error) {
	if s == nil || pm == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "i2cslave.New"}
	}
	if addr > MaxAddress {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "i2cslave.New", Msg: "address above 0x7F"}
	}
	if pad, _, ok := sda.Pad(s.Index()); !ok || pad != 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "i2cslave.New", Msg: "SDA " + sda.String() + " is not PAD0"}
	}
	if pad, _, ok := scl.Pad(s.Index()); !ok || pad != 1 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "i2cslave.New", Msg: "SCL " + scl.String() + " is not PAD1"}
	}
	if !sda.I2C() || !scl.I2C() {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "i2cslave.New", Msg: "pins lack I2C pads"}
	}
	if err := s.Claim(owner); err != nil {
		return nil, errcode.Wrap("i2cslave.New", err)
	}

	pm.Enable(s.PowerMask())

	ctrla := s.CtrlA()
	ctrla.Write(samd21.SERCOM_I2CS_CTRLA_SWRST)
	ctrla.ReplaceBits(samd21.SERCOM_I2CS_CTRLA_MODE_I2CSLAVE,
		samd21.SERCOM_I2CS_CTRLA_MODE_Msk, samd21.SERCOM_I2CS_CTRLA_MODE_Pos)

	// ADDRMASK zero: exact match only.
	s.Addr().Set(uint32(addr) << samd21.SERCOM_I2CS_ADDR_ADDR_Pos)

	s.IntEnSet().Write(samd21.SERCOM_I2CS_INT_PREC | samd21.SERCOM_I2CS_INT_AMATCH | samd21.SERCOM_I2CS_INT_DRDY)
	ctrla.SetBits(samd21.SERCOM_I2CS_CTRLA_ENABLE)

	// The bus state is unknown after enable until forced idle.
	s.BusState().ReplaceBits(samd21.SERCOM_I2CM_STATUS_BUSSTATE_IDLE,
		samd21.SERCOM_I2CM_STATUS_BUSSTATE_Msk, samd21.SERCOM_I2CM_STATUS_BUSSTATE_Pos)

	return &Controller{s: s, sda: sda, scl: scl, addr: addr}, nil
}

// StageReply copies up to TxCapacity bytes of p as the reply to the next
// read and rewinds the cursor. It returns the number of bytes staged.
func (c *Controller) StageReply(p []byte) int {
	n := copy(c.tx[:], p)
	c.txIndex = 0
	c.txSize = n
	return n
}

// IsReadRequest reports whether an address match is pending. Check it on
// interrupt entry, before ServiceInterrupt, to stage a fresh reply.
func (c *Controller) IsReadRequest() bool {
	if c.s == nil {
		return false
	}
	return mmio.HasBits[uint8](c.s.IntFlag(), samd21.SERCOM_I2CS_INT_AMATCH)
}

// ServiceInterrupt handles the pending bus event. Stop beats address match
// beats data ready, so a transaction never restarts on stale flags.
//
// For stop and address match it returns true. For data ready it sends one
// byte and returns true if the hardware reported a problem with it (DRDY
// clear after the write, or the master NACKed). With nothing pending it
// returns false and changes nothing, as it does after Release.
func (c *Controller) ServiceInterrupt() bool {
	if c.s == nil {
		return false
	}
	flags := c.s.IntFlag().Get()
	switch {
	case flags&samd21.SERCOM_I2CS_INT_PREC != 0:
		c.rearm()
		c.s.IntFlag().Set(samd21.SERCOM_I2CS_INT_PREC)
		c.txIndex, c.txSize = 0, 0
		return true
	case flags&samd21.SERCOM_I2CS_INT_AMATCH != 0:
		c.rearm()
		return true
	case flags&samd21.SERCOM_I2CS_INT_DRDY != 0:
		return c.drain()
	}
	return false
}

// rearm ACKs and releases the bus for the next event.
func (c *Controller) rearm() {
	b := c.s.CtrlB()
	mmio.ClearBits[uint32](b, samd21.SERCOM_I2CS_CTRLB_ACKACT)
	mmio.ReplaceBits[uint32](b, samd21.SERCOM_I2CS_CMD_RESPOND,
		samd21.SERCOM_I2CS_CTRLB_CMD_Msk, samd21.SERCOM_I2CS_CTRLB_CMD_Pos)
}

func (c *Controller) drain() bool {
	v := byte(Sentinel)
	if c.txIndex < c.txSize {
		v = c.tx[c.txIndex]
		c.txIndex++
	}
	c.s.Data().Set(v)
	return c.s.IntFlag().Get()&samd21.SERCOM_I2CS_INT_DRDY == 0 ||
		c.s.Status().Get()&samd21.SERCOM_I2CS_STATUS_RXNACK != 0
}

// Cursor returns the drain position and staged length.
func (c *Controller) Cursor() (index, size int) { return c.txIndex, c.txSize }

// Address returns the 7-bit slave address.
func (c *Controller) Address() uint8 { return c.addr }

// Sercom returns the block the controller runs on.
func (c *Controller) Sercom() *samd21.Sercom { return c.s }

// Release disables the SERCOM and hands back the block and its pins. Empty
// the interrupt slot first (irq.Slot.Take); a vector that still reaches the
// controller afterwards finds nothing to do.
func (c *Controller) Release() (*samd21.Sercom, samd21.Pin, samd21.Pin) {
	s := c.s
	s.CtrlA().ClearBits(samd21.SERCOM_I2CS_CTRLA_ENABLE)
	s.Unclaim(owner)
	c.s = nil
	return s, c.sda, c.scl
}
