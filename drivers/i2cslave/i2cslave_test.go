package i2cslave

import (
	"bytes"
	"testing"

	"tinygo.org/x/drivers"

	"periphcode-go/errcode"
	"periphcode-go/samd21"
	"periphcode-go/samd21/sim"
	"periphcode-go/x/irq"
)

const (
	prec   = samd21.SERCOM_I2CS_INT_PREC
	amatch = samd21.SERCOM_I2CS_INT_AMATCH
	drdy   = samd21.SERCOM_I2CS_INT_DRDY
)

func newController(t *testing.T, addr uint8) (*Controller, *sim.Chip, *sim.SercomModel) {
	t.Helper()
	chip := sim.New()
	c, err := New(chip.P.Sercom[3], chip.P.PM, samd21.PA22, samd21.PA23, addr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, chip, chip.Sercom[3]
}

func expectCursor(t *testing.T, c *Controller, index, size int) {
	t.Helper()
	if i, n := c.Cursor(); i != index || n != size {
		t.Fatalf("cursor=(%d,%d); want (%d,%d)", i, n, index, size)
	}
}

func TestNewConfigures(t *testing.T) {
	c, chip, m := newController(t, 0x21)
	if !chip.P.PM.Enabled(samd21.PM_APBCMASK_SERCOM0 << 3) {
		t.Fatal("SERCOM3 not powered")
	}
	if m.Resets != 1 {
		t.Fatalf("resets=%d", m.Resets)
	}
	if !m.SlaveMode() || !m.Enabled() {
		t.Fatalf("slave=%v enabled=%v", m.SlaveMode(), m.Enabled())
	}
	if m.ADDR.V != 0x21<<1 {
		t.Fatalf("ADDR=%#x; want %#x", m.ADDR.V, 0x21<<1)
	}
	if m.InterruptsEnabled() != prec|amatch|drdy {
		t.Fatalf("INTENSET=%#x", m.InterruptsEnabled())
	}
	if m.BusState() != samd21.SERCOM_I2CM_STATUS_BUSSTATE_IDLE {
		t.Fatalf("BUSSTATE=%d", m.BusState())
	}
	if m.Violations != 0 || m.Ungated != 0 {
		t.Fatalf("violations=%d ungated=%d", m.Violations, m.Ungated)
	}
	if c.Address() != 0x21 {
		t.Fatalf("Address()=%#x", c.Address())
	}
	expectCursor(t, c, 0, 0)
}

func TestNewRejects(t *testing.T) {
	chip := sim.New()
	s := chip.P.Sercom[3]
	cases := []struct {
		name     string
		sda, scl samd21.Pin
		addr     uint8
	}{
		{"address", samd21.PA22, samd21.PA23, 0x80},
		{"swapped pins", samd21.PA23, samd21.PA22, 0x21},
		{"pins on other sercom", samd21.PA08, samd21.PA09, 0x21},
		{"no pin", samd21.NoPin, samd21.PA23, 0x21},
	}
	for _, tc := range cases {
		if _, err := New(s, chip.P.PM, tc.sda, tc.scl, tc.addr); errcode.Of(err) != errcode.InvalidParams {
			t.Fatalf("%s: err=%v; want invalid_params", tc.name, err)
		}
	}
	if s.Owner() != "" || chip.Sercom[3].CTRLA.Writes != 0 {
		t.Fatal("rejected New touched the block")
	}
}

func TestNewAlternatePads(t *testing.T) {
	chip := sim.New()
	// PA22/PA23 reach SERCOM5 through the alternate mux.
	c, err := New(chip.P.Sercom[5], chip.P.PM, samd21.PA22, samd21.PA23, 0x10)
	if err != nil {
		t.Fatal(err)
	}
	if !chip.Sercom[5].Enabled() || chip.Sercom[3].Enabled() {
		t.Fatal("wrong SERCOM configured")
	}
	c.Release()
}

func TestBlockHeldOnce(t *testing.T) {
	c, chip, _ := newController(t, 0x21)
	if _, err := New(chip.P.Sercom[3], chip.P.PM, samd21.PA22, samd21.PA23, 0x22); errcode.Of(err) != errcode.BlockInUse {
		t.Fatalf("err=%v; want block_in_use", err)
	}
	s, sda, scl := c.Release()
	if s != chip.P.Sercom[3] || sda != samd21.PA22 || scl != samd21.PA23 {
		t.Fatal("Release returned the wrong resources")
	}
	if chip.Sercom[3].Enabled() {
		t.Fatal("SERCOM still enabled after Release")
	}
	if _, err := New(s, chip.P.PM, sda, scl, 0x22); err != nil {
		t.Fatalf("New after Release: %v", err)
	}
	if chip.Sercom[3].Resets != 2 {
		t.Fatalf("resets=%d", chip.Sercom[3].Resets)
	}
}

func TestReleasedControllerIgnoresVector(t *testing.T) {
	c, _, m := newController(t, 0x21)
	c.Release()
	m.Raise(amatch | drdy)
	if c.IsReadRequest() {
		t.Fatal("read request reported after Release")
	}
	if c.ServiceInterrupt() {
		t.Fatal("handled after Release")
	}
	if len(m.Sent) != 0 || m.Responds != 0 {
		t.Fatalf("sent=%v responds=%d", m.Sent, m.Responds)
	}
}

func TestNewRejectsPinsWithoutI2C(t *testing.T) {
	chip := sim.New()
	// PA04/PA05 are PAD0/PAD1 of SERCOM0 but lack the I2C pad drivers.
	_, err := New(chip.P.Sercom[0], chip.P.PM, samd21.PA04, samd21.PA05, 0x21)
	if errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err=%v; want invalid_params", err)
	}
	if chip.Sercom[0].Resets != 0 {
		t.Fatal("rejected New touched the block")
	}
	c, err := New(chip.P.Sercom[0], chip.P.PM, samd21.PA08, samd21.PA09, 0x21)
	if err != nil {
		t.Fatalf("PA08/PA09: %v", err)
	}
	c.Release()
}

func TestStageReplyTruncates(t *testing.T) {
	c, _, _ := newController(t, 0x21)
	if n := c.StageReply(make([]byte, 200)); n != TxCapacity {
		t.Fatalf("staged %d", n)
	}
	expectCursor(t, c, 0, TxCapacity)
}

func TestNoFlagsNotHandled(t *testing.T) {
	c, _, m := newController(t, 0x21)
	c.StageReply([]byte{1, 2, 3})
	m.Raise(drdy)
	c.ServiceInterrupt()
	m.INTFLAG.V = 0
	ctrlb := m.CTRLB.Writes

	for i := 0; i < 3; i++ {
		if c.ServiceInterrupt() {
			t.Fatal("handled with nothing pending")
		}
	}
	expectCursor(t, c, 1, 3)
	if len(m.Sent) != 1 || m.CTRLB.Writes != ctrlb {
		t.Fatalf("sent=%v ctrlb writes=%d", m.Sent, m.CTRLB.Writes-ctrlb)
	}
}

func TestAddressMatchKeepsCursor(t *testing.T) {
	c, _, m := newController(t, 0x21)
	c.StageReply([]byte{1, 2, 3})
	m.Raise(drdy)
	c.ServiceInterrupt()
	m.INTFLAG.V = 0

	m.RaiseAddressMatch(true)
	if !c.IsReadRequest() {
		t.Fatal("IsReadRequest false with AMATCH pending")
	}
	if !c.ServiceInterrupt() {
		t.Fatal("address match not handled")
	}
	expectCursor(t, c, 1, 3)
	if m.Responds != 1 || m.Nacks != 0 {
		t.Fatalf("responds=%d nacks=%d", m.Responds, m.Nacks)
	}
	if c.IsReadRequest() {
		t.Fatal("AMATCH still pending after re-arm")
	}
}

func TestStopResetsCursor(t *testing.T) {
	c, _, m := newController(t, 0x21)
	c.StageReply([]byte{1, 2, 3})
	m.Raise(drdy)
	c.ServiceInterrupt()
	m.INTFLAG.V = 0

	m.RaiseStop()
	if !c.ServiceInterrupt() {
		t.Fatal("stop not handled")
	}
	expectCursor(t, c, 0, 0)
	if m.Pending()&prec != 0 {
		t.Fatal("PREC still pending")
	}
}

func TestStopBeatsDataReady(t *testing.T) {
	c, _, m := newController(t, 0x21)
	c.StageReply([]byte{0xAA, 0xBB})
	m.Raise(prec | amatch | drdy)

	if !c.ServiceInterrupt() {
		t.Fatal("not handled")
	}
	if len(m.Sent) != 0 {
		t.Fatalf("drained %v in the stop branch", m.Sent)
	}
	expectCursor(t, c, 0, 0)
}

func TestAddressMatchBeatsDataReady(t *testing.T) {
	c, _, m := newController(t, 0x21)
	c.StageReply([]byte{0xAA, 0xBB})
	m.Raise(amatch | drdy)

	if !c.ServiceInterrupt() {
		t.Fatal("not handled")
	}
	if len(m.Sent) != 0 {
		t.Fatalf("drained %v in the address branch", m.Sent)
	}
	expectCursor(t, c, 0, 2)
	if m.Responds != 1 {
		t.Fatalf("responds=%d; want 1", m.Responds)
	}
}

func TestDrainFullBuffer(t *testing.T) {
	c, _, m := newController(t, 0x21)
	reply := make([]byte, TxCapacity)
	for i := range reply {
		reply[i] = byte(i*7 + 3)
	}
	c.StageReply(reply)
	for i := 0; i < TxCapacity; i++ {
		m.RaiseDataReady()
		if c.ServiceInterrupt() {
			t.Fatalf("byte %d reported a problem", i)
		}
	}
	if !bytes.Equal(m.Sent, reply) {
		t.Fatalf("sent %x", m.Sent)
	}
	expectCursor(t, c, TxCapacity, TxCapacity)

	m.RaiseDataReady()
	c.ServiceInterrupt()
	if last := m.Sent[len(m.Sent)-1]; last != Sentinel {
		t.Fatalf("after exhaustion sent %#x", last)
	}
	expectCursor(t, c, TxCapacity, TxCapacity)
}

func TestEmptyReplySendsSentinel(t *testing.T) {
	c, _, m := newController(t, 0x21)
	c.StageReply(nil)
	m.RaiseDataReady()
	c.ServiceInterrupt()
	if !bytes.Equal(m.Sent, []byte{Sentinel}) {
		t.Fatalf("sent %x", m.Sent)
	}
	expectCursor(t, c, 0, 0)
}

func TestDrainReportsProblems(t *testing.T) {
	c, _, m := newController(t, 0x21)
	c.StageReply([]byte{1, 2, 3})

	m.RaiseDataReady()
	m.RejectNextByte = true
	if !c.ServiceInterrupt() {
		t.Fatal("rejected byte not reported")
	}

	m.RaiseDataReady()
	m.SetRxNack(true)
	if !c.ServiceInterrupt() {
		t.Fatal("NACK not reported")
	}

	m.RaiseDataReady()
	m.SetRxNack(false)
	if c.ServiceInterrupt() {
		t.Fatal("clean byte reported as a problem")
	}
	// Reporting never rewinds or aborts.
	expectCursor(t, c, 3, 3)
}

// The read sequence from the ItsyBitsy example: address 0x21, reply 1c 9a.
func TestReplySequence(t *testing.T) {
	c, _, m := newController(t, 0x21)
	c.StageReply([]byte{0x1c, 0x9a})

	m.RaiseAddressMatch(true)
	if !c.ServiceInterrupt() {
		t.Fatal("address match not handled")
	}
	expectCursor(t, c, 0, 2)

	for _, want := range []byte{0x1c, 0x9a, Sentinel} {
		m.RaiseDataReady()
		c.ServiceInterrupt()
		if got := m.Sent[len(m.Sent)-1]; got != want {
			t.Fatalf("sent %#x; want %#x", got, want)
		}
	}

	m.RaiseStop()
	if !c.ServiceInterrupt() {
		t.Fatal("stop not handled")
	}
	expectCursor(t, c, 0, 0)
}

func install(t *testing.T, m *sim.SercomModel, c *Controller, reply []byte) *irq.Slot[Controller] {
	t.Helper()
	slot := new(irq.Slot[Controller])
	if err := slot.Init(c); err != nil {
		t.Fatal(err)
	}
	m.Handler = func() {
		slot.Service(func(c *Controller) {
			if c.IsReadRequest() {
				c.StageReply(reply)
			}
			c.ServiceInterrupt()
		})
	}
	return slot
}

func TestMasterReadsThroughVector(t *testing.T) {
	c, chip, m := newController(t, 0x21)
	install(t, m, c, []byte{0x1c, 0x9a})

	var bus drivers.I2C = chip.Master()
	got := make([]byte, 3)
	if err := bus.Tx(0x21, nil, got); err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if !bytes.Equal(got, []byte{0x1c, 0x9a, Sentinel}) {
		t.Fatalf("read %x", got)
	}
	expectCursor(t, c, 0, 0)

	// A second transaction restages the reply on address match.
	got = got[:2]
	if err := bus.Tx(0x21, nil, got); err != nil || !bytes.Equal(got, []byte{0x1c, 0x9a}) {
		t.Fatalf("second read %x, %v", got, err)
	}
	if err := bus.Tx(0x22, nil, got); errcode.Of(err) != errcode.NACK {
		t.Fatalf("wrong address err=%v", err)
	}
}

func TestEmptySlotLeavesBusStalled(t *testing.T) {
	c, chip, m := newController(t, 0x21)
	slot := install(t, m, c, []byte{1})
	if slot.Take() != c {
		t.Fatal("Take returned another controller")
	}
	err := chip.Master().Tx(0x21, nil, make([]byte, 1))
	if errcode.Of(err) != errcode.NACK {
		t.Fatalf("err=%v; want nack with no controller installed", err)
	}
}

func TestTwoSercomsOneImplementation(t *testing.T) {
	chip := sim.New()
	a, err := New(chip.P.Sercom[3], chip.P.PM, samd21.PA22, samd21.PA23, 0x21)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(chip.P.Sercom[1], chip.P.PM, samd21.PA16, samd21.PA17, 0x30)
	if err != nil {
		t.Fatal(err)
	}
	install(t, chip.Sercom[3], a, []byte{0xA1})
	install(t, chip.Sercom[1], b, []byte{0xB1, 0xB2})

	buf := make([]byte, 2)
	if err := chip.Master().Tx(0x30, nil, buf); err != nil || !bytes.Equal(buf, []byte{0xB1, 0xB2}) {
		t.Fatalf("0x30: %x %v", buf, err)
	}
	if err := chip.Master().Tx(0x21, nil, buf); err != nil || !bytes.Equal(buf, []byte{0xA1, Sentinel}) {
		t.Fatalf("0x21: %x %v", buf, err)
	}
}
