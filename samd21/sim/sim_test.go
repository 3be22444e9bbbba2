package sim

import (
	"testing"

	"periphcode-go/errcode"
	"periphcode-go/samd21"
	"periphcode-go/x/mmio"
)

func TestNewLoadsCalibrationRow(t *testing.T) {
	c := New(Options{Linearity: 0xA5, Bias: 5})
	lin, bias := c.P.NVM.ADCCalibration()
	if lin != 0xA5 || bias != 5 {
		t.Fatalf("calibration = %#x,%d; want 0xa5,5", lin, bias)
	}
}

func TestGatedWritesAreDropped(t *testing.T) {
	c := New()
	c.P.ADC.RefCtrl().Write(samd21.ADC_REFCTRL_REFSEL_INTVCC1)
	if c.ADC.REFCTRL.V != 0 || c.ADC.Ungated != 1 {
		t.Fatalf("REFCTRL=%#x ungated=%d; want write dropped", c.ADC.REFCTRL.V, c.ADC.Ungated)
	}
	c.P.PM.Enable(samd21.PM_APBCMASK_ADC)
	c.P.ADC.RefCtrl().Write(samd21.ADC_REFCTRL_REFSEL_INTVCC1)
	if c.ADC.REFCTRL.V != samd21.ADC_REFCTRL_REFSEL_INTVCC1 {
		t.Fatalf("REFCTRL=%#x after gate", c.ADC.REFCTRL.V)
	}
}

func TestSyncViolationCounted(t *testing.T) {
	c := New(Options{SyncPolls: 3})
	c.P.PM.Enable(samd21.PM_APBCMASK_ADC)

	// Two raw writes with no wait in between.
	c.ADC.REFCTRL.Set(1)
	c.ADC.AVGCTRL.Set(1)
	if c.ADC.Violations != 1 {
		t.Fatalf("violations=%d; want 1", c.ADC.Violations)
	}

	c.P.ADC.WaitSync()
	c.P.ADC.RefCtrl().Write(2)
	c.P.ADC.AvgCtrl().Write(2)
	if c.ADC.Violations != 1 {
		t.Fatalf("synced writes counted as violations: %d", c.ADC.Violations)
	}
}

func TestConversionKeepsStaleChargeAfterMuxChange(t *testing.T) {
	c := New()
	c.P.PM.Enable(samd21.PM_APBCMASK_ADC)
	c.ADC.Inputs[0] = 100
	c.ADC.Inputs[2] = 2200

	a := c.P.ADC
	a.InputCtrl().ReplaceBits(2, samd21.ADC_INPUTCTRL_MUXPOS_Msk, samd21.ADC_INPUTCTRL_MUXPOS_Pos)
	a.CtrlA().SetBits(samd21.ADC_CTRLA_ENABLE)

	convert := func() uint16 {
		a.SWTrig().SetBits(samd21.ADC_SWTRIG_START)
		mmio.WaitSet[uint8](a.IntFlag(), samd21.ADC_INTFLAG_RESRDY)
		return a.Result().Get()
	}
	if got := convert(); got != 100 {
		t.Fatalf("first conversion = %d; want stale 100", got)
	}
	if got := convert(); got != 2200 {
		t.Fatalf("second conversion = %d; want 2200", got)
	}
	if c.ADC.Triggers != 2 || c.ADC.IgnoredTriggers != 0 {
		t.Fatalf("triggers=%d ignored=%d", c.ADC.Triggers, c.ADC.IgnoredTriggers)
	}
}

func TestTriggerWhileDisabledIgnored(t *testing.T) {
	c := New()
	c.P.PM.Enable(samd21.PM_APBCMASK_ADC)
	c.P.ADC.SWTrig().SetBits(samd21.ADC_SWTRIG_START)
	if c.ADC.IgnoredTriggers != 1 || c.ADC.Triggers != 0 {
		t.Fatalf("triggers=%d ignored=%d", c.ADC.Triggers, c.ADC.IgnoredTriggers)
	}
}

func TestSercomResetAndEnable(t *testing.T) {
	c := New()
	s := c.P.Sercom[3]
	m := c.Sercom[3]
	c.P.PM.Enable(s.PowerMask())

	m.INTENSET.V = 0xFF
	s.CtrlA().Write(samd21.SERCOM_I2CS_CTRLA_SWRST)
	if m.CTRLA.Peek()&samd21.SERCOM_I2CS_CTRLA_SWRST != 0 {
		t.Fatal("SWRST still set after synced write returned")
	}
	if m.Resets != 1 || m.InterruptsEnabled() != 0 {
		t.Fatalf("resets=%d inten=%#x", m.Resets, m.InterruptsEnabled())
	}

	s.CtrlA().Write(samd21.SERCOM_I2CS_CTRLA_MODE_I2CSLAVE << samd21.SERCOM_I2CS_CTRLA_MODE_Pos)
	s.CtrlA().SetBits(samd21.SERCOM_I2CS_CTRLA_ENABLE)
	if !m.Enabled() || !m.SlaveMode() || m.Violations != 0 {
		t.Fatalf("enabled=%v slave=%v violations=%d", m.Enabled(), m.SlaveMode(), m.Violations)
	}
}

func TestIntFlagWriteOneToClear(t *testing.T) {
	c := New()
	m := c.Sercom[0]
	c.P.PM.Enable(c.P.Sercom[0].PowerMask())
	m.Raise(samd21.SERCOM_I2CS_INT_AMATCH | samd21.SERCOM_I2CS_INT_DRDY)
	c.P.Sercom[0].IntFlag().Set(samd21.SERCOM_I2CS_INT_AMATCH)
	if m.Pending() != samd21.SERCOM_I2CS_INT_DRDY {
		t.Fatalf("pending=%#x; want DRDY only", m.Pending())
	}
}

func TestMasterNoSlave(t *testing.T) {
	c := New()
	buf := make([]byte, 2)
	err := c.Master().Tx(0x21, nil, buf)
	if errcode.Of(err) != errcode.NACK {
		t.Fatalf("err=%v; want nack", err)
	}
	if errcode.Of(c.Master().Tx(0x21, []byte{1}, nil)) != errcode.Unsupported {
		t.Fatal("master write should be unsupported")
	}
}

func TestMasterAddressNotAnswered(t *testing.T) {
	c := New()
	m := c.Sercom[1]
	c.P.PM.Enable(c.P.Sercom[1].PowerMask())
	m.ADDR.V = 0x21 << samd21.SERCOM_I2CS_ADDR_ADDR_Pos
	m.CTRLA.V = samd21.SERCOM_I2CS_CTRLA_MODE_I2CSLAVE<<samd21.SERCOM_I2CS_CTRLA_MODE_Pos |
		samd21.SERCOM_I2CS_CTRLA_ENABLE

	err := c.Master().Tx(0x21, nil, make([]byte, 1))
	if errcode.Of(err) != errcode.NACK {
		t.Fatalf("err=%v; want nack with no handler", err)
	}
	if m.Pending() != 0 {
		t.Fatalf("pending=%#x after aborted transfer", m.Pending())
	}
}

func TestMatchesHonoursMask(t *testing.T) {
	c := New()
	m := c.Sercom[2]
	m.ADDR.V = 0x20<<samd21.SERCOM_I2CS_ADDR_ADDR_Pos | 0x3<<samd21.SERCOM_I2CS_ADDR_ADDRMASK_Pos
	for addr, want := range map[uint16]bool{0x20: true, 0x21: true, 0x23: true, 0x24: false} {
		if got := m.Matches(addr); got != want {
			t.Fatalf("Matches(%#x)=%v; want %v", addr, got, want)
		}
	}
}
