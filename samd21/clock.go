package samd21

import (
	"periphcode-go/errcode"
	"periphcode-go/x/mmio"
)

// ClockController routes generic clock generators to peripheral channels.
// Generator setup itself (sources, dividers) is left to the board bring-up;
// this only connects an already running generator to a channel, once.
type ClockController struct {
	clkctrl mmio.Synced[uint16]
	used    uint64 // bit per channel ID
}

func NewClockController(clkctrl mmio.Register[uint16], status mmio.Register[uint8]) *ClockController {
	return &ClockController{
		clkctrl: mmio.SyncOn[uint16, uint8](clkctrl, status, GCLK_STATUS_SYNCBUSY),
	}
}

// Attach enables generator gen on channel id. Each channel can be attached
// once; further requests fail with errcode.ClockUnavailable.
func (c *ClockController) Attach(id, gen uint8) error {
	if id > GCLK_CLKCTRL_ID_Msk || gen > GCLK_CLKCTRL_GEN_Msk {
		return &errcode.E{C: errcode.InvalidParams, Op: "gclk.Attach"}
	}
	bit := uint64(1) << id
	if c.used&bit != 0 {
		return &errcode.E{C: errcode.ClockUnavailable, Op: "gclk.Attach", Msg: "channel already attached"}
	}
	c.clkctrl.Write(uint16(id) | uint16(gen)<<GCLK_CLKCTRL_GEN_Pos | GCLK_CLKCTRL_CLKEN)
	c.used |= bit
	return nil
}

// Attached reports whether channel id has been attached.
func (c *ClockController) Attached(id uint8) bool {
	return id <= GCLK_CLKCTRL_ID_Msk && c.used&(uint64(1)<<id) != 0
}
