package samd21

import "periphcode-go/x/mmio"

// PowerManager gates the APB clocks of bridge C peripherals (SERCOMs, ADC).
// A peripheral's registers read as zero and ignore writes until its bit is
// set, so Enable must come before any other access.
type PowerManager struct {
	apbcmask mmio.Register[uint32]
}

func NewPowerManager(apbcmask mmio.Register[uint32]) *PowerManager {
	return &PowerManager{apbcmask: apbcmask}
}

// Enable sets mask in APBCMASK. Idempotent.
func (p *PowerManager) Enable(mask uint32) { mmio.SetBits(p.apbcmask, mask) }

// Enabled reports whether every bit in mask is set.
func (p *PowerManager) Enabled(mask uint32) bool { return mmio.HasBits(p.apbcmask, mask) }
