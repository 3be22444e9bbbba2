package samd21

import "periphcode-go/errcode"

// owner records which driver currently holds a block. Claims happen during
// single-threaded bring-up, so no locking.
type owner struct {
	by string
}

// Claim marks the block as held by dev. It fails with errcode.BlockInUse if
// another driver holds it.
func (o *owner) Claim(dev string) error {
	if o.by != "" {
		return &errcode.E{C: errcode.BlockInUse, Op: "claim", Msg: "held by " + o.by}
	}
	o.by = dev
	return nil
}

// Unclaim releases a claim made by dev. Releasing someone else's claim is a
// no-op.
func (o *owner) Unclaim(dev string) {
	if o.by == dev {
		o.by = ""
	}
}

// Owner returns the current holder, or "" when free.
func (o *owner) Owner() string { return o.by }
