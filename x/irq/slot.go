// Package irq holds the pieces shared between interrupt handlers and the
// main loop: interrupt masking and the Slot that hands a driver to its
// interrupt vector.
package irq

import (
	"sync/atomic"

	"periphcode-go/errcode"
)

// Slot is the single place an interrupt handler finds the driver it services.
// It is filled once at startup and read from the vector thereafter.
type Slot[T any] struct {
	p atomic.Pointer[T]
}

// Init installs v. A second Init without an intervening Take returns
// errcode.Busy and leaves the slot unchanged.
func (s *Slot[T]) Init(v *T) error {
	if v == nil {
		return errcode.InvalidParams
	}
	if !s.p.CompareAndSwap(nil, v) {
		return errcode.Busy
	}
	return nil
}

// Service runs fn on the installed value. It returns false when the slot is
// empty, which is the case for a vector firing before Init. fn may call
// Disable; the mask nests.
func (s *Slot[T]) Service(fn func(*T)) bool {
	v := s.p.Load()
	if v == nil {
		return false
	}
	st := enterVector()
	fn(v)
	leaveVector(st)
	return true
}

// With runs fn on the installed value with interrupts masked, so fn cannot
// interleave with a concurrent Service.
func (s *Slot[T]) With(fn func(*T)) bool {
	st := Disable()
	defer Restore(st)
	return s.Service(fn)
}

// Take empties the slot and returns what it held.
func (s *Slot[T]) Take() *T {
	st := Disable()
	defer Restore(st)
	return s.p.Swap(nil)
}
