// Package mmio provides typed handles over memory-mapped peripheral registers.
//
// A Register is anything with Get/Set of an unsigned width; on TinyGo the
// runtime/volatile register types satisfy it directly, on the host Mem stands
// in with optional read/write hooks so drivers can run against a simulated
// register file.
//
// Registers that live behind a clock-domain boundary are wrapped in Synced,
// which pairs every write with the peripheral's synchronisation wait. Drivers
// only ever get the Synced view of such registers, so the wait cannot be
// skipped by a caller.
package mmio

import "golang.org/x/exp/constraints"

// Register is one hardware register of width T.
type Register[T constraints.Unsigned] interface {
	Get() T
	Set(v T)
}

// SetBits sets the bits in mask (read-modify-write).
func SetBits[T constraints.Unsigned](r Register[T], mask T) { r.Set(r.Get() | mask) }

// ClearBits clears the bits in mask (read-modify-write).
func ClearBits[T constraints.Unsigned](r Register[T], mask T) { r.Set(r.Get() &^ mask) }

// HasBits reports whether every bit in mask is set.
func HasBits[T constraints.Unsigned](r Register[T], mask T) bool { return r.Get()&mask == mask }

// ReplaceBits writes v into the field described by mask (unshifted) at pos.
func ReplaceBits[T constraints.Unsigned](r Register[T], v, mask T, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | (v&mask)<<pos)
}

// Field extracts the field described by mask (unshifted) at pos.
func Field[T constraints.Unsigned](r Register[T], mask T, pos uint8) T {
	return (r.Get() >> pos) & mask
}

// WaitClear spins until every bit in mask reads zero. No timeout.
func WaitClear[T constraints.Unsigned](r Register[T], mask T) {
	for r.Get()&mask != 0 {
	}
}

// WaitSet spins until any bit in mask reads one. No timeout.
func WaitSet[T constraints.Unsigned](r Register[T], mask T) {
	for r.Get()&mask == 0 {
	}
}
