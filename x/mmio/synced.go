package mmio

import "golang.org/x/exp/constraints"

// Synced is a register whose writes must be followed by a synchronisation
// wait before the next dependent access. Every mutating method performs the
// write and then the wait.
type Synced[T constraints.Unsigned] struct {
	reg  Register[T]
	wait func()
}

// Sync pairs r with wait.
func Sync[T constraints.Unsigned](r Register[T], wait func()) Synced[T] {
	return Synced[T]{reg: r, wait: wait}
}

// SyncOn pairs r with a spin on busy bits of status.
func SyncOn[T, S constraints.Unsigned](r Register[T], status Register[S], busy S) Synced[T] {
	return Synced[T]{reg: r, wait: func() { WaitClear(status, busy) }}
}

func (s Synced[T]) Get() T { return s.reg.Get() }

// Write stores v and waits for synchronisation.
func (s Synced[T]) Write(v T) {
	s.reg.Set(v)
	s.wait()
}

// SetBits sets mask and waits for synchronisation.
func (s Synced[T]) SetBits(mask T) {
	SetBits(s.reg, mask)
	s.wait()
}

// ClearBits clears mask and waits for synchronisation.
func (s Synced[T]) ClearBits(mask T) {
	ClearBits(s.reg, mask)
	s.wait()
}

// ReplaceBits rewrites one field and waits for synchronisation.
func (s Synced[T]) ReplaceBits(v, mask T, pos uint8) {
	ReplaceBits(s.reg, v, mask, pos)
	s.wait()
}

// Wait blocks until any pending synchronisation has completed.
func (s Synced[T]) Wait() { s.wait() }
