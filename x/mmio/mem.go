package mmio

import "golang.org/x/exp/constraints"

// Mem is a register backed by ordinary memory. Hooks let a simulator model
// side effects: OnGet runs before every read and may update V, OnSet decides
// what a write stores (write-1-to-clear, self-clearing bits, ...).
type Mem[T constraints.Unsigned] struct {
	V      T
	Writes int

	OnGet func(m *Mem[T])
	OnSet func(old, v T) T
}

func (m *Mem[T]) Get() T {
	if m.OnGet != nil {
		m.OnGet(m)
	}
	return m.V
}

func (m *Mem[T]) Set(v T) {
	m.Writes++
	if m.OnSet != nil {
		v = m.OnSet(m.V, v)
	}
	m.V = v
}

// Peek returns the stored value without running OnGet.
func (m *Mem[T]) Peek() T { return m.V }
