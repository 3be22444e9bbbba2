//go:build !tinygo

package irq

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// State is a placeholder for the interrupt mask on regular Go.
type State uintptr

// On the host an "interrupt" is whatever goroutine calls Slot.Service.
// Disable, Slot.With and Slot.Service all hold one process-wide lock, so a
// vector body never interleaves with masked main-loop code. The lock nests
// for the goroutine holding it, as interrupt.Disable nests on target, so a
// vector body may mask around shared state itself.
var mask struct {
	mu    sync.Mutex
	owner atomic.Int64 // goroutine holding mu; 0 when free
	depth int          // touched only by owner
}

func Disable() State {
	id := goid()
	if mask.owner.Load() == id {
		mask.depth++
		return State(mask.depth)
	}
	mask.mu.Lock()
	mask.owner.Store(id)
	mask.depth = 1
	return 1
}

func Restore(State) {
	mask.depth--
	if mask.depth == 0 {
		mask.owner.Store(0)
		mask.mu.Unlock()
	}
}

// The vector runs masked on the host; on target the NVIC already keeps the
// main loop out.
func enterVector() State  { return Disable() }
func leaveVector(s State) { Restore(s) }

// goid parses the current goroutine id out of "goroutine N [running]:".
func goid() int64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	var id int64
	for _, c := range buf[len("goroutine "):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
