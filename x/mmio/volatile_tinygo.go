//go:build tinygo

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// At8, At16 and At32 map a peripheral address onto a volatile register.
// Only the device package should call these; everything else receives
// already-mapped handles.

func At8(addr uintptr) Register[uint8] {
	return (*volatile.Register8)(unsafe.Pointer(addr))
}

func At16(addr uintptr) Register[uint16] {
	return (*volatile.Register16)(unsafe.Pointer(addr))
}

func At32(addr uintptr) Register[uint32] {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}
