// Package conv renders register values and byte frames for println
// diagnostics without fmt or strconv.
package conv

const hexd = "0123456789abcdef"

// Hex writes the low digits*4 bits of n as zero-padded lowercase hex into the
// tail of buf and returns the used slice. digits is clamped to 1..8.
func Hex(buf []byte, n uint32, digits int) []byte {
	if digits < 1 {
		digits = 1
	}
	if digits > 8 {
		digits = 8
	}
	if len(buf) < digits {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < digits; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}

// H8 and H16 return "0x"-prefixed strings for register dumps.

func H8(v uint8) string {
	var b [4]byte
	b[0], b[1] = '0', 'x'
	Hex(b[2:], uint32(v), 2)
	return string(b[:])
}

func H16(v uint16) string {
	var b [6]byte
	b[0], b[1] = '0', 'x'
	Hex(b[2:], uint32(v), 4)
	return string(b[:])
}

// Bytes renders p as space-separated hex pairs ("1c 9a").
func Bytes(p []byte) string {
	if len(p) == 0 {
		return ""
	}
	out := make([]byte, 0, len(p)*3-1)
	for i, v := range p {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hexd[v>>4], hexd[v&0xF])
	}
	return string(out)
}
