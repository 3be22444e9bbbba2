package board

import (
	"encoding/json"
	"strconv"
	"strings"

	"periphcode-go/errcode"
	"periphcode-go/x/conv"
)

// Bytes is a byte string written as hex pairs ("1c 9a") in config files
// rather than the base64 encoding/json uses for []byte.
type Bytes []byte

// ParseBytes reads hex pairs separated by spaces or commas, each with an
// optional 0x prefix.
func ParseBytes(s string) (Bytes, error) {
	out := Bytes{}
	for _, f := range strings.Fields(strings.ReplaceAll(s, ",", " ")) {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "board.ParseBytes", Msg: f, Err: err}
		}
		out = append(out, byte(v))
	}
	return out, nil
}

func (b Bytes) String() string { return conv.Bytes(b) }

func (b Bytes) MarshalJSON() ([]byte, error) { return json.Marshal(b.String()) }

func (b *Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseBytes(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}
