//go:build !tinygo

package board

import (
	"sigs.k8s.io/yaml"

	"periphcode-go/errcode"
)

// LoadYAML parses a board file. Fields the file leaves out keep the
// defaults of the board it names, so a file can be as small as
//
//	name: metro_m0
//	i2c_slave:
//	  address: 0x30
//
// The result is validated.
func LoadYAML(b []byte) (Config, error) {
	var head struct {
		Name string `json:"name"`
	}
	if err := yaml.Unmarshal(b, &head); err != nil {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "board.LoadYAML", Err: err, Msg: err.Error()}
	}
	c, ok := Default(head.Name)
	if !ok {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "board.LoadYAML", Msg: "unknown board " + head.Name}
	}
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "board.LoadYAML", Err: err, Msg: err.Error()}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// YAML renders c in the format LoadYAML reads.
func (c Config) YAML() ([]byte, error) { return yaml.Marshal(c) }
