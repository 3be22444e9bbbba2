// Package adcbridge publishes ADC samples to an I2C bus master: the board
// samples its analog inputs periodically, and any read addressed to the
// slave returns the latest frame.
//
// Frame layout: two bytes per configured channel, big-endian, in
// configuration order. Reads beyond the frame return 0xFF.
package adcbridge

import (
	"context"
	"time"

	"periphcode-go/drivers/adc"
	"periphcode-go/drivers/i2cslave"
	"periphcode-go/errcode"
	"periphcode-go/x/conv"
	"periphcode-go/x/irq"
)

// Sampler is the ADC as the bridge uses it. *adc.Driver implements it.
type Sampler interface {
	ReadChecked(ch adc.Channel) (uint16, error)
}

type Service struct {
	adc   Sampler
	chans []adc.Channel

	// Shared with the I2C vector; guarded by irq masking.
	latest [i2cslave.TxCapacity]byte
	n      int

	scratch [i2cslave.TxCapacity]byte

	Polls  uint32
	Errors uint32
	Served uint32 // read requests answered
}

// New builds a bridge sampling chans in order.
func New(a Sampler, chans []adc.Channel) (*Service, error) {
	if a == nil || len(chans) == 0 || len(chans)*2 > i2cslave.TxCapacity {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "adcbridge.New"}
	}
	for _, ch := range chans {
		if _, ok := ch.Muxpos(); !ok {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "adcbridge.New", Msg: "channel out of range"}
		}
	}
	return &Service{adc: a, chans: append([]adc.Channel(nil), chans...)}, nil
}

// Poll samples every channel and publishes the frame. On error the
// previously published frame stays in place.
func (s *Service) Poll() error {
	f := s.scratch[:0]
	for _, ch := range s.chans {
		v, err := s.adc.ReadChecked(ch)
		if err != nil {
			s.Errors++
			return errcode.Wrap("adcbridge.Poll", err)
		}
		f = append(f, byte(v>>8), byte(v))
	}

	st := irq.Disable()
	s.n = copy(s.latest[:], f)
	irq.Restore(st)

	s.Polls++
	return nil
}

// Handle is the body of the SERCOM interrupt vector. It stages the latest
// frame when a master addresses the slave, so every transaction reads one
// consistent frame from its first byte.
func (s *Service) Handle(c *i2cslave.Controller) {
	if c.IsReadRequest() {
		st := irq.Disable()
		c.StageReply(s.latest[:s.n])
		irq.Restore(st)
		s.Served++
	}
	c.ServiceInterrupt()
}

// Frame returns a copy of the published frame.
func (s *Service) Frame() []byte {
	st := irq.Disable()
	defer irq.Restore(st)
	return append([]byte(nil), s.latest[:s.n]...)
}

// Run polls immediately and then every interval until ctx ends.
func (s *Service) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "adcbridge.Run", Msg: "interval"}
	}
	println("[adcbridge] start channels=", len(s.chans), "every_ms=", int(every/time.Millisecond))

	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		if err := s.Poll(); err != nil {
			println("[adcbridge] poll:", err.Error())
		} else if s.Polls%64 == 1 {
			println("[adcbridge] frame", conv.Bytes(s.Frame()))
		}
		select {
		case <-ctx.Done():
			println("[adcbridge] stop polls=", s.Polls, "errors=", s.Errors)
			return ctx.Err()
		case <-tick.C:
		}
	}
}
