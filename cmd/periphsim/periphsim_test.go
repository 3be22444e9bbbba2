//go:build !tinygo

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestADCCommand(t *testing.T) {
	out, err := run(t, "adc", "--channel", "1", "--value", "2048", "--linearity", "0x12", "--bias", "2")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"channel 1 pin PB08 raw 0x800 1650 mV", "calib 0x0212", "triggers 2 enables 1 disables 1 violations 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestADCCommandRejectsChannel(t *testing.T) {
	if _, err := run(t, "adc", "--channel", "4"); err == nil {
		t.Fatal("channel 4 accepted")
	}
}

func TestI2CSlaveCommand(t *testing.T) {
	out, err := run(t, "i2cslave", "--reply", "1c 9a", "--read", "3", "--times", "2")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "read 1c 9a ff\n") != 2 {
		t.Fatalf("output:\n%s", out)
	}
	if !strings.Contains(out, "sent 6 bytes, acks 4, cursor 0/0") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestI2CSlaveCommandWrongAddress(t *testing.T) {
	_, err := run(t, "i2cslave", "--addr", "0x22")
	if err == nil || !strings.Contains(err.Error(), "nack") {
		t.Fatalf("err=%v", err)
	}
}

func TestI2CSlaveCommandBadPins(t *testing.T) {
	if _, err := run(t, "i2cslave", "--sercom", "1"); err == nil {
		t.Fatal("PA22/PA23 accepted on SERCOM1")
	}
}

func TestBridgeCommand(t *testing.T) {
	out, err := run(t, "bridge", "--values", "256,4095,10")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "metro_m0 addr 0x21 frame 01 00 0f ff 00 0a") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	if err := os.WriteFile(path, []byte("name: itsybitsy_m0\ni2c_slave:\n  address: 0x40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "config", "--file", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "address: 64") || !strings.Contains(out, "name: itsybitsy_m0") {
		t.Fatalf("output:\n%s", out)
	}
	if _, err := run(t, "config", "--board", "pico"); err == nil {
		t.Fatal("unknown board accepted")
	}
}

func TestCopyLinesFiltersByTag(t *testing.T) {
	in := "[adc] ch 0 raw 0x100\r\n[i2cs] boot\n[adc] ch 1 raw 0x200\npartial"
	var out bytes.Buffer
	if err := copyLines(&out, strings.NewReader(in), "adc"); err != nil {
		t.Fatal(err)
	}
	want := "[adc] ch 0 raw 0x100\n[adc] ch 1 raw 0x200\n"
	if out.String() != want {
		t.Fatalf("got %q", out.String())
	}

	out.Reset()
	copyLines(&out, strings.NewReader(in), "")
	if strings.Count(out.String(), "\n") != 4 {
		t.Fatalf("unfiltered %q", out.String())
	}
}
