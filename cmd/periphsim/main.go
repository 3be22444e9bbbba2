//go:build !tinygo

// Command periphsim runs the SAMD21 drivers against the register simulator
// and talks to boards running the firmware.
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
