//go:build !tinygo

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tarm/serial"
)

func newMonitorCommand() *cobra.Command {
	var (
		port string
		baud int
		tag  string
	)
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Print a board's console, optionally only lines with one [tag]",
		RunE: func(cmd *cobra.Command, args []string) error {
			// No read timeout: tarm/serial reports a timed-out read as EOF.
			p, err := serial.OpenPort(&serial.Config{Name: port, Baud: baud})
			if err != nil {
				return fmt.Errorf("open %s: %w", port, err)
			}
			defer p.Close()
			return copyLines(cmd.OutOrStdout(), p, tag)
		},
	}
	cmd.Flags().StringVar(&port, "port", "/dev/ttyACM0", "serial device")
	cmd.Flags().IntVar(&baud, "baud", 115200, "baud rate")
	cmd.Flags().StringVar(&tag, "tag", "", "only lines starting with [tag], e.g. adc")
	return cmd
}

// copyLines forwards complete lines from r, keeping those with the wanted
// tag. It returns nil at EOF.
func copyLines(w io.Writer, r io.Reader, tag string) error {
	prefix := ""
	if tag != "" {
		prefix = "[" + tag + "]"
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if prefix != "" && !strings.HasPrefix(line, prefix) {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return sc.Err()
}
