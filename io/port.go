// Package io provides the output port written by msg, and loading of
// program sources from a file system.
package io

import (
	"io"
	"strings"
)

// Port is an append-only text buffer. If Echo is set, every write is
// also copied to it as it happens.
type Port struct {
	Echo io.Writer

	text strings.Builder
}

// Write appends text to the port.
func (port *Port) Write(text string) (err error) {
	port.text.WriteString(text)

	if port.Echo != nil {
		_, err = io.WriteString(port.Echo, text)
	}

	return
}

// String returns all text written since the last reset.
func (port *Port) String() string {
	return port.text.String()
}

// Len returns the number of bytes written since the last reset.
func (port *Port) Len() int {
	return port.text.Len()
}

// Reset discards the buffered text.
func (port *Port) Reset() {
	port.text.Reset()
}
