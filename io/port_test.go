package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPort(t *testing.T) {
	assert := assert.New(t)

	port := &Port{}
	assert.Equal("", port.String())
	assert.Equal(0, port.Len())

	assert.NoError(port.Write("Reg: "))
	assert.NoError(port.Write("5"))
	assert.Equal("Reg: 5", port.String())
	assert.Equal(6, port.Len())

	port.Reset()
	assert.Equal("", port.String())
}

func TestPort_Echo(t *testing.T) {
	assert := assert.New(t)

	echo := &bytes.Buffer{}
	port := &Port{Echo: echo}

	assert.NoError(port.Write("a, b; c"))
	assert.NoError(port.Write("!"))
	assert.Equal("a, b; c!", port.String())
	assert.Equal("a, b; c!", echo.String())

	port.Reset()
	assert.Equal("a, b; c!", echo.String())
}

type brokenWriter struct{}

var errBroken = errors.New("broken")

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errBroken
}

func TestPort_EchoError(t *testing.T) {
	assert := assert.New(t)

	port := &Port{Echo: brokenWriter{}}

	err := port.Write("x")
	assert.ErrorIs(err, errBroken)
	assert.Equal("x", port.String())
}
