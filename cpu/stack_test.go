package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())
	assert.False(s.Full())

	s.Push(12)
	assert.False(s.Empty())
	assert.Equal(1, len(s.Data))
	assert.Equal(12, s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(3)
	s.Push(7)

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(7, val)
	assert.Equal(1, len(s.Data))

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(3, val)
	assert.Equal(0, len(s.Data))
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	val, ok := s.Pop()
	assert.False(ok)
	assert.Equal(0, val)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(3)
	s.Push(7)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(7, val)
	assert.Equal(2, len(s.Data))
}

func TestStack_Unlimited(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	for i := range 10000 {
		s.Push(i)
	}

	assert.False(s.Full())
	assert.Equal(10000, len(s.Data))
}

func TestStack_Limit(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{Limit: 4}

	for i := range 4 {
		assert.False(s.Full())
		s.Push(i)
	}

	assert.True(s.Full())
	assert.Equal(4, len(s.Data))
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(1)
	s.Push(2)
	assert.Equal(2, len(s.Data))

	s.Reset()
	assert.True(s.Empty())
	assert.Equal(0, len(s.Data))

	s.Reset()
	assert.True(s.Empty())
}
