package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedAll(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int32{"c": 3, "a": 1, "b": 2}

	var keys []string
	var values []int32
	for key, value := range SortedAll(m) {
		keys = append(keys, key)
		values = append(values, value)
	}

	assert.Equal([]string{"a", "b", "c"}, keys)
	assert.Equal([]int32{1, 2, 3}, values)
}

func TestSortedAll_Stop(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int32{"c": 3, "a": 1, "b": 2}

	var keys []string
	for key := range SortedAll(m) {
		keys = append(keys, key)
		if len(keys) == 2 {
			break
		}
	}

	assert.Equal([]string{"a", "b"}, keys)
}
