package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(SetLanguage("en-US"))
	assert.Equal("label loop missing", From("label %v missing", "loop"))
	assert.Equal("line 3 'inc' oops", From("line %d '%v' %v", 3, "inc", "oops"))
}

func TestSetLanguage_Invalid(t *testing.T) {
	assert := assert.New(t)

	assert.Error(SetLanguage("not a language tag!"))
	assert.Equal("ok", From("ok"))
}
