package io

import (
	"errors"

	"github.com/ezrec/tinyasm/translate"
)

var f = translate.From

var (
	// Source errors
	ErrSourceName = errors.New(f("source name missing"))
)

type ErrSourceDirectory string

func (err ErrSourceDirectory) Error() string {
	return f("%v is a directory", string(err))
}
