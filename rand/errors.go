package rand

import "errors"

var (
	errStreamRange = errors.New("rand: stream number must be between 1 and 15")
	errBounds      = errors.New("rand: lower boundary must not exceed upper boundary")
	errErlang      = errors.New("rand: erlang standard deviation must not exceed the mean")
	errHyperx      = errors.New("rand: hyperx standard deviation must exceed the mean")
)
