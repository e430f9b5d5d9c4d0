package study

import "errors"

var (
	// ErrMissingInput is returned when a request lacks its required input:
	// an empty subject, an empty topic, or a doubt with neither query nor
	// image.
	ErrMissingInput = errors.New("missing required input")

	// ErrBusy is returned by Slot.Begin while a request is outstanding.
	ErrBusy = errors.New("request already in flight")
)
