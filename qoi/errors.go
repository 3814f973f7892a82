package qoi

import "errors"

// Decode errors. All are terminal for the call that returns them; there is
// no partial-result recovery.
var (
	ErrInvalidMagic      = errors.New("invalid QOI magic")
	ErrInvalidChannels   = errors.New("invalid channels tag")
	ErrInvalidColorspace = errors.New("invalid colorspace tag")
	ErrInvalidData       = errors.New("invalid QOI data")
	ErrEndOfStream       = errors.New("unexpected end of stream")
	ErrTooLarge          = errors.New("image too large")
)
