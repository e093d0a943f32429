package model

import "errors"

// ErrInvalidSpec reports a request the musical vocabulary cannot satisfy:
// an unknown key, mode or chord quality, a tempo or duration out of range,
// or an empty progression. Raised at resolution time and surfaced verbatim.
var ErrInvalidSpec = errors.New("invalid specification")

// ErrEncodingInvariant reports an internal consistency failure while
// serializing a song: events out of order, unmatched note-ons or a
// malformed chunk. Valid input never triggers it.
var ErrEncodingInvariant = errors.New("encoding invariant violation")
