package midifile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Parse reads encoded bytes back through the gomidi SMF parser.
func Parse(data []byte) (s *smf.SMF, e error) {
	// the parser panics on some malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing midi bytes: %w", err)
	}
	return res, nil
}

// ParseFile reads a standard MIDI file from disk.
func ParseFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return Parse(dat)
}
