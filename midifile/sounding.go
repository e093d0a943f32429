package midifile

import (
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jackdreilly/jammer/util"
)

// SoundingChord is the set of keys audible at one moment of a track.
type SoundingChord struct {
	Tick uint32
	Keys []uint8
}

// SoundingChords snapshots the pressed keys at every tick where a note
// starts, held notes included, the way a listener would name the chord
// under each attack. Releases alone never produce a snapshot.
func SoundingChords(track smf.Track) []SoundingChord {
	pressed := make(map[uint8]bool)
	var chords []SoundingChord
	var abs uint32
	sawStart := false

	flush := func() {
		if !sawStart {
			return
		}
		chords = append(chords, SoundingChord{Tick: abs, Keys: util.SortedKeys(pressed)})
		sawStart = false
	}

	for _, ev := range track {
		if ev.Delta > 0 {
			flush()
			abs += ev.Delta
		}
		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteOn(&ch, &key, &vel):
			pressed[key] = true
			sawStart = true
		case ev.Message.GetNoteOff(&ch, &key, &vel):
			delete(pressed, key)
		}
	}
	flush()
	return chords
}
