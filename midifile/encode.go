// Package midifile serializes songs into format 1 standard MIDI files and
// parses them back for inspection. The writer is hand-rolled so the byte
// layout stays exact; reading goes through the gomidi SMF parser.
package midifile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
	"sort"

	"github.com/jackdreilly/jammer/constants"
	"github.com/jackdreilly/jammer/model"
)

const formatMultiTrack = 1

const (
	statusNoteOff       = 0x80
	statusNoteOn        = 0x90
	statusProgramChange = 0xC0
	statusMeta          = 0xFF

	metaTrackName  = 0x03
	metaEndOfTrack = 0x2F
	metaTempo      = 0x51
	metaTimeSig    = 0x58
)

// Encode serializes a song. Either the complete buffer comes back or an
// error does; no partial output ever escapes.
func Encode(song model.Song) ([]byte, error) {
	if err := checkSong(song); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("MThd")
	binary.Write(&buf, binary.BigEndian, uint32(6))
	binary.Write(&buf, binary.BigEndian, uint16(formatMultiTrack))
	binary.Write(&buf, binary.BigEndian, uint16(len(song.Tracks)))
	binary.Write(&buf, binary.BigEndian, song.Resolution)
	for i, track := range song.Tracks {
		chunk, err := encodeTrack(song, track, i == 0)
		if err != nil {
			return nil, fmt.Errorf("track %d (%v): %w", i, track.Role, err)
		}
		buf.WriteString("MTrk")
		binary.Write(&buf, binary.BigEndian, uint32(len(chunk)))
		buf.Write(chunk)
	}
	return buf.Bytes(), nil
}

func checkSong(song model.Song) error {
	if len(song.Tracks) == 0 {
		return fmt.Errorf("%w: song has no tracks", model.ErrEncodingInvariant)
	}
	if song.Resolution == 0 || song.Resolution > 0x7FFF {
		return fmt.Errorf("%w: resolution %d", model.ErrEncodingInvariant, song.Resolution)
	}
	if song.Tempo < constants.MinTempoBPM || song.Tempo > constants.MaxTempoBPM {
		return fmt.Errorf("%w: tempo %d", model.ErrEncodingInvariant, song.Tempo)
	}
	if song.TimeSig.Numerator == 0 || song.TimeSig.Denominator == 0 ||
		bits.OnesCount8(song.TimeSig.Denominator) != 1 {
		return fmt.Errorf("%w: time signature %d/%d",
			model.ErrEncodingInvariant, song.TimeSig.Numerator, song.TimeSig.Denominator)
	}
	return nil
}

// event is one wire event at an absolute tick, ready for delta encoding.
type event struct {
	tick uint32
	off  bool
	key  uint8
	data []byte
}

func encodeTrack(song model.Song, track model.Track, first bool) ([]byte, error) {
	if track.Channel > 15 {
		return nil, fmt.Errorf("%w: channel %d", model.ErrEncodingInvariant, track.Channel)
	}
	if track.Program > 127 {
		return nil, fmt.Errorf("%w: program %d", model.ErrEncodingInvariant, track.Program)
	}
	channel := track.Channel
	events := make([]event, 0, 2*len(track.Notes))
	for _, note := range track.Notes {
		if note.Duration == 0 {
			return nil, fmt.Errorf("%w: zero-length note at tick %d", model.ErrEncodingInvariant, note.Start)
		}
		if note.Key > 127 || note.Velocity == 0 || note.Velocity > 127 {
			return nil, fmt.Errorf("%w: note %d velocity %d", model.ErrEncodingInvariant, note.Key, note.Velocity)
		}
		end := note.Start + note.Duration
		if end > song.TotalTicks {
			return nil, fmt.Errorf("%w: note runs past end of track (%d > %d)",
				model.ErrEncodingInvariant, end, song.TotalTicks)
		}
		events = append(events,
			event{tick: note.Start, key: note.Key,
				data: []byte{statusNoteOn | channel, note.Key, note.Velocity}},
			event{tick: end, off: true, key: note.Key,
				data: []byte{statusNoteOff | channel, note.Key, 0}})
	}

	// Smaller tick first; at equal ticks note-offs precede note-ons so a
	// repeated pitch never overlaps itself.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		if events[i].off != events[j].off {
			return events[i].off
		}
		return events[i].key < events[j].key
	})

	var buf bytes.Buffer
	writeMeta := func(delta uint32, kind byte, payload []byte) {
		writeVLQ(&buf, delta)
		buf.WriteByte(statusMeta)
		buf.WriteByte(kind)
		writeVLQ(&buf, uint32(len(payload)))
		buf.Write(payload)
	}

	writeMeta(0, metaTrackName, []byte(track.Name))
	if first {
		usec := constants.MicrosPerMinute / song.Tempo
		writeMeta(0, metaTempo, []byte{byte(usec >> 16), byte(usec >> 8), byte(usec)})
		writeMeta(0, metaTimeSig, []byte{
			song.TimeSig.Numerator,
			uint8(bits.TrailingZeros8(song.TimeSig.Denominator)),
			24, 8,
		})
	}
	if track.Program >= 0 {
		writeVLQ(&buf, 0)
		buf.Write([]byte{statusProgramChange | channel, uint8(track.Program)})
	}

	var cursor uint32
	sounding := make(map[uint8]int)
	for _, e := range events {
		if e.tick < cursor {
			return nil, fmt.Errorf("%w: event at tick %d behind cursor %d",
				model.ErrEncodingInvariant, e.tick, cursor)
		}
		if e.off {
			if sounding[e.key] == 0 {
				return nil, fmt.Errorf("%w: unmatched note-off for key %d at tick %d",
					model.ErrEncodingInvariant, e.key, e.tick)
			}
			sounding[e.key]--
		} else {
			sounding[e.key]++
		}
		writeVLQ(&buf, e.tick-cursor)
		buf.Write(e.data)
		cursor = e.tick
	}
	for key, n := range sounding {
		if n != 0 {
			return nil, fmt.Errorf("%w: note-on without note-off for key %d", model.ErrEncodingInvariant, key)
		}
	}
	writeMeta(song.TotalTicks-cursor, metaEndOfTrack, nil)
	return buf.Bytes(), nil
}

// writeVLQ encodes v seven bits per byte, most significant group first,
// continuation bit set on every byte but the last.
func writeVLQ(buf *bytes.Buffer, v uint32) {
	var groups [5]byte
	n := 0
	for {
		groups[n] = byte(v & 0x7F)
		n++
		v >>= 7
		if v == 0 {
			break
		}
	}
	for i := n - 1; i > 0; i-- {
		buf.WriteByte(groups[i] | 0x80)
	}
	buf.WriteByte(groups[0])
}
