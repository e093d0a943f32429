// Package sequence expands voiced regions into timed per-track notes.
// Each track role is an independent deterministic expansion; the running
// beat offset is the only state threaded through a pass, advanced exactly
// once per region, in region order.
package sequence

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/jackdreilly/jammer/config"
	"github.com/jackdreilly/jammer/constants"
	"github.com/jackdreilly/jammer/model"
	"github.com/jackdreilly/jammer/util"
)

// Params carries the song-level settings for one expansion.
type Params struct {
	Tempo   int
	TimeSig model.TimeSignature
	Roles   []model.TrackRole
	Pattern string
	Seed    *int64
}

// ExpandSong turns voiced regions into a fully timed multi-track song.
func ExpandSong(regions []model.Region, voicings []model.VoicedChord, p Params, cfg config.Generation) (model.Song, error) {
	if len(regions) == 0 {
		return model.Song{}, fmt.Errorf("%w: empty progression", model.ErrInvalidSpec)
	}
	if len(regions) != len(voicings) {
		return model.Song{}, fmt.Errorf("%w: %d regions but %d voicings",
			model.ErrEncodingInvariant, len(regions), len(voicings))
	}
	if len(p.Roles) == 0 {
		return model.Song{}, fmt.Errorf("%w: no tracks requested", model.ErrInvalidSpec)
	}
	var totalBeats float64
	for _, region := range regions {
		if region.Beats <= 0 {
			return model.Song{}, fmt.Errorf("%w: region duration %v must be positive",
				model.ErrInvalidSpec, region.Beats)
		}
		totalBeats += region.Beats
	}

	song := model.Song{
		Tempo:      p.Tempo,
		TimeSig:    p.TimeSig,
		Resolution: constants.TicksPerQuarter,
		TotalTicks: beatsToTicks(totalBeats),
	}

	for _, role := range p.Roles {
		track, err := expandTrack(role, regions, voicings, totalBeats, p.Pattern, cfg)
		if err != nil {
			return model.Song{}, err
		}
		song.Tracks = append(song.Tracks, track)
	}

	if p.Seed != nil {
		humanize(&song, rand.New(rand.NewSource(*p.Seed)), cfg)
	}
	return song, nil
}

func expandTrack(role model.TrackRole, regions []model.Region, voicings []model.VoicedChord,
	totalBeats float64, patternName string, cfg config.Generation) (model.Track, error) {
	channel, ok := cfg.Channels[role]
	if !ok {
		return model.Track{}, fmt.Errorf("%w: no channel configured for %v track", model.ErrInvalidSpec, role)
	}
	program, ok := cfg.Programs[role]
	if !ok {
		program = -1
	}
	track := model.Track{
		Role:    role,
		Name:    trackName(role),
		Channel: channel,
		Program: program,
	}

	if role == model.RolePercussion {
		pattern, err := LookupPattern(patternName)
		if err != nil {
			return model.Track{}, err
		}
		track.Notes = percussionNotes(pattern, totalBeats)
		return track, nil
	}

	velocity, ok := cfg.Velocities[role]
	if !ok {
		return model.Track{}, fmt.Errorf("%w: no velocity configured for %v track", model.ErrInvalidSpec, role)
	}
	switch role {
	case model.RoleComping:
		track.Notes = compingNotes(regions, voicings, velocity, cfg)
	case model.RoleBass:
		track.Notes = bassNotes(regions, voicings, velocity, cfg)
	case model.RoleLead:
		track.Notes = leadNotes(regions, voicings, velocity, cfg)
	default:
		return model.Track{}, fmt.Errorf("%w: unknown track role %q", model.ErrInvalidSpec, role)
	}
	return track, nil
}

// compingNotes sustains every voiced pitch across its region, shortened by
// the gap fraction so the next chord never collides on the channel.
func compingNotes(regions []model.Region, voicings []model.VoicedChord, velocity uint8, cfg config.Generation) []model.Note {
	var notes []model.Note
	cursor := 0.0
	for i, region := range regions {
		start := beatsToTicks(cursor)
		span := beatsToTicks(cursor+region.Beats) - start
		if duration := gapped(span, cfg.GapFraction); duration > 0 {
			for _, pitch := range voicings[i].Pitches {
				notes = append(notes, model.Note{Key: pitch, Velocity: velocity, Start: start, Duration: duration})
			}
		}
		cursor += region.Beats
	}
	return notes
}

// bassNotes plays the root doubled one octave below the voicing, once per
// beat.
func bassNotes(regions []model.Region, voicings []model.VoicedChord, velocity uint8, cfg config.Generation) []model.Note {
	var notes []model.Note
	cursor := 0.0
	for i, region := range regions {
		key := voicings[i].Root
		if key >= 12 {
			key -= 12
		}
		for beat := 0.0; beat < region.Beats-1e-9; beat++ {
			hit := util.Min(1, region.Beats-beat)
			start := beatsToTicks(cursor + beat)
			span := beatsToTicks(cursor+beat+hit) - start
			if duration := gapped(span, cfg.GapFraction); duration > 0 {
				notes = append(notes, model.Note{Key: key, Velocity: velocity, Start: start, Duration: duration})
			}
		}
		cursor += region.Beats
	}
	return notes
}

// leadNotes arpeggiate the voicing upward in eighth notes, restarting on
// each region.
func leadNotes(regions []model.Region, voicings []model.VoicedChord, velocity uint8, cfg config.Generation) []model.Note {
	const subdivision = 0.5
	var notes []model.Note
	cursor := 0.0
	for i, region := range regions {
		pitches := voicings[i].Pitches
		step := 0
		for off := 0.0; off < region.Beats-1e-9; off += subdivision {
			length := util.Min(subdivision, region.Beats-off)
			start := beatsToTicks(cursor + off)
			span := beatsToTicks(cursor+off+length) - start
			if duration := gapped(span, cfg.GapFraction); duration > 0 {
				notes = append(notes, model.Note{
					Key:      pitches[step%len(pitches)],
					Velocity: velocity,
					Start:    start,
					Duration: duration,
				})
			}
			step++
		}
		cursor += region.Beats
	}
	return notes
}

// percussionNotes repeats the figure from the top of the song until the
// total length runs out, clipping the final hits.
func percussionNotes(pattern Pattern, totalBeats float64) []model.Note {
	var notes []model.Note
	for base := 0.0; base < totalBeats-1e-9; base += pattern.Beats {
		for _, hit := range pattern.Hits {
			offset := base + hit.Offset
			if offset >= totalBeats-1e-9 {
				break
			}
			length := util.Min(hit.Beats, totalBeats-offset)
			start := beatsToTicks(offset)
			if span := beatsToTicks(offset+length) - start; span > 0 {
				notes = append(notes, model.Note{Key: hit.Key, Velocity: hit.Velocity, Start: start, Duration: span})
			}
		}
	}
	return notes
}

// humanize jitters velocity and start times from the seeded generator.
// Starts stay monotone per track and every note still ends by the song's
// total length, so encoding invariants hold.
func humanize(song *model.Song, rng *rand.Rand, cfg config.Generation) {
	for ti := range song.Tracks {
		notes := song.Tracks[ti].Notes
		var prevStart uint32
		for ni := range notes {
			note := &notes[ni]
			if cfg.VelocityJitter > 0 {
				jitter := rng.Intn(2*cfg.VelocityJitter+1) - cfg.VelocityJitter
				note.Velocity = uint8(util.Clamp(int(note.Velocity)+jitter, 1, 127))
			}
			if cfg.TimingJitterTick > 0 {
				jitter := rng.Intn(2*cfg.TimingJitterTick+1) - cfg.TimingJitterTick
				start := util.Clamp(int(note.Start)+jitter, 0, int(song.TotalTicks)-1)
				note.Start = uint32(util.Max(int(prevStart), start))
			}
			if note.Start+note.Duration > song.TotalTicks {
				note.Duration = song.TotalTicks - note.Start
			}
			prevStart = note.Start
		}
	}
}

// gapped shortens a span by the gap fraction, keeping at least a tick of
// sound. Sub-tick spans produce no note.
func gapped(span uint32, fraction float64) uint32 {
	if span == 0 {
		return 0
	}
	gap := uint32(math.Round(float64(span) * fraction))
	if gap < 1 {
		gap = 1
	}
	if gap >= span {
		return 1
	}
	return span - gap
}

func beatsToTicks(beats float64) uint32 {
	return uint32(math.Round(beats * constants.TicksPerQuarter))
}

func trackName(role model.TrackRole) string {
	s := string(role)
	return strings.ToUpper(s[:1]) + s[1:]
}
