package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackdreilly/jammer/midifile"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects a MIDI file",
	Long:  `Inspects a MIDI file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	s, err := midifile.ParseFile(path)
	if err != nil {
		panic("Could not parse file: " + err.Error())
	}
	fmt.Printf("time: %v\n", s.TimeFormat)
	fmt.Printf("tracks: %v\n", len(s.Tracks))
	for i, track := range s.Tracks {
		fmt.Printf("track %v:\n", i)
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			var ch, key, vel, prog, num, den, cpc, dsq uint8
			var bpm float64
			var text string
			switch {
			case ev.Message.GetMetaTrackName(&text):
				fmt.Printf("  %6d name %v\n", abs, text)
			case ev.Message.GetMetaTempo(&bpm):
				fmt.Printf("  %6d tempo %.1f\n", abs, bpm)
			case ev.Message.GetMetaTimeSig(&num, &den, &cpc, &dsq):
				fmt.Printf("  %6d meter %v/%v\n", abs, num, den)
			case ev.Message.GetProgramChange(&ch, &prog):
				fmt.Printf("  %6d program ch=%v prog=%v\n", abs, ch, prog)
			case ev.Message.GetNoteOn(&ch, &key, &vel):
				fmt.Printf("  %6d on  ch=%v key=%v vel=%v\n", abs, ch, key, vel)
			case ev.Message.GetNoteOff(&ch, &key, &vel):
				fmt.Printf("  %6d off ch=%v key=%v\n", abs, ch, key)
			}
		}
		fmt.Printf("  %6d end\n", abs)
		for _, chord := range midifile.SoundingChords(track) {
			fmt.Printf("  chord @%v: %v\n", chord.Tick, chord.Keys)
		}
	}
}
