package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackdreilly/jammer/jam"
	"github.com/jackdreilly/jammer/model"
)

var (
	renderOut         string
	renderKey         string
	renderMode        string
	renderTempo       int
	renderTimeSig     string
	renderProgression string
	renderDegrees     string
	renderBeats       float64
	renderTracks      string
	renderPattern     string
	renderSeed        int64
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "jam.mid", "output path")
	renderCmd.Flags().StringVar(&renderKey, "key", "", "key, e.g. C or F#")
	renderCmd.Flags().StringVar(&renderMode, "mode", "", "scale mode, e.g. major or dorian")
	renderCmd.Flags().IntVar(&renderTempo, "tempo", jam.DefaultTempo, "beats per minute")
	renderCmd.Flags().StringVar(&renderTimeSig, "time-sig", "", "time signature, e.g. 4/4")
	renderCmd.Flags().StringVar(&renderProgression, "progression", "", "chord steps, e.g. Cmaj7:4,Am7:4")
	renderCmd.Flags().StringVar(&renderDegrees, "degrees", "", "scale degrees, e.g. 2,5,1")
	renderCmd.Flags().Float64Var(&renderBeats, "beats-per-chord", 0, "beats per degree chord")
	renderCmd.Flags().StringVar(&renderTracks, "tracks", "", "track roles, e.g. comping,bass,percussion")
	renderCmd.Flags().StringVar(&renderPattern, "pattern", "", "percussion pattern name")
	renderCmd.Flags().Int64Var(&renderSeed, "seed", 0, "humanize timing and velocity with this seed")
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders a jam track to a file",
	Long:  `Renders a jam track to a file`,
	Run: func(cmd *cobra.Command, args []string) {
		render(cmd)
	},
}

func render(cmd *cobra.Command) {
	req := model.JamRequest{
		Key:           renderKey,
		Mode:          renderMode,
		Tempo:         &renderTempo,
		TimeSignature: renderTimeSig,
		Pattern:       renderPattern,
		BeatsPerChord: renderBeats,
	}
	if renderProgression != "" {
		steps, err := parseProgressionParam(renderProgression)
		if err != nil {
			panic("Could not parse progression: " + err.Error())
		}
		req.Progression = steps
	}
	if renderDegrees != "" {
		degrees, err := parseDegreesParam(renderDegrees)
		if err != nil {
			panic("Could not parse degrees: " + err.Error())
		}
		req.Degrees = degrees
	}
	if renderTracks != "" {
		req.Tracks = strings.Split(renderTracks, ",")
	}
	// The zero seed is a real seed, so presence rides on the flag.
	if cmd.Flags().Changed("seed") {
		seed := renderSeed
		req.Seed = &seed
	}

	data, err := jam.Generate(req, loadConfig())
	if err != nil {
		panic("Could not render: " + err.Error())
	}
	if err := os.WriteFile(renderOut, data, 0644); err != nil {
		panic("Could not write file: " + err.Error())
	}
	fmt.Printf("wrote %v bytes to %v\n", len(data), renderOut)
}
