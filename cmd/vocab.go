package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackdreilly/jammer/jam"
	"github.com/jackdreilly/jammer/sequence"
	"github.com/jackdreilly/jammer/theory"
)

func init() {
	rootCmd.AddCommand(vocabCmd)
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Lists the accepted keys, modes, qualities, patterns and tracks",
	Long:  `Lists the accepted keys, modes, qualities, patterns and tracks`,
	Run: func(cmd *cobra.Command, args []string) {
		vocab()
	},
}

func vocab() {
	fmt.Printf("keys: %v\n", strings.Join(theory.NoteNames(), " "))
	fmt.Printf("modes: %v\n", strings.Join(theory.Modes(), " "))
	fmt.Printf("qualities: %v\n", strings.Join(theory.Qualities(), " "))
	fmt.Printf("patterns: %v\n", strings.Join(sequence.PatternNames(), " "))
	fmt.Printf("tracks: %v\n", strings.Join(jam.RoleNames(), " "))
}
