package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jackdreilly/jammer/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "jammer",
	Short: "Generates jam tracks as standard MIDI files",
	Long:  `Generates jam tracks as standard MIDI files`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file overriding the built-in generation settings")
}

func loadConfig() config.Config {
	if configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic("Could not load config: " + err.Error())
	}
	return cfg
}
