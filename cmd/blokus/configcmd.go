package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration as YAML after layering the config file over
the defaults. Redirect the output to create a config file.

Examples:
  blokus config
  blokus config --defaults > ~/.blokus/configs/blokus.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return
	}
	data, err := config.Marshal(loadConfig())
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(string(data))
}
