package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/games/tetris"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the game configuration",
	Long: `Print the configuration new games will use, after --config and
--difficulty are applied. With --defaults, print the commented default
file instead, ready to save as ~/.termtris/configs/tetris.yaml.

Examples:
  termtris config
  termtris config --difficulty hard
  termtris config --defaults > ~/.termtris/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the commented default file")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	data := config.DefaultYAML()
	if !flagConfigDefaults {
		var err error
		if data, err = tetris.EffectiveConfig().Marshal(); err != nil {
			return err
		}
	}
	_, err := cmd.OutOrStdout().Write(data)
	return err
}
