// termtris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	termtris list              - List available modes
//	termtris play [mode]       - Play a mode (default: tetris)
//	termtris menu              - Start menu to pick a mode interactively
//	termtris serve             - Start SSH server for remote play
//	termtris scores <mode>     - Show high scores for a mode
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.termtris/scores.db)
//	--config <path>       - Use a custom tetris.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/games/tetris/piece"
	"github.com/vovakirdan/termtris/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "termtris",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termtris",
	Short: "termtris - falling blocks in your terminal",
	Long: `termtris is a terminal falling-block puzzle game.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the game configuration

Examples:
  termtris play
  termtris play tetris_sprint --level 5
  termtris menu --difficulty hard
  termtris serve --ssh :2222
  termtris scores tetris
  termtris config --difficulty easy`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setup checks the piece catalog and hands config flags to the game package.
func setup(_ *cobra.Command, _ []string) error {
	if err := piece.Validate(); err != nil {
		return err
	}

	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return err
	}
	if flagConfig != "" {
		if _, err := config.LoadTetris(flagConfig); err != nil {
			return err
		}
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(preset)
	return nil
}

// playerName is the local account name recorded with saved scores.
func playerName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
