package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: tetris).

Without --level or --difficulty a level picker is shown first.

Controls:
  Left/Right, A/D  - Move
  Up, W, X         - Rotate clockwise
  Z                - Rotate counter-clockwise
  Down, S          - Soft drop
  Space            - Hard drop
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Leave the game
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at level 0
  normal - Start at level 5
  hard   - Start at level 10
  fixed  - No level progression

Examples:
  termtris play
  termtris play tetris_sprint
  termtris play --level 9
  termtris play --difficulty fixed --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", -1, "Start level (skips the level picker)")
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	return cfg
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := tetris.IDMarathon
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'termtris list' to see available modes)", gameID)
	}

	cfg := terminalConfig()

	// -1 keeps the level from the config and preset
	level := flagLevel
	if !cmd.Flags().Changed("level") && flagDifficulty == "" {
		picked, err := tui.RunLevelSelector(cfg, 0, tetris.Difficulty())
		if err != nil {
			return err
		}
		// User pressed back or quit
		if picked < 0 {
			return nil
		}
		level = picked
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if ls, ok := game.(registry.LevelSelectable); ok {
		ls.SetStartLevel(level)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	_, err = tui.Run(game, store, cfg, playerName())
	return err
}
