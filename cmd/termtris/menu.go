package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start termtris with a mode picker menu",
	Long: `Start termtris in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, then pick a
start level (skipped with --difficulty). Leaving a game with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  termtris menu
  termtris menu --fps 30
  termtris menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	player := playerName()
	level := 0

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return nil
		}

		// A difficulty preset picks the level itself
		if flagDifficulty == "" {
			picked, err := tui.RunLevelSelector(cfg, level, tetris.Difficulty())
			if err != nil {
				return err
			}
			// User pressed back or quit
			if picked < 0 {
				continue
			}
			level = picked
		} else {
			level = -1
		}

		game, err := registry.Create(gameID)
		if err != nil {
			logger.Error("could not create game", "mode", gameID, "error", err)
			continue
		}
		if ls, ok := game.(registry.LevelSelectable); ok {
			ls.SetStartLevel(level)
		}

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, cfg, player)
		if err != nil {
			logger.Error("game failed", "mode", gameID, "error", err)
			continue
		}
		if !backToMenu {
			return nil
		}
	}
}
