package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/registry"
	"github.com/vovakirdan/termtris/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Without a mode, print a summary of every mode. With a mode, list its
best runs: score modes by score, timed modes by completion time.

Examples:
  termtris scores
  termtris scores tetris
  termtris scores tetris_sprint --limit 20
  termtris scores tetris --all
  termtris scores tetris --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every saved run of the mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all saved runs of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if flagScoresClear {
			return fmt.Errorf("--clear needs a mode")
		}
		return printSummary(out, store)
	}

	info, ok := registry.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown mode %q (run 'termtris list' to see available modes)", args[0])
	}

	if flagScoresClear {
		if err := store.ClearScores(info.ID); err != nil {
			return err
		}
		logger.Info("scores cleared", "mode", info.ID)
		fmt.Fprintf(out, "Cleared all runs of %s.\n", info.Title)
		return nil
	}

	return printBoard(out, store, info)
}

// printSummary lists each registered mode with its totals.
func printSummary(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  %-22s  %6s  %8s  %9s  %s\n", "Mode", "Games", "Best", "Record", "Last played")
	for _, info := range registry.List() {
		st, played := all[info.ID]
		if !played {
			fmt.Fprintf(out, "  %-22s  %6d  %8s  %9s  %s\n", info.Title, 0, "-", "-", "-")
			continue
		}
		record := "-"
		if st.BestTime > 0 {
			record = tetris.FormatDuration(st.BestTime)
		}
		fmt.Fprintf(out, "  %-22s  %6d  %8d  %9s  %s\n",
			info.Title, st.GamesCount, st.HighScore, record, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// printBoard lists the mode's best runs followed by its totals.
func printBoard(out io.Writer, store *storage.Store, info registry.GameInfo) error {
	var (
		runs []storage.ScoreEntry
		err  error
	)
	switch {
	case flagScoresAll:
		runs, err = store.AllScores(info.ID)
	case info.Timed:
		runs, err = store.FastestTimes(info.ID, flagScoresLimit)
	default:
		runs, err = store.TopScores(info.ID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	heading := "High Scores"
	if info.Timed && !flagScoresAll {
		heading = "Fastest Runs"
	}
	fmt.Fprintf(out, "%s - %s\n\n", heading, info.Title)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintf(out, "\nPlay 'termtris play %s' to set the first one!\n", info.ID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-9s  %-8s  %-5s  %-5s  %-12s  %s\n", "Rank", "Time", "Score", "Lines", "Level", "Player", "Date")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		played := "-"
		if r.Completed || !info.Timed {
			played = tetris.FormatDuration(r.Duration)
		}
		fmt.Fprintf(out, "  %-4d  %-9s  %-8d  %-5d  %-5d  %-12s  %s\n",
			i+1, played, r.Score, r.Lines, r.Level, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(info.ID)
	if err != nil {
		return fmt.Errorf("could not load stats: %w", err)
	}
	fmt.Fprintf(out, "\nBest: %d  Games: %d  Most lines: %d  Max level: %d",
		stats.HighScore, stats.GamesCount, stats.MostLines, stats.MaxLevel)
	if info.Timed {
		fmt.Fprintf(out, "  Completed: %d", stats.Completed)
		if stats.BestTime > 0 {
			fmt.Fprintf(out, "  Record: %s", tetris.FormatDuration(stats.BestTime))
		}
	}
	fmt.Fprintln(out)
	return nil
}
