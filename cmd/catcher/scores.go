package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catcher/internal/platform/tui"
	"github.com/vovakirdan/catcher/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagDelete      string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best score of every player, highest first.

Examples:
  catcher scores
  catcher scores --limit 25
  catcher scores --tui
  catcher scores --delete alice`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultTopLimit, "Number of players to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().StringVar(&flagDelete, "delete", "", "Remove a player's record")
}

func runScores(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sink := logToStderr
	if flagScoresTUI {
		sink = logToFile
	}
	e, err := loadEnv(ctx, sink, true)
	if err != nil {
		return err
	}
	defer e.Close()

	if flagDelete != "" {
		if err := e.store.Delete(ctx, flagDelete); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", flagDelete)
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunScoreboard(ctx, e.services(nil), width, height)
	}

	records, err := e.store.Top(ctx, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Candy Catcher")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'catcher play <player-id>' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "Rank", "Player", "Score", "Updated")
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "----", "------", "-----", "-------")

	for i, r := range records {
		dateStr := ""
		if !r.UpdatedAt.IsZero() {
			dateStr = r.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-4d  %-20s  %-10d  %s\n", i+1, r.PlayerID, r.HighScore, dateStr)
	}
	return nil
}
