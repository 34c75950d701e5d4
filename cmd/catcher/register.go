package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catcher/internal/highscore"
)

var registerCmd = &cobra.Command{
	Use:   "register <player-id>",
	Short: "Save a player ID",
	Long: `Create a high-score record of 0 for a new player ID.
Existing records are left untouched.

Examples:
  catcher register alice`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := loadEnv(ctx, logToStderr, true)
	if err != nil {
		return err
	}
	defer e.Close()

	client := highscore.NewClient(e.store, e.logger)
	id, created, err := client.Register(ctx, args[0])
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("Player ID %s saved!\n", id)
	} else {
		fmt.Printf("Player ID %s is already saved.\n", id)
	}
	return nil
}
