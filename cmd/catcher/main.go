// catcher is a terminal "catch the falling candy" arcade game.
//
// Usage:
//
//	catcher play [player-id]   - Play in this terminal
//	catcher serve              - Start SSH server for remote play
//	catcher scores             - Show the high-score table
//	catcher register <id>      - Save a player ID with a zero high score
//	catcher rules              - Show item categories and spawn rates
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Load a custom catch.yaml
//	--db <path>          - Use a SQLite scores database at path
//	--store <driver>     - sqlite, postgres or memory
//	--dsn <dsn>          - Store connection string
//	--log-level <level>  - debug, info, warn, error
//	--mute               - Disable audio
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagStore    string
	flagDSN      string
	flagLogLevel string
	flagMute     bool
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catcher",
	Short: "Candy Catcher - catch falling sweets in your terminal",
	Long: `Candy Catcher is a terminal arcade game. Steer the catcher with the
arrow keys or the mouse, collect falling sweets and dodge the lightning.
Your best score is saved under your player ID.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View high scores
  register  - Save a player ID
  rules     - Show item categories

Examples:
  catcher play alice
  catcher play --mute --fps 30
  catcher serve --ssh :2222
  catcher scores --tui
  catcher scores --store postgres --dsn postgres://localhost/catcher`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom catch.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to SQLite scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Store driver: sqlite, postgres, memory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "Store DSN (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable audio")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(rulesCmd)
}
