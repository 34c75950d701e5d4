package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catcher/internal/audio"
	"github.com/vovakirdan/catcher/internal/catch"
	"github.com/vovakirdan/catcher/internal/core"
	"github.com/vovakirdan/catcher/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [player-id]",
	Short: "Play in this terminal",
	Long: `Start the game menu. Enter a player ID and press Enter to play.

Controls:
  Left/Right, A/D, H/L  - Move the catcher
  Mouse                 - Move the catcher to the pointer
  P/Esc                 - Pause
  R/Enter               - Start again (after game over)
  M                     - Main menu (after game over)
  Q/Ctrl+C              - Quit

Menu:
  Enter   - Start game
  Ctrl+S  - Save player ID
  Tab     - High scores

Logs are written to the file named in the config (default ~/.catcher/catcher.log).

Examples:
  catcher play
  catcher play alice
  catcher play --mute --fps 30
  catcher play --config ./my-catch.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := loadEnv(ctx, logToFile, false)
	if err != nil {
		return err
	}
	defer e.Close()

	playerID := ""
	if len(args) > 0 {
		playerID = args[0]
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var cues catch.CueSink = catch.NopCues{}
	sound := false
	if e.cfg.Audio.Enabled {
		player := audio.New(e.cfg.Audio, e.logger)
		if audioErr := player.Initialize(); audioErr == nil {
			defer player.Close()
			cues = player
			sound = true
		}
	}

	e.logger.Info("starting", "fps", cfg.TickRate, "store", e.cfg.Store.Driver, "audio", sound)
	return tui.Run(ctx, e.services(cues), cfg, playerID)
}
