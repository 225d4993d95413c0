package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ozembnic-arcade/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing right away. Every pipe you pass earns one point.

Controls:
  Space/Click  - Start, then flap
  R            - Back to the start screen
  Esc/B        - Menu
  Q/Ctrl+C     - Quit

Examples:
  ozarcade play
  ozarcade play --seed 42
  ozarcade play --config ./my-arcade.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runTUI(tui.ScreenGame)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu",
	Long:  `Pick between playing, redeeming rewards and the high score table.`,
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runTUI(tui.ScreenMenu)
	},
}

func runTUI(screen tui.Screen) {
	a := mustOpenApp(true)
	runErr := tui.Run(a.env(), screen)

	// Close store before potential exit
	a.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
