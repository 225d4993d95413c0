// ozarcade is the Ozembnic rewards arcade: a Flappy Bird game in the
// terminal that earns points, and a reward counter to spend them.
//
// Usage:
//
//	ozarcade play            - Play the game
//	ozarcade menu            - Start menu (play, rewards, high scores)
//	ozarcade points          - Show the points balance
//	ozarcade rewards         - List rewards and what they cost
//	ozarcade redeem <reward> - Spend points on a reward
//	ozarcade scores          - Show the best runs
//	ozarcade serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible pipes
//	--db <path>          - Set database path (default: ~/.ozembnic/points.db)
//	--config <path>      - Use a custom arcade.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ozarcade",
	Short: "Ozembnic Arcade - earn reward points playing Flappy Bird",
	Long: `Ozembnic Arcade is a terminal Flappy Bird that pays out: every pipe
you pass adds a point to your balance, and points can be redeemed for
rewards.

Available commands:
  play     - Play the game directly
  menu     - Interactive menu
  points   - Show the points balance
  rewards  - List rewards
  redeem   - Redeem a reward
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  ozarcade play
  ozarcade rewards
  ozarcade redeem mug
  ozarcade serve --ssh :2222 --feed :8080`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ozembnic/points.db", "Path to points database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arcade.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(rewardsCmd)
	rootCmd.AddCommand(redeemCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
