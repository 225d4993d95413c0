package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ozembnic-arcade/internal/ledger"
	"github.com/vovakirdan/ozembnic-arcade/internal/platform/tui"
)

var (
	flagInteractive bool
	flagYes         bool
	flagHistory     int
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List rewards",
	Long: `List every reward with its cost and whether the balance covers it.

Examples:
  ozarcade rewards
  ozarcade rewards -i   # pick and redeem in the terminal UI`,
	Args: cobra.NoArgs,
	Run:  runRewards,
}

var redeemCmd = &cobra.Command{
	Use:   "redeem <reward>",
	Short: "Redeem a reward",
	Long: `Spend points on a reward, by ID or name.

Examples:
  ozarcade redeem mug
  ozarcade redeem "Ozembnic T-Shirt" --yes`,
	Args: cobra.ExactArgs(1),
	Run:  runRedeem,
}

func init() {
	rewardsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the rewards screen")
	rewardsCmd.Flags().IntVar(&flagHistory, "history", 5, "Number of recent redemptions to show")
	redeemCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runRewards(_ *cobra.Command, _ []string) {
	if flagInteractive {
		runTUI(tui.ScreenRewards)
		return
	}

	a := mustOpenApp(false)
	defer a.close()

	r := a.redeemer(os.Getenv("USER"))
	fmt.Printf("Balance: %s points\n\n", humanize.Comma(int64(r.Balance())))
	fmt.Printf("  %-10s  %-24s  %8s  %s\n", "ID", "Reward", "Cost", "")
	fmt.Printf("  %-10s  %-24s  %8s  %s\n", "--", "------", "----", "")
	for _, o := range r.Offers() {
		fmt.Printf("  %-10s  %-24s  %8s  %s\n", o.ID, o.Name, humanize.Comma(int64(o.Cost)), o.Label)
	}

	if flagHistory <= 0 {
		return
	}
	recent, err := a.store.Redemptions(flagHistory)
	if err != nil {
		a.logger.Warn("cannot read redemption history", "error", err)
		return
	}
	if len(recent) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent redemptions:")
	for _, rd := range recent {
		player := rd.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-24s  %-12s  %8s  %s\n", rd.RewardName, player,
			humanize.Comma(int64(rd.Cost)), humanize.Time(rd.CreatedAt))
	}
}

func runRedeem(_ *cobra.Command, args []string) {
	a := mustOpenApp(false)
	defer a.close()

	r := a.redeemer(os.Getenv("USER"))
	reward, err := r.Catalog().Find(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'ozarcade rewards' to see the catalog.")
		a.close()
		os.Exit(1)
	}

	offer := r.Quote(reward)
	if offer.Affordable && !flagYes && !confirm(offer.Prompt) {
		fmt.Println("Cancelled.")
		return
	}

	receipt, err := r.Redeem(reward)
	if err != nil {
		var short *ledger.ShortfallError
		if errors.As(err, &short) {
			fmt.Println(short.Error())
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.close()
		os.Exit(1)
	}

	fmt.Println(receipt.Message())
	fmt.Printf("Remaining balance: %s points\n", humanize.Comma(int64(receipt.BalanceAfter)))
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
