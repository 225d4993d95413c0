package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show the points balance",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		a := mustOpenApp(false)
		defer a.close()

		fmt.Printf("%s points\n", humanize.Comma(int64(a.ledger.Balance())))
	},
}
