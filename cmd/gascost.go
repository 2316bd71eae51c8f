package cmd

import (
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/baselabs/baseutils/common"
	"github.com/baselabs/baseutils/disburse"
)

var gascostCmd = &cobra.Command{
	Use:   "gascost <gas_used> <gas_price_wei>",
	Short: "Compute gas cost as gas_used * gas_price_wei",
	Long: `Pure computation, no network access. The multiplication is
overflow-checked over 256 bit, matching the contract's trapping
arithmetic.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		unitsUsed, err := uint256.FromDecimal(args[0])
		if err != nil {
			fmt.Println(common.AlertColor(fmt.Sprintf("%q is not a valid gas amount: %s", args[0], err)))
			os.Exit(1)
		}
		unitPrice, err := uint256.FromDecimal(args[1])
		if err != nil {
			fmt.Println(common.AlertColor(fmt.Sprintf("%q is not a valid wei price: %s", args[1], err)))
			os.Exit(1)
		}
		cost, err := disburse.CalculateGasCost(unitsUsed, unitPrice)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}
		fmt.Printf("%s wei (%s ETH)\n", cost.Dec(), common.BigToFloatString(cost.ToBig(), 18))
	},
}

func init() {
	rootCmd.AddCommand(gascostCmd)
}
