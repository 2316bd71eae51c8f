package cmd

import (
	"fmt"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/baselabs/baseutils/common"
	"github.com/baselabs/baseutils/contract"
	"github.com/baselabs/baseutils/networks"
	"github.com/baselabs/baseutils/util"
)

var balanceContract bool

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the ETH balance of an address",
	Long: `Shows the balance of the given address on the selected network.
With --contract the address is treated as a deployed BaseUtils
instance and the balance is read through its getBalance entry point
instead of eth_getBalance.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !util.IsAddress(args[0]) {
			fmt.Println(common.AlertColor(fmt.Sprintf("%s is not a valid address", args[0])))
			os.Exit(1)
		}
		network := networks.CurrentNetwork()
		r, err := util.EthReader(network)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		if balanceContract {
			caller, err := contract.NewCaller(ethcommon.HexToAddress(args[0]), r)
			if err != nil {
				fmt.Println(common.AlertColor(err.Error()))
				os.Exit(1)
			}
			balance, err := caller.GetBalance()
			if err != nil {
				fmt.Println(common.AlertColor(err.Error()))
				os.Exit(1)
			}
			fmt.Printf("%s wei (%s %s)\n",
				balance.String(),
				common.BigToFloatString(balance, network.GetNativeTokenDecimal()),
				network.GetNativeTokenSymbol(),
			)
			return
		}

		balance, err := r.GetBalance(args[0])
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}
		fmt.Printf("%s wei (%s %s)\n",
			balance.String(),
			common.BigToFloatString(balance, network.GetNativeTokenDecimal()),
			network.GetNativeTokenSymbol(),
		)
	},
}

func init() {
	balanceCmd.Flags().BoolVar(&balanceContract, "contract", false, "read through a deployed BaseUtils getBalance instead of eth_getBalance")
	rootCmd.AddCommand(balanceCmd)
}
