package cmd

import (
	"fmt"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/baselabs/baseutils/common"
	"github.com/baselabs/baseutils/config"
	"github.com/baselabs/baseutils/contract"
	"github.com/baselabs/baseutils/networks"
	"github.com/baselabs/baseutils/util"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show network info: chain id, bridge address, current block",
	Long: `Shows the selected network's identity. Without --contract the data
comes from the network config and the nodes; with --contract it is
read from a deployed BaseUtils instance through getNetworkInfo.`,
	Run: func(cmd *cobra.Command, args []string) {
		network := networks.CurrentNetwork()
		r, err := util.EthReader(network)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		if config.ContractAddress != "" {
			if !util.IsAddress(config.ContractAddress) {
				fmt.Println(common.AlertColor(fmt.Sprintf("%s is not a valid address", config.ContractAddress)))
				os.Exit(1)
			}
			caller, err := contract.NewCaller(ethcommon.HexToAddress(config.ContractAddress), r)
			if err != nil {
				fmt.Println(common.AlertColor(err.Error()))
				os.Exit(1)
			}
			info, err := caller.GetNetworkInfo()
			if err != nil {
				fmt.Println(common.AlertColor(err.Error()))
				os.Exit(1)
			}
			fmt.Printf("Contract:   %s\n", config.ContractAddress)
			fmt.Printf("Chain id:   %s\n", info.ChainID.String())
			fmt.Printf("Bridge:     %s\n", info.BridgeAddress.Hex())
			fmt.Printf("Block:      %s\n", info.BlockNumber.String())
			fmt.Printf("Block time: %s\n", info.BlockTime)
			return
		}

		height, ts, err := r.CurrentBlock()
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Network:    %s\n", network.GetName())
		fmt.Printf("Chain id:   %d\n", network.GetChainID())
		fmt.Printf("Bridge:     %s\n", network.GetBridgeContractAddress().Hex())
		fmt.Printf("Block:      %d\n", height)
		fmt.Printf("Block time: %s\n", ts)
	},
}

func init() {
	infoCmd.Flags().StringVar(&config.ContractAddress, "contract", "", "deployed BaseUtils address to query instead of the network config")
	rootCmd.AddCommand(infoCmd)
}
