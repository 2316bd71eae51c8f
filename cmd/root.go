package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baselabs/baseutils/common"
	"github.com/baselabs/baseutils/config"
	"github.com/baselabs/baseutils/networks"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "baseutils",
	Short: "Deploy and operate the BaseUtils contract on Base",
	Long: `Baseutils is a command line tool around the BaseUtils utility
contract on the Base network. It can:

	1. Deploy the contract: it verifies the target chain, checks
	that the deployer wallet covers the estimated creation cost,
	submits the creation tx, waits until it is mined and persists
	a deployment record as json.

	2. Disburse a batch of ETH transfers through the contract with
	a strict local preflight first: equal-length recipient/amount
	sequences, no zero address recipients and an aggregate amount
	that the attached value must cover. The batch either fully
	commits on chain or reverts as a whole.

	3. Query a deployed instance: network info (chain id, bridge
	address, block height and timestamp), contract balance and the
	pure gas cost computation.

By default baseutils supports base, base-sepolia and a local devnet.
Custom networks can be added as json files under ~/.baseutils/networks.
Node URLs can be overridden per network with env vars such as
BASE_MAINNET_NODE, BASE_SEPOLIA_NODE and DEVNET_NODE.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := networks.SetNetwork(config.Network); err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(
		&config.Network, "network", "k", "base",
		fmt.Sprintf("target network. Supported: %v", networks.GetSupportedNetworkNames()),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
