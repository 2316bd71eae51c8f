package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/baselabs/baseutils/networks"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the supported networks",
	Long: `Lists built-in networks plus any custom networks found under
~/.baseutils/networks/*.json.`,
	Run: func(cmd *cobra.Command, args []string) {
		all := networks.GetSupportedNetworks()
		sort.Slice(all, func(i, j int) bool {
			return all[i].GetChainID() < all[j].GetChainID()
		})
		for _, n := range all {
			fmt.Printf("%-16s chain id %-8d bridge %s\n",
				n.GetName(), n.GetChainID(), n.GetBridgeContractAddress().Hex())
		}
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)
}
