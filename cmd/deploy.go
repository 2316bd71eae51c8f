package cmd

import (
	"fmt"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/baselabs/baseutils/common"
	"github.com/baselabs/baseutils/config"
	"github.com/baselabs/baseutils/deployer"
	"github.com/baselabs/baseutils/logger"
	"github.com/baselabs/baseutils/networks"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the BaseUtils contract and persist a deployment record",
	Long: `Deploys the compiled BaseUtils contract to the selected network:

	1. verifies the nodes actually serve the selected chain,
	2. checks the deployer wallet covers the estimated creation cost,
	3. submits the creation tx and polls until it is mined,
	4. smoke-tests the deployed read entry points,
	5. writes a json record with address, tx hash, cost and timestamp.

Every failure is terminal; the command never retries.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.L()

		if config.ArtifactFile == "" {
			fmt.Println(common.AlertColor("no artifact file given, use --artifact"))
			os.Exit(1)
		}
		artifact, err := deployer.LoadArtifact(config.ArtifactFile)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		account, err := unlockAccount()
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		network := networks.CurrentNetwork()
		d, err := deployer.NewDeployer(network, account, log)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		deployment, err := d.Deploy(artifact, config.GasPrice+config.ExtraGasPrice, config.GasLimit)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		if err := d.SmokeTest(ethcommon.HexToAddress(deployment.ContractAddress)); err != nil {
			fmt.Println(common.AlertColor(fmt.Sprintf("smoke test failed: %s", err)))
			os.Exit(1)
		}

		if err := deployer.WriteRecord(config.RecordFile, deployment); err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		fmt.Println(common.InfoColor(fmt.Sprintf(
			"Deployed %s on %s, record written to %s",
			deployment.ContractAddress, deployment.Network, config.RecordFile,
		)))
	},
}

func init() {
	deployCmd.Flags().StringVar(&config.ArtifactFile, "artifact", "", "compiled contract artifact json (abi + bytecode)")
	deployCmd.Flags().StringVar(&config.RecordFile, "record", "deployment.json", "path of the deployment record to write")
	deployCmd.Flags().StringVar(&config.KeystoreFile, "keystore", "", "keystore file of the deployer wallet")
	deployCmd.Flags().StringVar(&config.KeystorePassword, "password", "", "keystore password (prefer "+config.KeystorePasswordVar+")")
	deployCmd.Flags().Float64VarP(&config.GasPrice, "gasprice", "p", 0, "gas price in gwei, 0 means ask the node")
	deployCmd.Flags().Float64VarP(&config.ExtraGasPrice, "extraprice", "P", 0, "extra gas price in gwei added on top")
	deployCmd.Flags().Uint64VarP(&config.GasLimit, "gas", "g", 0, "gas limit, 0 means estimate")
	rootCmd.AddCommand(deployCmd)
}
