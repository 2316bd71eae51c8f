package cmd

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/briandowns/spinner"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/baselabs/baseutils/audit"
	"github.com/baselabs/baseutils/common"
	"github.com/baselabs/baseutils/config"
	"github.com/baselabs/baseutils/contract"
	"github.com/baselabs/baseutils/disburse"
	"github.com/baselabs/baseutils/logger"
	"github.com/baselabs/baseutils/networks"
	"github.com/baselabs/baseutils/util"
)

var batchDryRun bool

// preflight replays the exact on-chain validation and accounting
// rules locally over a staged ledger. It fails with the same error
// taxonomy the contract uses, before any wei is spent on a tx that
// would revert anyway.
func preflight(
	network networks.Network,
	sender ethcommon.Address,
	supplied *uint256.Int,
	recipients []ethcommon.Address,
	amounts []*uint256.Int,
) ([]disburse.Event, error) {
	ledger := disburse.NewLedger()
	if err := ledger.Fund(sender, supplied); err != nil {
		return nil, err
	}

	sinks := []disburse.Sink{}
	memory := disburse.NewMemorySink()
	sinks = append(sinks, memory)

	log := logger.L()
	opts := []disburse.VaultOption{
		disburse.WithSinkErrorHandler(func(e disburse.Event, err error) {
			log.Warn("audit sink rejected event", "seq", e.Seq, "err", err)
		}),
	}

	if config.AuditDBPath != "" {
		badgerSink, err := audit.NewBadgerSink(config.AuditDBPath)
		if err != nil {
			return nil, err
		}
		defer badgerSink.Close()
		sinks = append(sinks, badgerSink)
		// continue the persisted trail, the sink never overwrites a
		// sequence number it already holds
		last, err := badgerSink.LastSeq()
		if err != nil {
			return nil, err
		}
		opts = append(opts, disburse.WithInitialSeq(last))
	}
	if config.NATSURL != "" {
		natsSink, err := audit.NewNATSSink(config.NATSURL, config.NATSSubject)
		if err != nil {
			return nil, err
		}
		defer natsSink.Close()
		sinks = append(sinks, natsSink)
	}
	opts = append(opts, disburse.WithSinks(sinks...))

	vault := disburse.NewVault(
		network,
		ethcommon.HexToAddress(config.ContractAddress),
		ledger,
		opts...,
	)

	err := vault.BatchTransfer(disburse.DisbursementContext{
		ChainID:       network.GetChainID(),
		Sender:        sender,
		SuppliedValue: supplied,
	}, recipients, amounts)
	if err != nil {
		return nil, err
	}
	return memory.Events(), nil
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Disburse a batch of ETH transfers through BaseUtils",
	Long: `Runs a batch disbursement. The recipients file has one
"0xaddress,amount_in_wei" pair per line; the attached value
(--value, in wei) must cover the aggregate amount.

The batch is validated and simulated locally first with the same
rules the contract enforces: equal-length sequences, no zero address
recipient, overflow-checked summation and the supplied-value ceiling.
Only when the whole simulation commits is the on-chain tx built,
signed and broadcast. The on-chain call is all or nothing too.

With --dry-run the command stops after the local simulation.`,
	Run: func(cmd *cobra.Command, args []string) {
		network := networks.CurrentNetwork()

		if config.RecipientsFile == "" {
			fmt.Println(common.AlertColor("no recipients file given, use --recipients"))
			os.Exit(1)
		}
		recipients, amounts, err := util.ParseRecipientsFile(config.RecipientsFile)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}
		if len(recipients) == 0 {
			fmt.Println(common.AlertColor("recipients file has no transfers"))
			os.Exit(1)
		}
		supplied, err := uint256.FromDecimal(config.SuppliedValue)
		if err != nil {
			fmt.Println(common.AlertColor(fmt.Sprintf("--value %q is not a valid wei amount: %s", config.SuppliedValue, err)))
			os.Exit(1)
		}

		// The simulation only cares about balances, not identity, so a
		// fixed local sender funded with the supplied value is enough.
		sender := ethcommon.Address{1}
		events, err := preflight(network, sender, supplied, recipients, amounts)
		if err != nil {
			fmt.Println(common.AlertColor(fmt.Sprintf("preflight failed: %s", err)))
			os.Exit(1)
		}
		fmt.Printf("Preflight passed, %d transfers:\n", len(events))
		for _, e := range events {
			fmt.Printf("  %d. %s <- %s wei\n", e.Seq, e.Account.Hex(), e.Amount.Dec())
		}

		if batchDryRun {
			fmt.Println(common.InfoColor("Dry run, nothing was broadcast."))
			return
		}

		if config.ContractAddress == "" || !util.IsAddress(config.ContractAddress) {
			fmt.Println(common.AlertColor("no valid --contract address given"))
			os.Exit(1)
		}
		acc, err := unlockAccount()
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		r, err := util.EthReader(network)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}
		b, err := util.EthBroadcaster(network)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}
		m, err := util.EthTxMonitor(network)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		bigAmounts := make([]*big.Int, len(amounts))
		for i, a := range amounts {
			bigAmounts[i] = a.ToBig()
		}
		data, err := contract.PackBatchTransfer(recipients, bigAmounts)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		gasPrice := config.GasPrice + config.ExtraGasPrice
		if gasPrice == 0 {
			gasPrice, err = r.RecommendedGasPrice()
			if err != nil {
				fmt.Println(common.AlertColor(err.Error()))
				os.Exit(1)
			}
		}

		gasLimit := config.GasLimit
		if gasLimit == 0 {
			gasLimit, err = r.EstimateExactGas(
				acc.AddressHex(), config.ContractAddress, gasPrice, supplied.ToBig(), data,
			)
			if err != nil {
				fmt.Println(common.AlertColor(fmt.Sprintf("gas estimation failed: %s", err)))
				os.Exit(1)
			}
			gasLimit += config.ExtraGasLimit
		}

		nonce, err := r.GetPendingNonce(acc.AddressHex())
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		tx := common.BuildExactTx(nonce, config.ContractAddress, supplied.ToBig(), gasLimit, gasPrice, data)
		chainID := big.NewInt(0).SetUint64(network.GetChainID())
		signedTx, err := acc.SignTx(tx, chainID)
		if err != nil {
			fmt.Println(common.AlertColor(err.Error()))
			os.Exit(1)
		}

		hash, broadcasted, err := b.BroadcastTx(signedTx)
		if !broadcasted {
			fmt.Println(common.AlertColor(fmt.Sprintf("no node accepted the tx: %s", err)))
			os.Exit(1)
		}
		fmt.Printf("Broadcasted: %s\n", hash)

		if config.DontWaitToBeMined {
			return
		}
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " waiting to be mined..."
		s.Start()
		info := m.BlockingWait(hash)
		s.Stop()

		switch info.Status {
		case "done":
			fmt.Println(common.InfoColor(fmt.Sprintf(
				"Mined in block %s, %d transfers disbursed.",
				info.Receipt.BlockNumber.String(), len(recipients),
			)))
		case "reverted":
			fmt.Println(common.AlertColor("Tx reverted, the whole batch was rolled back."))
			os.Exit(1)
		default:
			fmt.Println(common.AlertColor(fmt.Sprintf("Tx was not mined (status %s).", info.Status)))
			os.Exit(1)
		}
	},
}

func init() {
	batchCmd.Flags().StringVar(&config.ContractAddress, "contract", "", "deployed BaseUtils address")
	batchCmd.Flags().StringVar(&config.RecipientsFile, "recipients", "", "file with one `0xaddress,amount_in_wei` per line")
	batchCmd.Flags().StringVar(&config.SuppliedValue, "value", "0", "value in wei attached to the batch")
	batchCmd.Flags().BoolVar(&batchDryRun, "dry-run", false, "stop after the local simulation")
	batchCmd.Flags().StringVar(&config.AuditDBPath, "audit-db", "", "also persist simulated audit events to this badger db")
	batchCmd.Flags().StringVar(&config.NATSURL, "nats-url", "", "also publish simulated audit events to this NATS server")
	batchCmd.Flags().StringVar(&config.NATSSubject, "nats-subject", "baseutils.audit", "NATS subject for audit events")
	batchCmd.Flags().StringVar(&config.KeystoreFile, "keystore", "", "keystore file of the sender wallet")
	batchCmd.Flags().StringVar(&config.KeystorePassword, "password", "", "keystore password (prefer "+config.KeystorePasswordVar+")")
	batchCmd.Flags().Float64VarP(&config.GasPrice, "gasprice", "p", 0, "gas price in gwei, 0 means ask the node")
	batchCmd.Flags().Float64VarP(&config.ExtraGasPrice, "extraprice", "P", 0, "extra gas price in gwei added on top")
	batchCmd.Flags().Uint64VarP(&config.GasLimit, "gas", "g", 0, "gas limit, 0 means estimate")
	batchCmd.Flags().Uint64VarP(&config.ExtraGasLimit, "extragas", "G", 0, "extra gas added on top of the estimation")
	batchCmd.Flags().BoolVar(&config.DontWaitToBeMined, "no-wait", false, "don't wait for the tx to be mined")
	rootCmd.AddCommand(batchCmd)
}
