package deployer

import (
	"fmt"
	"log/slog"
	"math/big"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/baselabs/baseutils/accounts"
	"github.com/baselabs/baseutils/common"
	"github.com/baselabs/baseutils/contract"
	"github.com/baselabs/baseutils/disburse"
	"github.com/baselabs/baseutils/networks"
	"github.com/baselabs/baseutils/util"
	"github.com/baselabs/baseutils/util/broadcaster"
	"github.com/baselabs/baseutils/util/monitor"
	"github.com/baselabs/baseutils/util/reader"
)

// GasLimitContractDeploy is the estimation fallback when the node
// cannot simulate the creation tx. Conservative upper bound, actual
// usage will be lower.
const GasLimitContractDeploy = uint64(1_500_000)

// Deployer submits the BaseUtils creation tx and confirms it. It
// fails fast: every error is terminal, there is no retry.
type Deployer struct {
	network     networks.Network
	reader      *reader.EthReader
	broadcaster *broadcaster.Broadcaster
	monitor     *monitor.TxMonitor
	account     *accounts.Account
	logger      *slog.Logger
}

func NewDeployer(network networks.Network, account *accounts.Account, logger *slog.Logger) (*Deployer, error) {
	r, err := util.EthReader(network)
	if err != nil {
		return nil, err
	}
	b, err := util.EthBroadcaster(network)
	if err != nil {
		return nil, err
	}
	return &Deployer{
		network:     network,
		reader:      r,
		broadcaster: b,
		monitor:     monitor.NewGenericTxMonitor(r),
		account:     account,
		logger:      logger,
	}, nil
}

// VerifyNetwork confirms the nodes actually serve the chain the
// selected network declares.
func (d *Deployer) VerifyNetwork() error {
	chainID, err := d.reader.ChainID()
	if err != nil {
		return fmt.Errorf("couldn't query chain id: %w", err)
	}
	if chainID.Uint64() != d.network.GetChainID() {
		return fmt.Errorf(
			"nodes serve chain %s, selected network %s is chain %d: %w",
			chainID.String(), d.network.GetName(), d.network.GetChainID(),
			disburse.ErrWrongNetwork,
		)
	}
	return nil
}

// Deploy runs the whole creation sequence: network check, funding
// check, submit, poll until mined. gasPriceGwei 0 means ask the node,
// gasLimit 0 means estimate.
func (d *Deployer) Deploy(artifact *Artifact, gasPriceGwei float64, gasLimit uint64) (*Deployment, error) {
	if err := d.VerifyNetwork(); err != nil {
		return nil, err
	}

	from := d.account.AddressHex()

	if gasPriceGwei == 0 {
		suggested, err := d.reader.RecommendedGasPrice()
		if err != nil {
			return nil, fmt.Errorf("couldn't get a gas price suggestion: %w", err)
		}
		gasPriceGwei = suggested
	}

	if gasLimit == 0 {
		estimated, err := d.reader.EstimateExactGas(from, "", gasPriceGwei, big.NewInt(0), artifact.Bytecode)
		if err != nil {
			d.logger.Warn("gas estimation failed, using fallback limit",
				"fallback", GasLimitContractDeploy, "err", err)
			estimated = GasLimitContractDeploy
		}
		gasLimit = estimated
	}

	cost := big.NewInt(0).Mul(
		big.NewInt(int64(gasLimit)),
		common.GweiToWei(gasPriceGwei),
	)
	balance, err := d.reader.GetBalance(from)
	if err != nil {
		return nil, fmt.Errorf("couldn't query deployer balance: %w", err)
	}
	if balance.Cmp(cost) < 0 {
		return nil, fmt.Errorf(
			"deployer %s holds %s wei, estimated cost is %s wei",
			from, balance.String(), cost.String(),
		)
	}

	nonce, err := d.reader.GetPendingNonce(from)
	if err != nil {
		return nil, fmt.Errorf("couldn't query nonce: %w", err)
	}

	tx := common.BuildContractCreationTx(nonce, big.NewInt(0), gasLimit, gasPriceGwei, artifact.Bytecode)
	chainID := big.NewInt(0).SetUint64(d.network.GetChainID())
	signedTx, err := d.account.SignTx(tx, chainID)
	if err != nil {
		return nil, err
	}

	d.logger.Info("broadcasting creation tx",
		"network", d.network.GetName(),
		"from", from,
		"nonce", nonce,
		"gas_limit", gasLimit,
		"gas_price_gwei", gasPriceGwei,
	)
	hash, broadcasted, err := d.broadcaster.BroadcastTx(signedTx)
	if !broadcasted {
		return nil, fmt.Errorf("no node accepted the creation tx: %w", err)
	}

	d.logger.Info("waiting for confirmation", "tx", hash)
	info := d.monitor.BlockingWait(hash)
	switch info.Status {
	case "done":
	case "reverted":
		return nil, fmt.Errorf("creation tx %s reverted", hash)
	default:
		return nil, fmt.Errorf("creation tx %s was not mined (status %s)", hash, info.Status)
	}

	actualCost := info.GasCost()
	deployment := &Deployment{
		ID:              uuid.NewString(),
		Network:         d.network.GetName(),
		ChainID:         d.network.GetChainID(),
		ContractAddress: info.Receipt.ContractAddress.Hex(),
		TxHash:          hash,
		GasUsed:         info.Receipt.GasUsed,
		GasPriceGwei:    gasPriceGwei,
		CostWei:         actualCost.String(),
		Timestamp:       time.Now().UTC(),
	}
	d.logger.Info("contract deployed",
		"address", deployment.ContractAddress,
		"gas_used", deployment.GasUsed,
		"cost_wei", deployment.CostWei,
	)
	return deployment, nil
}

// SmokeTest exercises the deployed contract's read entry points and
// cross-checks them against the selected network.
func (d *Deployer) SmokeTest(address ethcommon.Address) error {
	code, err := d.reader.GetCode(address.Hex())
	if err != nil {
		return fmt.Errorf("couldn't read code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return fmt.Errorf("no code at %s, creation tx didn't deploy", address.Hex())
	}

	caller, err := contract.NewCaller(address, d.reader)
	if err != nil {
		return err
	}

	info, err := caller.GetNetworkInfo()
	if err != nil {
		return err
	}
	if info.ChainID.Uint64() != d.network.GetChainID() {
		return fmt.Errorf(
			"contract reports chain %s, expected %d: %w",
			info.ChainID.String(), d.network.GetChainID(), disburse.ErrWrongNetwork,
		)
	}
	if info.BridgeAddress != d.network.GetBridgeContractAddress() {
		return fmt.Errorf(
			"contract reports bridge %s, network config says %s",
			info.BridgeAddress.Hex(), d.network.GetBridgeContractAddress().Hex(),
		)
	}

	cost, err := caller.CalculateGasCost(big.NewInt(21000), common.GweiToWei(1))
	if err != nil {
		return err
	}
	expected := big.NewInt(0).Mul(big.NewInt(21000), common.GweiToWei(1))
	if cost.Cmp(expected) != 0 {
		return fmt.Errorf("calculateGasCost returned %s, want %s", cost.String(), expected.String())
	}

	balance, err := caller.GetBalance()
	if err != nil {
		return err
	}
	d.logger.Info("smoke test passed",
		"address", address.Hex(),
		"contract_balance_wei", balance.String(),
	)
	return nil
}
