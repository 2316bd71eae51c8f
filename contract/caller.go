package contract

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/baselabs/baseutils/util/reader"
)

// Caller wraps the read-only entry points of a deployed BaseUtils
// instance. All calls go through eth_call, no state is touched.
type Caller struct {
	address common.Address
	abi     *abi.ABI
	reader  *reader.EthReader
}

type NetworkInfo struct {
	ChainID       *big.Int
	BridgeAddress common.Address
	BlockNumber   *big.Int
	BlockTime     time.Time
}

func NewCaller(address common.Address, r *reader.EthReader) (*Caller, error) {
	parsed, err := GetBaseUtilsABI()
	if err != nil {
		return nil, fmt.Errorf("parsing BaseUtils ABI: %w", err)
	}
	return &Caller{
		address: address,
		abi:     parsed,
		reader:  r,
	}, nil
}

func (c *Caller) Address() common.Address {
	return c.address
}

func (c *Caller) call(method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.reader.ReadContractToBytes(
		common.Address{}.Hex(), c.address.Hex(), c.abi, method, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", method, err)
	}
	res, err := c.abi.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s result: %w", method, err)
	}
	return res, nil
}

func (c *Caller) GetNetworkInfo() (*NetworkInfo, error) {
	res, err := c.call("getNetworkInfo")
	if err != nil {
		return nil, err
	}
	if len(res) != 4 {
		return nil, fmt.Errorf("getNetworkInfo returned %d values, want 4", len(res))
	}
	chainID, ok := res[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getNetworkInfo chainId has unexpected type %T", res[0])
	}
	bridge, ok := res[1].(common.Address)
	if !ok {
		return nil, fmt.Errorf("getNetworkInfo bridgeAddress has unexpected type %T", res[1])
	}
	blockNumber, ok := res[2].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getNetworkInfo blockNumber has unexpected type %T", res[2])
	}
	blockTime, ok := res[3].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getNetworkInfo blockTimestamp has unexpected type %T", res[3])
	}
	return &NetworkInfo{
		ChainID:       chainID,
		BridgeAddress: bridge,
		BlockNumber:   blockNumber,
		BlockTime:     time.Unix(blockTime.Int64(), 0),
	}, nil
}

func (c *Caller) GetBalance() (*big.Int, error) {
	res, err := c.call("getBalance")
	if err != nil {
		return nil, err
	}
	if len(res) != 1 {
		return nil, fmt.Errorf("getBalance returned %d values, want 1", len(res))
	}
	balance, ok := res[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getBalance has unexpected type %T", res[0])
	}
	return balance, nil
}

func (c *Caller) CalculateGasCost(gasUsed, gasPrice *big.Int) (*big.Int, error) {
	res, err := c.call("calculateGasCost", gasUsed, gasPrice)
	if err != nil {
		return nil, err
	}
	if len(res) != 1 {
		return nil, fmt.Errorf("calculateGasCost returned %d values, want 1", len(res))
	}
	cost, ok := res[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("calculateGasCost has unexpected type %T", res[0])
	}
	return cost, nil
}

// PackBatchTransfer builds the calldata for the payable batch entry
// point.
func PackBatchTransfer(recipients []common.Address, amounts []*big.Int) ([]byte, error) {
	parsed, err := GetBaseUtilsABI()
	if err != nil {
		return nil, err
	}
	return parsed.Pack("batchTransfer", recipients, amounts)
}
