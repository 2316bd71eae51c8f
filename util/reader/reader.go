package reader

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"

	baseutilscommon "github.com/baselabs/baseutils/common"
)

// EthReader fans every read out to all of its nodes and takes the
// first success. It only fails when every node fails.
type EthReader struct {
	nodes map[string]*OneNodeReader
}

func NewEthReaderGeneric(nodes map[string]string) *EthReader {
	ns := map[string]*OneNodeReader{}
	for name, c := range nodes {
		ns[name] = NewOneNodeReader(name, c)
	}
	return &EthReader{
		nodes: ns,
	}
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type bigIntResult struct {
	Value *big.Int
	Error error
}

type uint64Result struct {
	Value uint64
	Error error
}

type bytesResult struct {
	Value []byte
	Error error
}

func (er *EthReader) ChainID() (*big.Int, error) {
	resCh := make(chan bigIntResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			value, err := n.ChainID()
			resCh <- bigIntResult{value, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

// EstimateExactGas estimates gas for a call or, when to is empty, a
// contract creation, on the pending block.
func (er *EthReader) EstimateExactGas(
	from, to string,
	priceGwei float64,
	value *big.Int,
	data []byte,
) (uint64, error) {
	resCh := make(chan uint64Result, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			gas, err := n.EstimateGas(from, to, priceGwei, value, data)
			resCh <- uint64Result{gas, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return 0, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) GetCode(address string) ([]byte, error) {
	resCh := make(chan bytesResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			code, err := n.GetCode(address)
			resCh <- bytesResult{code, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) GetBalance(address string) (*big.Int, error) {
	resCh := make(chan bigIntResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			balance, err := n.GetBalance(address)
			resCh <- bigIntResult{balance, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

// RecommendedGasPrice returns the node suggested gas price in gwei.
func (er *EthReader) RecommendedGasPrice() (float64, error) {
	resCh := make(chan bigIntResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			price, err := n.GetGasPriceSuggestion()
			resCh <- bigIntResult{price, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return baseutilscommon.BigToFloat(result.Value, 9), nil
		}
		errs = append(errs, result.Error)
	}
	return 0, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) GetPendingNonce(address string) (uint64, error) {
	resCh := make(chan uint64Result, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			nonce, err := n.GetPendingNonce(address)
			resCh <- uint64Result{nonce, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return 0, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type receiptResult struct {
	Value *types.Receipt
	Error error
}

func (er *EthReader) TransactionReceipt(txHash string) (*types.Receipt, error) {
	resCh := make(chan receiptResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			receipt, err := n.TransactionReceipt(txHash)
			resCh <- receiptResult{receipt, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type txResult struct {
	Tx        *baseutilscommon.Transaction
	IsPending bool
	Error     error
}

func (er *EthReader) TransactionByHash(txHash string) (*baseutilscommon.Transaction, bool, error) {
	resCh := make(chan txResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			tx, isPending, err := n.TransactionByHash(txHash)
			resCh <- txResult{tx, isPending, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Tx, result.IsPending, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, false, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type headerResult struct {
	Value *types.Header
	Error error
}

func (er *EthReader) HeaderByNumber(number int64) (*types.Header, error) {
	resCh := make(chan headerResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			header, err := n.HeaderByNumber(number)
			resCh <- headerResult{header, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

// CurrentBlock returns the latest block height together with its
// timestamp.
func (er *EthReader) CurrentBlock() (uint64, time.Time, error) {
	header, err := er.HeaderByNumber(-1)
	if err != nil {
		return 0, time.Time{}, err
	}
	return header.Number.Uint64(), time.Unix(int64(header.Time), 0), nil
}

func (er *EthReader) ReadContractToBytes(from string, caddr string, abi *abi.ABI, method string, args ...interface{}) ([]byte, error) {
	resCh := make(chan bytesResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			data, err := n.ReadContractToBytes(from, caddr, abi, method, args...)
			resCh <- bytesResult{data, wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

// TxInfoFromHash classifies a tx as error, notfound, pending,
// reverted or done, attaching the receipt when mined.
func (er *EthReader) TxInfoFromHash(tx string) (baseutilscommon.TxInfo, error) {
	txObj, isPending, err := er.TransactionByHash(tx)
	if err != nil {
		return baseutilscommon.TxInfo{Status: "error"}, err
	}
	if txObj == nil {
		return baseutilscommon.TxInfo{Status: "notfound"}, nil
	}
	if isPending {
		return baseutilscommon.TxInfo{Status: "pending", Tx: txObj}, nil
	}

	receipt, err := er.TransactionReceipt(tx)
	if receipt == nil {
		return baseutilscommon.TxInfo{Status: "pending", Tx: txObj}, err
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		return baseutilscommon.TxInfo{Status: "done", Tx: txObj, Receipt: receipt}, nil
	}
	return baseutilscommon.TxInfo{Status: "reverted", Tx: txObj, Receipt: receipt}, nil
}
