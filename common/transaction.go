package common

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// RawTxToHash returns the tx hash of hex encoded signed tx data
func RawTxToHash(data string) string {
	return crypto.Keccak256Hash(hexutil.MustDecode(data)).Hex()
}

func BuildExactTx(
	nonce uint64,
	to string,
	weiAmount *big.Int,
	gasLimit uint64,
	priceGwei float64,
	data []byte,
) *types.Transaction {
	toAddress := common.HexToAddress(to)
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: GweiToWei(priceGwei),
		Gas:      gasLimit,
		To:       &toAddress,
		Value:    weiAmount,
		Data:     data,
	})
}

func BuildContractCreationTx(
	nonce uint64,
	weiAmount *big.Int,
	gasLimit uint64,
	priceGwei float64,
	data []byte,
) *types.Transaction {
	return types.NewContractCreation(nonce, weiAmount, gasLimit, GweiToWei(priceGwei), data)
}
