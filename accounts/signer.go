package accounts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
)

type Signer interface {
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}
