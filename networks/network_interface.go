package networks

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() uint64
	GetBlockTime() time.Duration

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	// GetBridgeContractAddress returns the canonical bridge portal
	// contract on this network. Zero address means the network has
	// no bridge deployment.
	GetBridgeContractAddress() common.Address
}
