package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

// Devnet targets a local anvil/hardhat node. The bridge address is the
// zero address since local chains carry no bridge deployment; commands
// that need one must be given a custom network definition instead.
var Devnet Network = NewDevnet()

type devnet struct {
	*GenericNetwork
}

func NewDevnet() *devnet {
	return &devnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "devnet",
			AlternativeNames:   []string{"local", "anvil"},
			ChainID:            31337,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          1,
			NodeVariableName:   "DEVNET_NODE",
			DefaultNodes: map[string]string{
				"local": "http://127.0.0.1:8545",
			},
			BridgeContractAddress: common.Address{},
		}),
	}
}
