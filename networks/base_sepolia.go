package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var BaseSepolia Network = NewBaseSepolia()

type baseSepolia struct {
	*GenericNetwork
}

func NewBaseSepolia() *baseSepolia {
	return &baseSepolia{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "base-sepolia",
			AlternativeNames:   []string{"base-testnet"},
			ChainID:            84532,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          2,
			NodeVariableName:   "BASE_SEPOLIA_NODE",
			DefaultNodes: map[string]string{
				"public-base-sepolia": "https://sepolia.base.org",
			},
			BridgeContractAddress: common.HexToAddress("0x49f53e41452C74589E85cA1677426Ba426459e85"),
		}),
	}
}
