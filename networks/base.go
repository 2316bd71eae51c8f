package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var BaseMainnet Network = NewBaseMainnet()

type baseMainnet struct {
	*GenericNetwork
}

func NewBaseMainnet() *baseMainnet {
	return &baseMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "base",
			AlternativeNames:   []string{"base-mainnet"},
			ChainID:            8453,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          2,
			NodeVariableName:   "BASE_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"public-base": "https://mainnet.base.org",
			},
			// OptimismPortal proxy, the canonical L1->L2 bridge entry
			// as known on Base.
			BridgeContractAddress: common.HexToAddress("0x49048044D57e1C92A77f79988d21Fa8fAF74E97e"),
		}),
	}
}
