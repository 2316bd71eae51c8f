package networks

import (
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type GenericNetworkConfig struct {
	Name                  string            `json:"name"`
	AlternativeNames      []string          `json:"alternative_names"`
	ChainID               uint64            `json:"chain_id"`
	NativeTokenSymbol     string            `json:"native_token_symbol"`
	NativeTokenDecimal    uint64            `json:"native_token_decimal"`
	BlockTime             uint64            `json:"block_time"`
	NodeVariableName      string            `json:"node_variable_name"`
	DefaultNodes          map[string]string `json:"default_nodes"`
	BridgeContractAddress common.Address    `json:"bridge_contract_address"`
}

// GenericNetwork is a generic implementation of an EVM network whose
// identity (chain id, bridge address, node set) is injected as
// configuration instead of being compiled in.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

// GetDefaultNodes returns the configured node set. If the node env var
// is set, it overrides all of the defaults so operators can pin a
// single node without editing config files.
func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	custom := strings.Trim(os.Getenv(gn.GetNodeVariableName()), " ")
	if custom != "" {
		return map[string]string{"custom-node": custom}
	}
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) GetBridgeContractAddress() common.Address {
	return gn.config.BridgeContractAddress
}
