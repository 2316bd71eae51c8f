package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/baselabs/baseutils/common"
)

// Insert more Network implementations here to support more chains
var supportedNetworks = []Network{
	BaseMainnet,
	BaseSepolia,
	Devnet,
}

var globalSupportedNetworks = newSupportedNetworks()
var ErrNetworkNotFound = fmt.Errorf("network not found")

type networkRegistry struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networkRegistry) getSupportedNetworkNames() []string {
	res := []string{}
	for _, n := range n.networks {
		res = append(res, n.GetName())
		res = append(res, n.GetAlternativeNames()...)
	}
	return res
}

func (n *networkRegistry) getNetworkByID(id uint64) (Network, error) {
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networkRegistry) getNetwork(name string) (Network, error) {
	res, found := n.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func newSupportedNetworks() *networkRegistry {
	result := networkRegistry{
		map[string]Network{},
		map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if _, found := result.networks[n.GetName()]; found {
			panic(
				fmt.Errorf(
					"network with name or alternative name of '%s' already exists",
					n.GetName(),
				),
			)
		}
		result.networks[n.GetName()] = n
		result.networksByID[n.GetChainID()] = n
		for _, an := range n.GetAlternativeNames() {
			if _, found := result.networks[an]; found {
				panic(
					fmt.Errorf("network with name or alternative name of '%s' already exists", an),
				)
			}
			result.networks[an] = n
		}
	}

	// load custom networks from ~/.baseutils/networks/
	customNetworks, err := loadCustomNetworks()
	if err != nil {
		fmt.Println(common.WarningColor(fmt.Sprintf(
			"Failed to load custom networks: %s. Ignore and continue with built-in networks.", err,
		)))
		return &result
	}

	for _, n := range customNetworks {
		_, nameFound := result.networks[n.GetName()]
		if nameFound {
			fmt.Println(common.WarningColor(fmt.Sprintf(
				"Network with name '%s' already exists. Using custom network.", n.GetName(),
			)))
		}
		_, idFound := result.networksByID[n.GetChainID()]
		if idFound {
			fmt.Println(common.WarningColor(fmt.Sprintf(
				"Network with id '%d' already exists. Using custom network.", n.GetChainID(),
			)))
		}
		result.networks[n.GetName()] = n
		result.networksByID[n.GetChainID()] = n
	}
	return &result
}

func loadCustomNetworks() ([]Network, error) {
	usr, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	customNetworksDir := filepath.Join(usr.HomeDir, ".baseutils", "networks")
	files, err := filepath.Glob(filepath.Join(customNetworksDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in ~/.baseutils/networks: %w", err)
	}

	networks := []Network{}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}

		network, err := NewNetworkFromJSON(content)
		if err != nil {
			fmt.Printf("failed to parse network from file %s: %s. Ignore and continue with other custom networks.\n", file, err)
			continue
		}

		networks = append(networks, network)
	}

	return networks, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	err := json.Unmarshal(content, &networkConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}

	return NewGenericNetwork(networkConfig), nil
}

func GetSupportedNetworks() []Network {
	res := []Network{}
	for _, n := range globalSupportedNetworks.networks {
		res = append(res, n)
	}
	return res
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}
