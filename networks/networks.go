package networks

import (
	"fmt"
	"strings"
	"sync"
)

var (
	cachedNetwork Network
	mu            sync.Mutex
)

// CurrentNetwork returns the selected network, BaseMainnet when none
// was selected.
func CurrentNetwork() Network {
	mu.Lock()
	defer mu.Unlock()

	if cachedNetwork == nil {
		cachedNetwork = BaseMainnet
	}
	return cachedNetwork
}

// SetNetwork selects the network by name or alias. An unknown name is
// an error, never a silent fallback: a typoed name must not target
// another chain.
func SetNetwork(networkStr string) error {
	mu.Lock()
	defer mu.Unlock()

	network, err := GetNetwork(networkStr)
	if err != nil {
		return fmt.Errorf(
			"unknown network '%s', supported: %s: %w",
			networkStr, strings.Join(GetSupportedNetworkNames(), ", "), ErrNetworkNotFound,
		)
	}
	cachedNetwork = network
	return nil
}
