package util

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/baselabs/baseutils/networks"
	"github.com/baselabs/baseutils/util/broadcaster"
	"github.com/baselabs/baseutils/util/monitor"
	"github.com/baselabs/baseutils/util/reader"
)

// EthReader returns a multi-node reader over the network's node set.
func EthReader(network networks.Network) (*reader.EthReader, error) {
	nodes := network.GetDefaultNodes()
	if len(nodes) == 0 {
		return nil, fmt.Errorf("network %s has no nodes configured", network.GetName())
	}
	return reader.NewEthReaderGeneric(nodes), nil
}

func EthBroadcaster(network networks.Network) (*broadcaster.Broadcaster, error) {
	nodes := network.GetDefaultNodes()
	if len(nodes) == 0 {
		return nil, fmt.Errorf("network %s has no nodes configured", network.GetName())
	}
	return broadcaster.NewGenericBroadcaster(nodes), nil
}

func EthTxMonitor(network networks.Network) (*monitor.TxMonitor, error) {
	r, err := EthReader(network)
	if err != nil {
		return nil, err
	}
	return monitor.NewGenericTxMonitor(r), nil
}

var addressRegex = regexp.MustCompile("0x[0-9a-fA-F]{40}([^0-9a-fA-F]|$)")

func ScanForAddresses(para string) []string {
	result := addressRegex.FindAllString(para, -1)
	if result == nil {
		return []string{}
	}
	for i := 0; i < len(result); i++ {
		result[i] = result[i][0:42]
	}
	return result
}

func IsAddress(addr string) bool {
	return common.IsHexAddress(addr) && strings.HasPrefix(addr, "0x")
}

// ParseRecipientsFile reads a batch disbursement plan. One line per
// transfer in the form
//
//	0xrecipient,amount_in_wei
//
// Blank lines and lines starting with # are skipped. Absent or
// malformed addresses are rejected here, before a request is ever
// constructed.
func ParseRecipientsFile(path string) ([]common.Address, []*uint256.Int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't read recipients file: %w", err)
	}
	return ParseRecipients(string(content))
}

func ParseRecipients(content string) ([]common.Address, []*uint256.Int, error) {
	recipients := []common.Address{}
	amounts := []*uint256.Int{}
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("line %d: expected `address,amount`, got %q", i+1, line)
		}
		addrStr := strings.TrimSpace(parts[0])
		if !IsAddress(addrStr) {
			return nil, nil, fmt.Errorf("line %d: %q is not a valid address", i+1, addrStr)
		}
		addr := common.HexToAddress(addrStr)
		if addr == (common.Address{}) {
			return nil, nil, fmt.Errorf("line %d: the zero address is not a valid recipient", i+1)
		}
		amount, err := uint256.FromDecimal(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %q is not a valid wei amount: %w", i+1, parts[1], err)
		}
		recipients = append(recipients, addr)
		amounts = append(amounts, amount)
	}
	return recipients, amounts, nil
}
