package contract

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// BaseUtilsABI is the interface of the deployed BaseUtils contract.
// The creation bytecode is not embedded; the deployer loads it from a
// compiled artifact file.
const BaseUtilsABI = `[
	{
		"type": "function",
		"name": "batchTransfer",
		"stateMutability": "payable",
		"inputs": [
			{"name": "recipients", "type": "address[]"},
			{"name": "amounts", "type": "uint256[]"}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "calculateGasCost",
		"stateMutability": "pure",
		"inputs": [
			{"name": "gasUsed", "type": "uint256"},
			{"name": "gasPrice", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "getBalance",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "getNetworkInfo",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [
			{"name": "chainId", "type": "uint256"},
			{"name": "bridgeAddress", "type": "address"},
			{"name": "blockNumber", "type": "uint256"},
			{"name": "blockTimestamp", "type": "uint256"}
		]
	},
	{
		"type": "event",
		"name": "BatchTransfer",
		"inputs": [
			{"name": "recipient", "type": "address", "indexed": true},
			{"name": "amount", "type": "uint256", "indexed": false}
		],
		"anonymous": false
	},
	{
		"type": "event",
		"name": "Deposit",
		"inputs": [
			{"name": "sender", "type": "address", "indexed": true},
			{"name": "amount", "type": "uint256", "indexed": false}
		],
		"anonymous": false
	},
	{"type": "receive", "stateMutability": "payable"}
]`

func GetBaseUtilsABI() (*abi.ABI, error) {
	result, err := abi.JSON(strings.NewReader(BaseUtilsABI))
	if err != nil {
		return nil, err
	}
	return &result, nil
}
