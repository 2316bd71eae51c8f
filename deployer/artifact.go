package deployer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact is the compiled contract the deployer submits. Both solc
// combined-json style ("bytecode": "0x...") and hardhat/foundry style
// ("bytecode": {"object": "0x..."}) artifacts are accepted.
type Artifact struct {
	ABI      json.RawMessage
	Bytecode []byte
}

type rawArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode json.RawMessage `json:"bytecode"`
}

type wrappedBytecode struct {
	Object string `json:"object"`
}

func LoadArtifact(path string) (*Artifact, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read artifact file: %w", err)
	}
	return ParseArtifact(content)
}

func ParseArtifact(content []byte) (*Artifact, error) {
	var raw rawArtifact
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("couldn't parse artifact json: %w", err)
	}
	if len(raw.Bytecode) == 0 {
		return nil, fmt.Errorf("artifact has no bytecode field")
	}

	var bytecodeHex string
	if err := json.Unmarshal(raw.Bytecode, &bytecodeHex); err != nil {
		var wrapped wrappedBytecode
		if err := json.Unmarshal(raw.Bytecode, &wrapped); err != nil {
			return nil, fmt.Errorf("artifact bytecode is neither a hex string nor an object: %w", err)
		}
		bytecodeHex = wrapped.Object
	}
	if !strings.HasPrefix(bytecodeHex, "0x") {
		bytecodeHex = "0x" + bytecodeHex
	}
	bytecode, err := hexutil.Decode(bytecodeHex)
	if err != nil {
		return nil, fmt.Errorf("artifact bytecode is not valid hex: %w", err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("artifact bytecode is empty")
	}
	return &Artifact{
		ABI:      raw.ABI,
		Bytecode: bytecode,
	}, nil
}
