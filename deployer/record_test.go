package deployer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndLoadRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deployment.json")
	record := &Deployment{
		ID:              "3f6f0cb3-6f3e-4bb0-9e27-2f5ee7a12d10",
		Network:         "base-sepolia",
		ChainID:         84532,
		ContractAddress: "0x49048044D57e1C92A77f79988d21Fa8fAF74E97e",
		TxHash:          "0xabc",
		GasUsed:         734212,
		GasPriceGwei:    0.05,
		CostWei:         "36710600000000",
		Timestamp:       time.Unix(1700000000, 0).UTC(),
	}

	require.NoError(t, WriteRecord(path, record))

	loaded, err := LoadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestLoadRecordErrors(t *testing.T) {
	_, err := LoadRecord(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
