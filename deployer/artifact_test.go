package deployer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArtifactPlainBytecode(t *testing.T) {
	content := []byte(`{
		"abi": [{"type": "receive", "stateMutability": "payable"}],
		"bytecode": "0x6080604052"
	}`)
	artifact, err := ParseArtifact(content)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, artifact.Bytecode)
	assert.NotEmpty(t, artifact.ABI)
}

func TestParseArtifactWrappedBytecode(t *testing.T) {
	content := []byte(`{
		"abi": [],
		"bytecode": {"object": "6080604052"}
	}`)
	artifact, err := ParseArtifact(content)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, artifact.Bytecode)
}

func TestParseArtifactRejectsGarbage(t *testing.T) {
	for name, content := range map[string]string{
		"not json":       `{`,
		"no bytecode":    `{"abi": []}`,
		"empty bytecode": `{"bytecode": "0x"}`,
		"bad hex":        `{"bytecode": "0xzz"}`,
	} {
		_, err := ParseArtifact([]byte(content))
		assert.Error(t, err, name)
	}
}

func TestLoadArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "BaseUtils.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"abi": [], "bytecode": "0x00"}`), 0644))

	artifact, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, artifact.Bytecode)

	_, err = LoadArtifact(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
