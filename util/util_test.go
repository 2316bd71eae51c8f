package util

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipients(t *testing.T) {
	content := `
# operations payout, week 34
0x1111111111111111111111111111111111111111,100

0x2222222222222222222222222222222222222222,2500000000000000000
`
	recipients, amounts, err := ParseRecipients(content)
	require.NoError(t, err)
	require.Len(t, recipients, 2)
	require.Len(t, amounts, 2)
	assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), recipients[0])
	assert.Equal(t, uint256.NewInt(100), amounts[0])
	expected, err := uint256.FromDecimal("2500000000000000000")
	require.NoError(t, err)
	assert.Equal(t, expected, amounts[1])
}

func TestParseRecipientsRejectsZeroAddress(t *testing.T) {
	_, _, err := ParseRecipients("0x0000000000000000000000000000000000000000,10")
	assert.Error(t, err)
}

func TestParseRecipientsRejectsMalformedLines(t *testing.T) {
	for _, content := range []string{
		"0x1111111111111111111111111111111111111111",
		"not-an-address,10",
		"0x1111111111111111111111111111111111111111,ten",
		"0x1111111111111111111111111111111111111111,-5",
	} {
		_, _, err := ParseRecipients(content)
		assert.Error(t, err, "content: %s", content)
	}
}

func TestScanForAddresses(t *testing.T) {
	found := ScanForAddresses("deployed at 0x49048044D57e1C92A77f79988d21Fa8fAF74E97e, funded by 0x1111111111111111111111111111111111111111.")
	require.Len(t, found, 2)
	assert.Equal(t, "0x49048044D57e1C92A77f79988d21Fa8fAF74E97e", found[0])
}

func TestIsAddress(t *testing.T) {
	assert.True(t, IsAddress("0x49048044D57e1C92A77f79988d21Fa8fAF74E97e"))
	assert.False(t, IsAddress("49048044D57e1C92A77f79988d21Fa8fAF74E97e"))
	assert.False(t, IsAddress("0x1234"))
}
