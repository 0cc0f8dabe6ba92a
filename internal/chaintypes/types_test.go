package chaintypes

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestParseAddress_RoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"with 0x prefix", "0x000102030405060708090a0b0c0d0e0f10111213"},
		{"without prefix", "000102030405060708090a0b0c0d0e0f10111213"},
		{"uppercase prefix", "0X000102030405060708090a0b0c0d0e0f10111213"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := ParseAddress(tc.input)
			require.NoError(t, err)
			require.Equal(t, common.HexToAddress("0x000102030405060708090a0b0c0d0e0f10111213"), addr)

			// Round trip: format back to 0x + 40 lowercase hex chars, reparse.
			formatted := "0x" + strings.ToLower(strings.TrimPrefix(addr.Hex(), "0x"))
			reparsed, err := ParseAddress(formatted)
			require.NoError(t, err)
			require.Equal(t, addr, reparsed)
		})
	}
}

func TestParseAddress_Invalid(t *testing.T) {
	cases := []string{
		"",
		"0xdeadbeef",
		"not-hex-at-all-not-hex-at-all-not-hexxx",
		"0x00010203040506070809", // too short
	}
	for _, input := range cases {
		_, err := ParseAddress(input)
		require.Error(t, err)
	}
}

func TestU256FromBigEndian_RoundTrip(t *testing.T) {
	v, err := U256FromBigEndian(mustHexBytes(t, 32, 500))
	require.NoError(t, err)
	require.Equal(t, uint64(500), v.Uint64())

	encoded := v.Bytes32()
	decoded, err := U256FromBigEndian(encoded[:])
	require.NoError(t, err)
	require.True(t, v.Eq(decoded))
}

func TestU256FromBigEndian_WrongLength(t *testing.T) {
	_, err := U256FromBigEndian(make([]byte, 31))
	require.Error(t, err)
}

func mustHexBytes(t *testing.T, length int, value uint64) []byte {
	t.Helper()
	buf := make([]byte, length)
	for i := 0; i < 8; i++ {
		buf[length-1-i] = byte(value >> (8 * i))
	}
	return buf
}

func TestNetworkType_String(t *testing.T) {
	require.Equal(t, "home", Home.String())
	require.Equal(t, "side", Side.String())
}
