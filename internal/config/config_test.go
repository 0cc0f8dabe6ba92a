package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/erc20-bridge-relay/internal/relayerrors"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[relay]
account = "0x0000000000000000000000000000000000aaaa"
password = "hunter2"

[relay.homechain]
ws-uri = "ws://home:8546"
token  = "0x0000000000000000000000000000000000bbbb"
relay  = "0x0000000000000000000000000000000000cccc"

[relay.sidechain]
ws-uri = "ws://side:8546"
token  = "0x0000000000000000000000000000000000dddd"
relay  = "0x0000000000000000000000000000000000eeee"
`

func withRelayOverrides(body string, extra string) string {
	const marker = "[relay]\n"
	i := indexOf(body, marker)
	return body[:i+len(marker)] + extra + body[i+len(marker):]
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "relay.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsPass(t *testing.T) {
	path := writeConfig(t, sampleTOML)
	s, err := Load(path)
	require.NoError(t, err)
	require.EqualValues(t, 12, s.Relay.Confirmations)
	require.EqualValues(t, 100, s.Relay.AnchorFrequency)
	require.Equal(t, "ws://home:8546", s.Relay.Homechain.WSURI)
	require.Equal(t, "ws://side:8546", s.Relay.Sidechain.WSURI)
}

func TestLoad_InvalidAnchorFrequency(t *testing.T) {
	path := writeConfig(t, withRelayOverrides(sampleTOML, "anchor_frequency = 0\n"))
	_, err := Load(path)
	require.Error(t, err)
	require.True(t, relayerrors.Is(err, relayerrors.KindInvalidAnchorFrequency))
}

func TestLoad_InvalidConfirmations(t *testing.T) {
	path := writeConfig(t, withRelayOverrides(sampleTOML, "confirmations = 100\nanchor_frequency = 100\n"))
	_, err := Load(path)
	require.Error(t, err)
	require.True(t, relayerrors.Is(err, relayerrors.KindInvalidConfirmations))
}

func TestValidate_Table(t *testing.T) {
	cases := []struct {
		name            string
		confirmations   uint64
		anchorFrequency uint64
		wantKind        *relayerrors.Kind
	}{
		{"defaults", 12, 100, nil},
		{"zero anchor frequency", 12, 0, kindPtr(relayerrors.KindInvalidAnchorFrequency)},
		{"confirmations equal", 100, 100, kindPtr(relayerrors.KindInvalidConfirmations)},
		{"confirmations greater", 101, 100, kindPtr(relayerrors.KindInvalidConfirmations)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Settings{Relay: RelaySettings{Confirmations: tc.confirmations, AnchorFrequency: tc.anchorFrequency}}
			err := s.Validate()
			if tc.wantKind == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, relayerrors.Is(err, *tc.wantKind))
		})
	}
}

func kindPtr(k relayerrors.Kind) *relayerrors.Kind { return &k }
