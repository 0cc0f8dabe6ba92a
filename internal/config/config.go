// Package config loads and validates relay configuration from a TOML
// file merged with environment variable overrides.
package config

import (
	"strings"

	"github.com/ava-labs/erc20-bridge-relay/internal/relayerrors"
	"github.com/spf13/viper"
)

const (
	defaultConfirmations   = 12
	defaultAnchorFrequency = 100
)

// NetworkSettings holds the per-chain connection parameters.
type NetworkSettings struct {
	WSURI string `mapstructure:"ws-uri"`
	Token string `mapstructure:"token"`
	Relay string `mapstructure:"relay"`
}

// RelaySettings is the top-level [relay] table.
type RelaySettings struct {
	Account         string          `mapstructure:"account"`
	Password        string          `mapstructure:"password"`
	Confirmations   uint64          `mapstructure:"confirmations"`
	AnchorFrequency uint64          `mapstructure:"anchor_frequency"`
	Homechain       NetworkSettings `mapstructure:"homechain"`
	Sidechain       NetworkSettings `mapstructure:"sidechain"`
}

// Settings is the fully parsed and validated configuration.
type Settings struct {
	Relay RelaySettings `mapstructure:"relay"`
}

// Load reads configuration from the TOML file at path (if non-empty),
// merges environment variable overrides using the same dotted path
// uppercased, with "." and "-" both mapped to "_" (e.g.
// relay.homechain.ws-uri -> RELAY_HOMECHAIN_WS_URI), applies defaults,
// and validates the result.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.SetDefault("relay.confirmations", defaultConfirmations)
	v.SetDefault("relay.anchor_frequency", defaultAnchorFrequency)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, relayerrors.Transport(err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, relayerrors.Transport(err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate enforces the invariant 0 < confirmations < anchor_frequency.
func (s *Settings) Validate() error {
	return relayerrors.ValidateCadence(s.Relay.Confirmations, s.Relay.AnchorFrequency)
}
