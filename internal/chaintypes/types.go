// Package chaintypes defines the value types shared by the transfer
// and anchor pipelines: addresses, hashes, amounts, and the immutable
// Transfer/Anchor records produced by the Network streams.
package chaintypes

import (
	"fmt"
	"strings"

	"github.com/ava-labs/erc20-bridge-relay/internal/relayerrors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Address is a 20-byte chain identifier.
type Address = common.Address

// H256 is a 32-byte hash.
type H256 = common.Hash

// U256 is a 256-bit unsigned integer.
type U256 = uint256.Int

// TransferEventSignature is the Keccak-256 hash of the canonical
// "Transfer(address,address,uint256)" event signature, computed once
// at package init and reused for every log filter and re-validation.
var TransferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// ParseAddress parses a hex-encoded address, with or without a "0x"
// prefix. Each input string is stripped independently, per the
// canonical behaviour: strip "0x" if present on this string, then
// parse exactly 40 hex characters.
func ParseAddress(s string) (Address, error) {
	clean := strings.TrimPrefix(s, "0x")
	clean = strings.TrimPrefix(clean, "0X")
	if len(clean) != 40 || !common.IsHexAddress(clean) {
		return Address{}, relayerrors.InvalidAddress(s)
	}
	return common.HexToAddress(clean), nil
}

// U256FromBigEndian decodes a 32-byte big-endian buffer into a U256,
// the inverse of amount.Bytes32().
func U256FromBigEndian(data []byte) (*U256, error) {
	if len(data) != 32 {
		return nil, relayerrors.Transport(fmt.Errorf("amount data must be exactly 32 bytes, got %d", len(data)))
	}
	var v uint256.Int
	v.SetBytes(data)
	return &v, nil
}

// NetworkType tags which side of the bridge a Network represents. It
// is used only for logging and identification.
type NetworkType int

const (
	// Home is the canonical, typically proof-of-work/stake chain.
	Home NetworkType = iota
	// Side is the faster/cheaper, typically proof-of-authority chain.
	Side
)

func (t NetworkType) String() string {
	switch t {
	case Home:
		return "home"
	case Side:
		return "side"
	default:
		return "unknown"
	}
}

// Transfer is an immutable record of a confirmed ERC20 transfer
// destined to a relay contract. It is created by the transfer
// pipeline and consumed exactly once by a downstream withdrawal
// submission.
type Transfer struct {
	Destination Address
	Amount      U256
	TxHash      H256
	BlockHash   H256
	BlockNumber U256
}

// Equal reports structural equality across all five fields.
func (t Transfer) Equal(o Transfer) bool {
	return t.Destination == o.Destination &&
		t.Amount.Eq(&o.Amount) &&
		t.TxHash == o.TxHash &&
		t.BlockHash == o.BlockHash &&
		t.BlockNumber.Eq(&o.BlockNumber)
}

// Anchor is an immutable record of a sidechain block committed into
// the homechain relay contract.
type Anchor struct {
	BlockHash   H256
	BlockNumber U256
}

// Equal reports structural equality across both fields.
func (a Anchor) Equal(o Anchor) bool {
	return a.BlockHash == o.BlockHash && a.BlockNumber.Eq(&o.BlockNumber)
}
