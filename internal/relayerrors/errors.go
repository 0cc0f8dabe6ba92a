// Package relayerrors defines the typed failure kinds used at the
// boundaries of the relay: configuration loading, address parsing,
// contract ABI loading, and transport I/O.
package relayerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies the category of a RelayError.
type Kind int

const (
	// KindInvalidAddress marks an unparseable hex address.
	KindInvalidAddress Kind = iota
	// KindInvalidContractAbi marks a rejected ABI JSON payload.
	KindInvalidContractAbi
	// KindInvalidConfigFilePath marks a config path that could not be
	// converted to a string.
	KindInvalidConfigFilePath
	// KindInvalidAnchorFrequency marks anchor_frequency == 0.
	KindInvalidAnchorFrequency
	// KindInvalidConfirmations marks confirmations == 0 or
	// confirmations >= anchor_frequency.
	KindInvalidConfirmations
	// KindTransport marks a wrapped RPC/transport failure.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindInvalidAddress:
		return "InvalidAddress"
	case KindInvalidContractAbi:
		return "InvalidContractAbi"
	case KindInvalidConfigFilePath:
		return "InvalidConfigFilePath"
	case KindInvalidAnchorFrequency:
		return "InvalidAnchorFrequency"
	case KindInvalidConfirmations:
		return "InvalidConfirmations"
	case KindTransport:
		return "Transport"
	default:
		return "Unknown"
	}
}

// RelayError is a typed error carrying a Kind for boundary errors.
// Use errors.As to recover it and inspect Kind.
type RelayError struct {
	Kind Kind
	Err  error
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// InvalidAddress wraps s as an InvalidAddress error.
func InvalidAddress(s string) error {
	return &RelayError{Kind: KindInvalidAddress, Err: errors.Errorf("invalid address: %q", s)}
}

// InvalidContractAbi reports a rejected ABI payload.
func InvalidContractAbi(err error) error {
	return &RelayError{Kind: KindInvalidContractAbi, Err: errors.Wrap(err, "invalid contract abi")}
}

// InvalidConfigFilePath reports a config path that is not valid UTF-8/string.
func InvalidConfigFilePath() error {
	return &RelayError{Kind: KindInvalidConfigFilePath, Err: errors.New("config file path is not a valid string")}
}

// InvalidAnchorFrequency reports anchor_frequency == 0.
func InvalidAnchorFrequency() error {
	return &RelayError{Kind: KindInvalidAnchorFrequency, Err: errors.New("anchor_frequency must be greater than zero")}
}

// InvalidConfirmations reports confirmations == 0 or
// confirmations >= anchor_frequency.
func InvalidConfirmations() error {
	return &RelayError{Kind: KindInvalidConfirmations, Err: errors.New("confirmations must be greater than zero and less than anchor_frequency")}
}

// Transport wraps a transport/RPC error.
func Transport(err error) error {
	return &RelayError{Kind: KindTransport, Err: errors.Wrap(err, "transport error")}
}

// ValidateCadence enforces the shared invariant 0 < confirmations <
// anchorFrequency, used at both configuration load time and Network
// construction time.
func ValidateCadence(confirmations, anchorFrequency uint64) error {
	if anchorFrequency == 0 {
		return InvalidAnchorFrequency()
	}
	if confirmations == 0 || confirmations >= anchorFrequency {
		return InvalidConfirmations()
	}
	return nil
}

// Is reports whether err is a RelayError of kind k.
func Is(err error, k Kind) bool {
	var re *RelayError
	if errors.As(err, &re) {
		return re.Kind == k
	}
	return false
}
