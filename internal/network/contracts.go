package network

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// erc20ABI is the minimal ERC20 interface the token contract is bound
// against. The core only uses it to validate the contract reference;
// transfers are observed via raw log filtering, not contract calls.
const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"success","type":"bool"}],"type":"function"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"value","type":"uint256"}],"name":"Transfer","type":"event"}
]`

// erc20RelayABI is the relay contract interface: processWithdrawal
// releases a mirrored transfer on this chain; anchor commits a
// sidechain block identity.
const erc20RelayABI = `[
	{"constant":false,"inputs":[{"name":"txHash","type":"bytes32"},{"name":"destination","type":"address"},{"name":"amount","type":"uint256"}],"name":"processWithdrawal","outputs":[],"type":"function"},
	{"constant":false,"inputs":[{"name":"blockHash","type":"bytes32"},{"name":"blockNumber","type":"uint256"}],"name":"anchor","outputs":[],"type":"function"}
]`

func parseABI(raw string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(raw))
}
