// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/ubeswap/release/ube"
)

// Account is the vesting and voting state of an address.
type Account struct {
	Balance           *math.HexOrDecimal256 `json:"balance"`
	Votes             *math.HexOrDecimal256 `json:"votes"`
	Delegate          ube.Address           `json:"delegate"`
	Nonce             uint64                `json:"nonce"`
	LifetimeAllocated *math.HexOrDecimal256 `json:"lifetimeAllocated"`
	LifetimeClaimed   *math.HexOrDecimal256 `json:"lifetimeClaimed"`
	Earned            *math.HexOrDecimal256 `json:"earned"`
	Releasable        *math.HexOrDecimal256 `json:"releasable"`
	TokenBalance      *math.HexOrDecimal256 `json:"tokenBalance"`
}

type Votes struct {
	Block uint32                `json:"block"`
	Votes *math.HexOrDecimal256 `json:"votes"`
}

type Checkpoint struct {
	FromBlock uint32                `json:"fromBlock"`
	Votes     *math.HexOrDecimal256 `json:"votes"`
}

// DelegationRequest carries a signed delegation to relay.
type DelegationRequest struct {
	Delegatee ube.Address   `json:"delegatee"`
	Nonce     uint64        `json:"nonce"`
	Expiry    uint64        `json:"expiry"`
	Signature hexutil.Bytes `json:"signature"`
}

// Receipt describes a committed relayed call.
type Receipt struct {
	BlockNumber uint32                `json:"blockNumber"`
	BlockTime   uint64                `json:"blockTime"`
	Amount      *math.HexOrDecimal256 `json:"amount,omitempty"`
	Events      []string              `json:"events"`
}
