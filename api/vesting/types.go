// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/ubeswap/release/builtin/release"
	"github.com/ubeswap/release/ube"
)

// Summary is the global state of the release engine.
type Summary struct {
	Address          ube.Address           `json:"address"`
	Token            ube.Address           `json:"token"`
	Owner            ube.Address           `json:"owner"`
	Metadata         release.Metadata      `json:"metadata"`
	Schedule         release.Schedule      `json:"schedule"`
	TotalAmount      *math.HexOrDecimal256 `json:"totalAmount"`
	TotalAllocated   *math.HexOrDecimal256 `json:"totalAllocated"`
	TotalClaimed     *math.HexOrDecimal256 `json:"totalClaimed"`
	TotalSupply      *math.HexOrDecimal256 `json:"totalSupply"`
	TotalVotingPower *math.HexOrDecimal256 `json:"totalVotingPower"`
	Custody          *math.HexOrDecimal256 `json:"custody"`
}
