// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ube

import "math/big"

// Constants of the release ledger.
const (
	BlockInterval uint64 = 5 // seconds between two consecutive blocks of the simulated chain.

	MaxAllocationBatch = 20 // max recipients accepted by a single allocation.

	Decimals uint8 = 18
)

// Well-known accounts.
var (
	// ZeroAddress is the mint source and the burn target of transfer observations.
	ZeroAddress = Address{}
)

// Ether returns amount * 10^18.
func Ether(amount int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(amount), big.NewInt(1e18))
}
