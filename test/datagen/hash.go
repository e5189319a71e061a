// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/ubeswap/release/ube"
)

func RandomHash() ube.Bytes32 {
	var b32 ube.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandAddress() ube.Address {
	var addr ube.Address

	rand.Read(addr[:])
	return addr
}

// RandAddresses returns n distinct random addresses.
func RandAddresses(n int) []ube.Address {
	seen := make(map[ube.Address]struct{}, n)
	out := make([]ube.Address, 0, n)
	for len(out) < n {
		addr := RandAddress()
		if _, ok := seen[addr]; ok || addr.IsZero() {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}
