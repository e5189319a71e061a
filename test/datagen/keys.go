// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ubeswap/release/ube"
)

// RandKey returns a fresh secp256k1 key and the address it controls.
func RandKey() (*ecdsa.PrivateKey, ube.Address) {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return key, ube.Address(crypto.PubkeyToAddress(key.PublicKey))
}
