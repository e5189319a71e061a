// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ubeswap/release/builtin/release"
	"github.com/ubeswap/release/builtin/token"
	"github.com/ubeswap/release/ube"
)

// DevChainID is the chain id of the development network.
const DevChainID = 1337

// DevAccount account for development.
type DevAccount struct {
	Address    ube.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns the well known accounts of the development network.
// The first one deploys and owns the contracts.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{ube.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// NewDevnet returns a config whose schedule starts at launchTime, vests over a
// year and gives every dev account but the first a million tokens.
func NewDevnet(launchTime uint64) *Config {
	const year = 365 * 24 * 3600

	accs := DevAccounts()
	owner := accs[0].Address
	holders := make([]Holder, 0, len(accs)-1)
	for _, acc := range accs[1:] {
		holders = append(holders, Holder{Address: acc.Address, Amount: (*Amount)(ube.Ether(1_000_000))})
	}

	return &Config{
		ChainID:    DevChainID,
		LaunchTime: launchTime,
		Deployer:   owner,
		Token: TokenConfig{
			Metadata: token.DefaultMetadata(),
			Supply:   (*Amount)(ube.Ether(100_000_000)),
		},
		Release: ReleaseConfig{
			Metadata:    release.DefaultMetadata(),
			Owner:       owner,
			TotalAmount: (*Amount)(ube.Ether(10_000_000)),
			Schedule:    release.Schedule{Start: launchTime, End: launchTime + year},
			Holders:     holders,
		},
	}
}
