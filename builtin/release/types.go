// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package release

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

// Token is the custodied token paid out on claims.
type Token interface {
	Address() ube.Address
	// Transfer moves amount from the caller of env to to.
	Transfer(env *xenv.Environment, to ube.Address, amount *big.Int) error
	BalanceOf(env *xenv.Environment, account ube.Address) (*big.Int, error)
}

// Schedule is the linear unlock window, in unix seconds.
type Schedule struct {
	Start uint64 `json:"start" yaml:"start"`
	Cliff uint64 `json:"cliff" yaml:"cliff"`
	End   uint64 `json:"end" yaml:"end"`
}

// Validate checks the window is not empty.
func (s Schedule) Validate() error {
	if s.End <= s.Cliff {
		return errors.Errorf("schedule: end %d must be after cliff %d", s.End, s.Cliff)
	}
	if s.End <= s.Start {
		return errors.Errorf("schedule: end %d must be after start %d", s.End, s.Start)
	}
	return nil
}

// Vested returns how much of allocated is unlocked at now.
func (s Schedule) Vested(allocated *big.Int, now uint64) *big.Int {
	switch {
	case now < s.Cliff || now <= s.Start:
		return new(big.Int)
	case now >= s.End:
		return new(big.Int).Set(allocated)
	}
	v := new(big.Int).Mul(allocated, new(big.Int).SetUint64(now-s.Start))
	return v.Quo(v, new(big.Int).SetUint64(s.End-s.Start))
}

// Metadata describes the release token.
type Metadata struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// DefaultMetadata is the metadata of Release Ube.
func DefaultMetadata() Metadata {
	return Metadata{Name: "Release Ube", Symbol: "rUBE", Decimals: ube.Decimals}
}

// Holder is an allocation made at deploy time.
type Holder struct {
	Address ube.Address `json:"address"`
	Amount  *big.Int    `json:"amount"`
}

// Params configures a new release engine.
type Params struct {
	Owner       ube.Address
	TotalAmount *big.Int
	Schedule    Schedule
	Holders     []Holder
}

// Allocated is emitted for every allocation entry.
type Allocated struct {
	Recipient ube.Address `json:"recipient"`
	Amount    *big.Int    `json:"amount"`
}

func (Allocated) EventName() string       { return "Allocated" }
func (e Allocated) Topics() []ube.Address { return []ube.Address{e.Recipient} }

// Claimed is emitted when released tokens are paid out.
type Claimed struct {
	Account ube.Address `json:"account"`
	Amount  *big.Int    `json:"amount"`
}

func (Claimed) EventName() string       { return "Claimed" }
func (e Claimed) Topics() []ube.Address { return []ube.Address{e.Account} }

// OwnershipTransferred is emitted when the owner changes, including at deploy.
type OwnershipTransferred struct {
	PreviousOwner ube.Address `json:"previousOwner"`
	NewOwner      ube.Address `json:"newOwner"`
}

func (OwnershipTransferred) EventName() string { return "OwnershipTransferred" }

func (e OwnershipTransferred) Topics() []ube.Address {
	return []ube.Address{e.PreviousOwner, e.NewOwner}
}
