// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package votingpower

import (
	"math/big"

	"github.com/ubeswap/release/ube"
)

// Transfer is emitted on every balance movement. Mints come from and burns go to the zero address.
type Transfer struct {
	From   ube.Address `json:"from"`
	To     ube.Address `json:"to"`
	Amount *big.Int    `json:"amount"`
}

func (Transfer) EventName() string       { return "Transfer" }
func (e Transfer) Topics() []ube.Address { return []ube.Address{e.From, e.To} }

// DelegateChanged is emitted when an account changes its delegate.
type DelegateChanged struct {
	Delegator    ube.Address `json:"delegator"`
	FromDelegate ube.Address `json:"fromDelegate"`
	ToDelegate   ube.Address `json:"toDelegate"`
}

func (DelegateChanged) EventName() string { return "DelegateChanged" }

func (e DelegateChanged) Topics() []ube.Address {
	return []ube.Address{e.Delegator, e.FromDelegate, e.ToDelegate}
}

// DelegateVotesChanged is emitted for every checkpoint written.
type DelegateVotesChanged struct {
	Delegate        ube.Address `json:"delegate"`
	PreviousBalance *big.Int    `json:"previousBalance"`
	NewBalance      *big.Int    `json:"newBalance"`
}

func (DelegateVotesChanged) EventName() string       { return "DelegateVotesChanged" }
func (e DelegateVotesChanged) Topics() []ube.Address { return []ube.Address{e.Delegate} }
