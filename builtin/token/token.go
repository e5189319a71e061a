// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fixed supply governance token held in custody by the release engine.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/ubeswap/release/builtin/solidity"
	"github.com/ubeswap/release/builtin/votingpower"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/state"
	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

var logger = log.WithContext("pkg", "token")

// ErrAlreadyMinted is returned when the supply is minted a second time.
var ErrAlreadyMinted = errors.New("token: supply already minted")

// Metadata describes a token.
type Metadata struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// DefaultMetadata is the metadata of the Ubeswap governance token.
func DefaultMetadata() Metadata {
	return Metadata{Name: "Ubeswap", Symbol: "UBE", Decimals: ube.Decimals}
}

// Token is a transferable token whose holders vote only once they delegate.
type Token struct {
	addr   ube.Address
	meta   Metadata
	ledger *votingpower.Ledger
	minted *solidity.Raw[bool]
}

func New(addr ube.Address, st *state.State, meta Metadata, chainID uint64) *Token {
	ctx := solidity.NewContext(addr, st)
	return &Token{
		addr:   addr,
		meta:   meta,
		ledger: votingpower.New(ctx, meta.Name, chainID, votingpower.WithoutImplicitDelegation()),
		minted: solidity.NewRaw[bool](ctx, solidity.Slot("token.minted")),
	}
}

func (t *Token) Address() ube.Address           { return t.addr }
func (t *Token) Metadata() Metadata             { return t.meta }
func (t *Token) Ledger() *votingpower.Ledger    { return t.ledger }
func (t *Token) TotalSupply() (*big.Int, error) { return t.ledger.TotalVotingPower() }
func (t *Token) Delegates(account ube.Address) (ube.Address, error) {
	return t.ledger.Delegates(account)
}

// Mint creates the whole supply for holder. It can only run once.
func (t *Token) Mint(env *xenv.Environment, holder ube.Address, supply *big.Int) error {
	_, minted, err := t.minted.Get()
	if err != nil {
		return err
	}
	if minted {
		return ErrAlreadyMinted
	}
	if err := t.minted.Set(true); err != nil {
		return err
	}
	if err := t.ledger.Mint(env, holder, supply); err != nil {
		return errors.WithMessage(err, "mint supply")
	}
	logger.Info("minted supply", "holder", holder, "supply", supply)
	return nil
}

// Transfer moves amount from the caller to to.
func (t *Token) Transfer(env *xenv.Environment, to ube.Address, amount *big.Int) error {
	return t.ledger.Transfer(env, env.Caller(), to, amount)
}

func (t *Token) BalanceOf(_ *xenv.Environment, account ube.Address) (*big.Int, error) {
	return t.ledger.BalanceOf(account)
}

// Delegate points the caller's votes to delegatee.
func (t *Token) Delegate(env *xenv.Environment, delegatee ube.Address) error {
	return t.ledger.Delegate(env, env.Caller(), delegatee)
}

func (t *Token) GetCurrentVotes(account ube.Address) (*big.Int, error) {
	return t.ledger.GetCurrentVotes(account)
}

func (t *Token) GetPriorVotes(env *xenv.Environment, account ube.Address, block uint32) (*big.Int, error) {
	return t.ledger.GetPriorVotes(env, account, block)
}
