// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package release implements the linear release engine: a non-transferable voting
// token backed one to one by tokens in custody, unlocked linearly over a schedule.
package release

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/ubeswap/release/builtin/checkpoints"
	"github.com/ubeswap/release/builtin/reverts"
	"github.com/ubeswap/release/builtin/solidity"
	"github.com/ubeswap/release/builtin/votingpower"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/metrics"
	"github.com/ubeswap/release/state"
	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

var (
	ErrNotOwner          = reverts.New("caller is not the owner")
	ErrNewOwnerZero      = reverts.New("new owner is the zero address")
	ErrLengthMismatch    = reverts.New("length mismatch")
	ErrBatchTooLarge     = reverts.New("max 20 holders at initial allocation")
	ErrOverallocated     = reverts.New("overallocated")
	ErrNegativeAmount    = votingpower.ErrNegativeAmount
	ErrZeroAddress       = votingpower.ErrZeroAddressRecipient
	ErrAlreadyDeployed   = errors.New("release: already deployed")
	ErrNotDeployed       = errors.New("release: not deployed")
	ErrInvalidParameters = errors.New("release: invalid parameters")
)

var (
	logger = log.WithContext("pkg", "release")

	metricAllocated = metrics.LazyLoadCounter("release_allocations_count")
	metricClaimed   = metrics.LazyLoadCounter("release_claims_count")
)

// Release is the vesting allocation engine.
type Release struct {
	addr   ube.Address
	meta   Metadata
	token  Token
	ledger *votingpower.Ledger

	owner          *solidity.Address
	totalAmount    *solidity.Uint256
	totalAllocated *solidity.Uint256
	totalClaimed   *solidity.Uint256
	schedule       *solidity.Raw[Schedule]
	allocated      *solidity.Mapping[ube.Address, *big.Int]
	claimed        *solidity.Mapping[ube.Address, *big.Int]
}

// New binds a release engine at addr to st. Deploy must run once before use.
func New(addr ube.Address, st *state.State, token Token, meta Metadata, chainID uint64) *Release {
	ctx := solidity.NewContext(addr, st)
	return &Release{
		addr:           addr,
		meta:           meta,
		token:          token,
		ledger:         votingpower.New(ctx, meta.Name, chainID),
		owner:          solidity.NewAddress(ctx, solidity.Slot("release.owner")),
		totalAmount:    solidity.NewUint256(ctx, solidity.Slot("release.totalAmount")),
		totalAllocated: solidity.NewUint256(ctx, solidity.Slot("release.totalAllocated")),
		totalClaimed:   solidity.NewUint256(ctx, solidity.Slot("release.totalClaimed")),
		schedule:       solidity.NewRaw[Schedule](ctx, solidity.Slot("release.schedule")),
		allocated:      solidity.NewMapping[ube.Address, *big.Int](ctx, solidity.Slot("release.allocated")),
		claimed:        solidity.NewMapping[ube.Address, *big.Int](ctx, solidity.Slot("release.claimed")),
	}
}

func (r *Release) Address() ube.Address        { return r.addr }
func (r *Release) Metadata() Metadata          { return r.meta }
func (r *Release) Token() Token                { return r.token }
func (r *Release) Ledger() *votingpower.Ledger { return r.ledger }

// Deploy stores the parameters and allocates the initial holders, at most
// ube.MaxAllocationBatch of them.
func (r *Release) Deploy(env *xenv.Environment, p Params) error {
	if _, deployed, err := r.schedule.Get(); err != nil {
		return err
	} else if deployed {
		return ErrAlreadyDeployed
	}
	if err := p.Schedule.Validate(); err != nil {
		return errors.Wrap(ErrInvalidParameters, err.Error())
	}
	if p.Owner.IsZero() {
		return errors.Wrap(ErrInvalidParameters, "zero owner")
	}
	if p.TotalAmount == nil || p.TotalAmount.Sign() < 0 {
		return errors.Wrap(ErrInvalidParameters, "negative total amount")
	}
	if len(p.Holders) > ube.MaxAllocationBatch {
		return ErrBatchTooLarge
	}

	if err := r.schedule.Set(p.Schedule); err != nil {
		return err
	}
	r.totalAmount.Set(p.TotalAmount)
	r.owner.Set(p.Owner)
	env.Log(&OwnershipTransferred{NewOwner: p.Owner})

	for _, h := range p.Holders {
		if err := r.allocate(env, h.Address, h.Amount); err != nil {
			return errors.WithMessagef(err, "initial holder %v", h.Address)
		}
	}
	logger.Info("deployed", "address", r.addr, "owner", p.Owner, "total", p.TotalAmount, "holders", len(p.Holders))
	return nil
}

func (r *Release) onlyOwner(env *xenv.Environment) error {
	owner, err := r.owner.Get()
	if err != nil {
		return err
	}
	if owner.IsZero() {
		return ErrNotDeployed
	}
	if env.Caller() != owner {
		return ErrNotOwner
	}
	return nil
}

// Owner returns the account allowed to allocate.
func (r *Release) Owner() (ube.Address, error) {
	return r.owner.Get()
}

// TransferOwnership hands the owner role to newOwner.
func (r *Release) TransferOwnership(env *xenv.Environment, newOwner ube.Address) error {
	if err := r.onlyOwner(env); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return ErrNewOwnerZero
	}
	r.owner.Set(newOwner)
	env.Log(&OwnershipTransferred{PreviousOwner: env.Caller(), NewOwner: newOwner})
	return nil
}

// Allocate grants amounts[i] to recipients[i]. Only the owner may call it, and
// either every entry applies or none does.
func (r *Release) Allocate(env *xenv.Environment, recipients []ube.Address, amounts []*big.Int) error {
	if err := r.onlyOwner(env); err != nil {
		return err
	}
	if len(recipients) != len(amounts) {
		return ErrLengthMismatch
	}
	if len(recipients) > ube.MaxAllocationBatch {
		return ErrBatchTooLarge
	}
	for i, recipient := range recipients {
		if err := r.allocate(env, recipient, amounts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Release) allocate(env *xenv.Environment, recipient ube.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if recipient.IsZero() {
		return ErrZeroAddress
	}

	lifetime, err := r.allocated.Get(recipient)
	if err != nil {
		return err
	}
	if err := r.allocated.Set(recipient, lifetime.Add(lifetime, amount)); err != nil {
		return err
	}

	total, err := r.totalAllocated.Get()
	if err != nil {
		return err
	}
	total.Add(total, amount)
	ceiling, err := r.totalAmount.Get()
	if err != nil {
		return err
	}
	if total.Cmp(ceiling) > 0 {
		return ErrOverallocated
	}
	r.totalAllocated.Set(total)

	if err := r.ledger.Mint(env, recipient, amount); err != nil {
		return err
	}
	env.Log(&Allocated{Recipient: recipient, Amount: new(big.Int).Set(amount)})

	metricAllocated().Add(1)
	logger.Info("allocated", "recipient", recipient, "amount", amount)
	return nil
}

// Schedule returns the unlock window.
func (r *Release) Schedule() (Schedule, error) {
	s, deployed, err := r.schedule.Get()
	if err != nil {
		return Schedule{}, err
	}
	if !deployed {
		return Schedule{}, ErrNotDeployed
	}
	return s, nil
}

// Earned returns how much of the lifetime allocation of account is unlocked,
// claimed or not.
func (r *Release) Earned(env *xenv.Environment, account ube.Address) (*big.Int, error) {
	s, err := r.Schedule()
	if err != nil {
		return nil, err
	}
	allocated, err := r.allocated.Get(account)
	if err != nil {
		return nil, err
	}
	return s.Vested(allocated, env.BlockContext().Time), nil
}

// ReleasableSupply returns what account can claim right now.
func (r *Release) ReleasableSupply(env *xenv.Environment, account ube.Address) (*big.Int, error) {
	earned, err := r.Earned(env, account)
	if err != nil {
		return nil, err
	}
	claimed, err := r.claimed.Get(account)
	if err != nil {
		return nil, err
	}
	// late allocations are vested from start, so earned never drops below claimed
	return earned.Sub(earned, claimed), nil
}

// Claim pays account everything releasable. Anyone may trigger it; the tokens
// always go to account. Nothing releasable is a silent no-op.
func (r *Release) Claim(env *xenv.Environment, account ube.Address) (*big.Int, error) {
	delta, err := r.ReleasableSupply(env, account)
	if err != nil {
		return nil, err
	}
	if delta.Sign() <= 0 {
		return new(big.Int), nil
	}

	claimed, err := r.claimed.Get(account)
	if err != nil {
		return nil, err
	}
	if err := r.claimed.Set(account, claimed.Add(claimed, delta)); err != nil {
		return nil, err
	}
	if err := r.totalClaimed.Add(delta); err != nil {
		return nil, err
	}
	if err := r.ledger.Burn(env, account, delta); err != nil {
		return nil, err
	}
	if err := r.token.Transfer(env.Call(r.token.Address()), account, delta); err != nil {
		return nil, errors.WithMessage(err, "pay out")
	}
	env.Log(&Claimed{Account: account, Amount: new(big.Int).Set(delta)})

	metricClaimed().Add(1)
	logger.Info("claimed", "account", account, "amount", delta)
	return delta, nil
}

// Delegate points the caller's votes to delegatee.
func (r *Release) Delegate(env *xenv.Environment, delegatee ube.Address) error {
	return r.ledger.Delegate(env, env.Caller(), delegatee)
}

// DelegateBySig delegates on behalf of account with its signature.
func (r *Release) DelegateBySig(env *xenv.Environment, account, delegatee ube.Address, nonce, expiry uint64, sig []byte) error {
	return r.ledger.DelegateBySig(env, account, delegatee, nonce, expiry, sig)
}

func (r *Release) GetCurrentVotes(account ube.Address) (*big.Int, error) {
	return r.ledger.GetCurrentVotes(account)
}

func (r *Release) GetPriorVotes(env *xenv.Environment, account ube.Address, block uint32) (*big.Int, error) {
	return r.ledger.GetPriorVotes(env, account, block)
}

func (r *Release) Checkpoints(account ube.Address) ([]*checkpoints.Checkpoint, error) {
	return r.ledger.Checkpoints(account)
}

// BalanceOf returns allocated minus claimed for account.
func (r *Release) BalanceOf(account ube.Address) (*big.Int, error) {
	return r.ledger.BalanceOf(account)
}

// TotalSupply returns the sum of all unclaimed allocations.
func (r *Release) TotalSupply() (*big.Int, error) {
	return r.ledger.TotalVotingPower()
}

func (r *Release) TotalVotingPower() (*big.Int, error) {
	return r.ledger.TotalVotingPower()
}

// TotalAmount returns the allocation ceiling.
func (r *Release) TotalAmount() (*big.Int, error) {
	return r.totalAmount.Get()
}

func (r *Release) TotalAllocated() (*big.Int, error) {
	return r.totalAllocated.Get()
}

func (r *Release) TotalClaimed() (*big.Int, error) {
	return r.totalClaimed.Get()
}

func (r *Release) LifetimeTotalAllocated(account ube.Address) (*big.Int, error) {
	return r.allocated.Get(account)
}

// TotalClaimedBy returns the lifetime claimed amount of account.
func (r *Release) TotalClaimedBy(account ube.Address) (*big.Int, error) {
	return r.claimed.Get(account)
}

// Custody returns the underlying tokens held by the engine.
func (r *Release) Custody(env *xenv.Environment) (*big.Int, error) {
	return r.token.BalanceOf(env.Call(r.token.Address()), r.addr)
}

// Nonces returns the next DelegateBySig nonce of account.
func (r *Release) Nonces(account ube.Address) (uint64, error) {
	return r.ledger.Nonces(account)
}

func (r *Release) Delegates(account ube.Address) (ube.Address, error) {
	return r.ledger.Delegates(account)
}
