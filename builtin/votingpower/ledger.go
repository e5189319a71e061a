// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package votingpower

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/ubeswap/release/builtin/checkpoints"
	"github.com/ubeswap/release/builtin/reverts"
	"github.com/ubeswap/release/builtin/solidity"
	"github.com/ubeswap/release/cache"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/metrics"
	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

var (
	ErrInsufficientBalance  = reverts.New("insufficient balance")
	ErrZeroAddressRecipient = reverts.New("cannot mint to the zero address")
	ErrInvalidSignature     = reverts.New("invalid signature")
	ErrInvalidNonce         = reverts.New("invalid nonce")
	ErrSignatureExpired     = reverts.New("signature expired")
	ErrNegativeAmount       = reverts.New("negative amount")

	// ErrUnsettledIndex is returned by GetPriorVotes for the pending block or later.
	ErrUnsettledIndex = checkpoints.UnsettledIndex
)

const priorVotesCacheSize = 4096

var (
	logger = log.WithContext("pkg", "votingpower")

	metricDelegations = metrics.LazyLoadCounterVec("votingpower_delegations_count", []string{"kind"})
)

type priorKey struct {
	account ube.Address
	block   uint32
}

// Ledger tracks balances, delegates and the vote history of delegates.
//
// Delegation is a single lookup: an account's balance counts for its
// effective delegate only, never for whoever that delegate delegates to.
type Ledger struct {
	ctx          *solidity.Context
	name         string
	chainID      uint64
	implicitSelf bool

	balances  *solidity.Mapping[ube.Address, *big.Int]
	delegates *solidity.Mapping[ube.Address, ube.Address]
	nonces    *solidity.Mapping[ube.Address, uint64]
	total     *solidity.Uint256
	votes     *checkpoints.Store

	priorVotes *cache.LRU[priorKey, *big.Int]
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithoutImplicitDelegation makes undelegated balances carry no votes until the
// holder delegates, self-delegation included.
func WithoutImplicitDelegation() Option {
	return func(l *Ledger) { l.implicitSelf = false }
}

// New creates a ledger stored in the contract of ctx. name and chainID form the
// typed-data domain used by DelegateBySig.
func New(ctx *solidity.Context, name string, chainID uint64, opts ...Option) *Ledger {
	priorVotes, _ := cache.NewLRU[priorKey, *big.Int](priorVotesCacheSize)
	l := &Ledger{
		ctx:          ctx,
		name:         name,
		chainID:      chainID,
		implicitSelf: true,
		balances:     solidity.NewMapping[ube.Address, *big.Int](ctx, solidity.Slot("votingpower.balances")),
		delegates:    solidity.NewMapping[ube.Address, ube.Address](ctx, solidity.Slot("votingpower.delegates")),
		nonces:       solidity.NewMapping[ube.Address, uint64](ctx, solidity.Slot("votingpower.nonces")),
		total:        solidity.NewUint256(ctx, solidity.Slot("votingpower.total")),
		votes:        checkpoints.New(ctx, "votingpower.votes"),
		priorVotes:   priorVotes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Address returns the contract address of the ledger.
func (l *Ledger) Address() ube.Address { return l.ctx.Address() }

// Name returns the name used in the typed-data domain.
func (l *Ledger) Name() string { return l.name }

// DomainSeparator returns the typed-data domain of DelegateBySig.
func (l *Ledger) DomainSeparator() ube.Bytes32 {
	return DomainSeparator(l.name, l.chainID, l.ctx.Address())
}

func (l *Ledger) BalanceOf(account ube.Address) (*big.Int, error) {
	return l.balances.Get(account)
}

// Delegates returns the stored delegate of account, zero when never set.
func (l *Ledger) Delegates(account ube.Address) (ube.Address, error) {
	return l.delegates.Get(account)
}

// Nonces returns the next DelegateBySig nonce of account.
func (l *Ledger) Nonces(account ube.Address) (uint64, error) {
	return l.nonces.Get(account)
}

// TotalVotingPower returns the sum of all balances.
func (l *Ledger) TotalVotingPower() (*big.Int, error) {
	return l.total.Get()
}

// GetCurrentVotes returns the votes delegated to account right now.
func (l *Ledger) GetCurrentVotes(account ube.Address) (*big.Int, error) {
	return l.votes.CurrentValue(account)
}

// GetPriorVotes returns the votes delegated to account at the end of block.
func (l *Ledger) GetPriorVotes(env *xenv.Environment, account ube.Address, block uint32) (*big.Int, error) {
	if block >= env.BlockContext().Number {
		return nil, ErrUnsettledIndex
	}
	// sealed blocks never change, so their answers can be cached
	v, err := l.priorVotes.GetOrLoad(priorKey{account, block}, func(k priorKey) (*big.Int, error) {
		return l.votes.QueryAt(k.account, k.block, env.BlockContext().Number)
	})
	if err != nil {
		return nil, err
	}
	if moved, hit, miss := l.priorVotes.Stats().Stats(); moved {
		logger.Debug("prior votes cache", "hit", hit, "miss", miss)
	}
	return new(big.Int).Set(v), nil
}

// Checkpoints returns the vote history of account.
func (l *Ledger) Checkpoints(account ube.Address) ([]*checkpoints.Checkpoint, error) {
	n, err := l.votes.Count(account)
	if err != nil {
		return nil, err
	}
	out := make([]*checkpoints.Checkpoint, 0, n)
	for i := uint32(0); i < n; i++ {
		cp, err := l.votes.At(account, i)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// effectiveDelegate resolves who receives the votes of account given its stored delegate.
func (l *Ledger) effectiveDelegate(account, stored ube.Address) ube.Address {
	if stored.IsZero() && l.implicitSelf {
		return account
	}
	return stored
}

func (l *Ledger) delegateOf(account ube.Address) (ube.Address, error) {
	stored, err := l.delegates.Get(account)
	if err != nil {
		return ube.Address{}, err
	}
	return l.effectiveDelegate(account, stored), nil
}

// Mint credits amount to account and to its delegate's votes.
func (l *Ledger) Mint(env *xenv.Environment, to ube.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if to.IsZero() {
		return ErrZeroAddressRecipient
	}
	if err := l.addBalance(to, amount); err != nil {
		return err
	}
	if err := l.total.Add(amount); err != nil {
		return err
	}
	dst, err := l.delegateOf(to)
	if err != nil {
		return err
	}
	if err := l.moveVotes(env, ube.Address{}, dst, amount); err != nil {
		return err
	}
	env.Log(&Transfer{From: ube.Address{}, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// Burn debits amount from account and from its delegate's votes.
func (l *Ledger) Burn(env *xenv.Environment, from ube.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if err := l.subBalance(from, amount); err != nil {
		return err
	}
	if err := l.total.Sub(amount); err != nil {
		return err
	}
	src, err := l.delegateOf(from)
	if err != nil {
		return err
	}
	if err := l.moveVotes(env, src, ube.Address{}, amount); err != nil {
		return err
	}
	env.Log(&Transfer{From: from, To: ube.Address{}, Amount: new(big.Int).Set(amount)})
	return nil
}

// Transfer moves amount between two accounts together with the votes it carries.
func (l *Ledger) Transfer(env *xenv.Environment, from, to ube.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if to.IsZero() {
		return ErrZeroAddressRecipient
	}
	if err := l.subBalance(from, amount); err != nil {
		return err
	}
	if err := l.addBalance(to, amount); err != nil {
		return err
	}
	src, err := l.delegateOf(from)
	if err != nil {
		return err
	}
	dst, err := l.delegateOf(to)
	if err != nil {
		return err
	}
	if err := l.moveVotes(env, src, dst, amount); err != nil {
		return err
	}
	env.Log(&Transfer{From: from, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

func (l *Ledger) addBalance(account ube.Address, amount *big.Int) error {
	bal, err := l.balances.Get(account)
	if err != nil {
		return err
	}
	return l.balances.Set(account, bal.Add(bal, amount))
}

func (l *Ledger) subBalance(account ube.Address, amount *big.Int) error {
	bal, err := l.balances.Get(account)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return l.balances.Set(account, bal.Sub(bal, amount))
}

// Delegate points the votes of account to delegatee. In implicit mode the zero
// address resets the delegation to the account itself.
func (l *Ledger) Delegate(env *xenv.Environment, account, delegatee ube.Address) error {
	if err := l.delegate(env, account, delegatee); err != nil {
		return err
	}
	metricDelegations().AddWithLabel(1, map[string]string{"kind": "direct"})
	return nil
}

func (l *Ledger) delegate(env *xenv.Environment, account, delegatee ube.Address) error {
	stored, err := l.delegates.Get(account)
	if err != nil {
		return err
	}
	if stored == delegatee {
		return nil
	}
	if err := l.delegates.Set(account, delegatee); err != nil {
		return err
	}
	env.Log(&DelegateChanged{Delegator: account, FromDelegate: stored, ToDelegate: delegatee})

	bal, err := l.balances.Get(account)
	if err != nil {
		return err
	}
	src := l.effectiveDelegate(account, stored)
	dst := l.effectiveDelegate(account, delegatee)
	logger.Debug("delegate", "account", account, "from", src, "to", dst, "balance", bal)
	return l.moveVotes(env, src, dst, bal)
}

// DelegateBySig runs Delegate on behalf of account, authorized by a typed-data
// signature over (delegatee, nonce, expiry).
func (l *Ledger) DelegateBySig(env *xenv.Environment, account, delegatee ube.Address, nonce, expiry uint64, sig []byte) error {
	signer, err := recoverSigner(DelegationDigest(l.DomainSeparator(), delegatee, nonce, expiry), sig)
	if err != nil || signer != account || signer.IsZero() {
		return ErrInvalidSignature
	}
	expected, err := l.nonces.Get(account)
	if err != nil {
		return err
	}
	if nonce != expected {
		return ErrInvalidNonce
	}
	if env.BlockContext().Time > expiry {
		return ErrSignatureExpired
	}
	if err := l.nonces.Set(account, expected+1); err != nil {
		return err
	}
	if err := l.delegate(env, account, delegatee); err != nil {
		return err
	}
	metricDelegations().AddWithLabel(1, map[string]string{"kind": "signed"})
	return nil
}

// moveVotes writes one checkpoint for each non-zero side of the move.
func (l *Ledger) moveVotes(env *xenv.Environment, src, dst ube.Address, amount *big.Int) error {
	if src == dst || amount.Sign() == 0 {
		return nil
	}
	block := env.BlockContext().Number
	if !src.IsZero() {
		old, err := l.votes.CurrentValue(src)
		if err != nil {
			return err
		}
		if old.Cmp(amount) < 0 {
			return errors.Errorf("votingpower: votes of %v underflow", src)
		}
		updated := new(big.Int).Sub(old, amount)
		if err := l.votes.Write(src, block, updated); err != nil {
			return err
		}
		env.Log(&DelegateVotesChanged{Delegate: src, PreviousBalance: old, NewBalance: updated})
	}
	if !dst.IsZero() {
		old, err := l.votes.CurrentValue(dst)
		if err != nil {
			return err
		}
		updated := new(big.Int).Add(old, amount)
		if err := l.votes.Write(dst, block, updated); err != nil {
			return err
		}
		env.Log(&DelegateVotesChanged{Delegate: dst, PreviousBalance: old, NewBalance: updated})
	}
	return nil
}
