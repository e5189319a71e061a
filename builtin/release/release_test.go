// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package release

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubeswap/release/builtin/token"
	"github.com/ubeswap/release/builtin/votingpower"
	"github.com/ubeswap/release/chain"
	"github.com/ubeswap/release/lvldb"
	"github.com/ubeswap/release/runtime"
	"github.com/ubeswap/release/state"
	"github.com/ubeswap/release/test/datagen"
	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

const (
	genesisTime = uint64(1000)
	startTime   = uint64(2000)
	cliffTime   = uint64(3000)
	endTime     = uint64(12000)
	chainID     = uint64(42220)
)

type fixture struct {
	t     *testing.T
	rt    *runtime.Runtime
	tok   *token.Token
	rel   *Release
	owner ube.Address
}

func newFixture(t *testing.T, total *big.Int, holders ...Holder) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c, err := chain.New(db, xenv.BlockContext{Number: 1, Time: genesisTime})
	require.NoError(t, err)
	st := state.New(db)
	rt := runtime.New(st, c, ube.BlockInterval)
	t.Cleanup(rt.Close)

	owner := datagen.RandAddress()
	tok := token.New(ube.CreateContractAddress(owner, "token"), st, token.DefaultMetadata(), chainID)
	rel := New(ube.CreateContractAddress(owner, "release"), st, tok, DefaultMetadata(), chainID)

	f := &fixture{t: t, rt: rt, tok: tok, rel: rel, owner: owner}
	_, err = rt.Exec("mint", owner, tok.Address(), func(env *xenv.Environment) error {
		if err := tok.Mint(env, owner, ube.Ether(100_000_000)); err != nil {
			return err
		}
		return tok.Transfer(env, rel.Address(), total)
	})
	require.NoError(t, err)
	_, err = rt.Exec("deploy", owner, rel.Address(), func(env *xenv.Environment) error {
		return rel.Deploy(env, Params{
			Owner:       owner,
			TotalAmount: total,
			Schedule:    Schedule{Start: startTime, Cliff: cliffTime, End: endTime},
			Holders:     holders,
		})
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) exec(caller ube.Address, fn func(env *xenv.Environment) error) (*runtime.Receipt, error) {
	return f.rt.Exec("test", caller, f.rel.Address(), fn)
}

func (f *fixture) allocate(recipients []ube.Address, amounts []*big.Int) error {
	_, err := f.exec(f.owner, func(env *xenv.Environment) error {
		return f.rel.Allocate(env, recipients, amounts)
	})
	return err
}

func (f *fixture) claim(account ube.Address) (*big.Int, *runtime.Receipt) {
	var paid *big.Int
	receipt, err := f.exec(datagen.RandAddress(), func(env *xenv.Environment) (err error) {
		paid, err = f.rel.Claim(env, account)
		return
	})
	require.NoError(f.t, err)
	return paid, receipt
}

// setTime moves the pending block forward to ts.
func (f *fixture) setTime(ts uint64) {
	now := f.rt.Pending().Time
	require.LessOrEqual(f.t, now, ts)
	require.NoError(f.t, f.rt.IncreaseTime(ts-now))
}

func (f *fixture) view(fn func(env *xenv.Environment) (*big.Int, error)) *big.Int {
	var v *big.Int
	require.NoError(f.t, f.rt.View(f.rel.Address(), func(env *xenv.Environment) (err error) {
		v, err = fn(env)
		return
	}))
	return v
}

func (f *fixture) releasable(account ube.Address) *big.Int {
	return f.view(func(env *xenv.Environment) (*big.Int, error) { return f.rel.ReleasableSupply(env, account) })
}

func (f *fixture) earned(account ube.Address) *big.Int {
	return f.view(func(env *xenv.Environment) (*big.Int, error) { return f.rel.Earned(env, account) })
}

func (f *fixture) tokenBalance(account ube.Address) *big.Int {
	return f.view(func(env *xenv.Environment) (*big.Int, error) { return f.tok.BalanceOf(env, account) })
}

func (f *fixture) votes(account ube.Address) int64 {
	v, err := f.rel.GetCurrentVotes(account)
	require.NoError(f.t, err)
	return v.Int64()
}

func eventNames(logs []*xenv.Log) []string {
	names := make([]string, 0, len(logs))
	for _, l := range logs {
		names = append(names, l.Event.EventName())
	}
	return names
}

func TestDeploy(t *testing.T) {
	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	f := newFixture(t, big.NewInt(1000),
		Holder{Address: alice, Amount: big.NewInt(600)},
		Holder{Address: bob, Amount: big.NewInt(400)},
	)

	owner, err := f.rel.Owner()
	require.NoError(t, err)
	assert.Equal(t, f.owner, owner)

	s, err := f.rel.Schedule()
	require.NoError(t, err)
	assert.Equal(t, Schedule{Start: startTime, Cliff: cliffTime, End: endTime}, s)

	total, err := f.rel.TotalAllocated()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), total.Int64())
	assert.Equal(t, int64(600), f.votes(alice))
	assert.Equal(t, int64(400), f.votes(bob))

	custody := f.view(f.rel.Custody)
	assert.Equal(t, int64(1000), custody.Int64())

	_, err = f.exec(f.owner, func(env *xenv.Environment) error {
		return f.rel.Deploy(env, Params{Owner: f.owner, TotalAmount: big.NewInt(1), Schedule: s})
	})
	assert.ErrorIs(t, err, ErrAlreadyDeployed)
}

func TestDeployHolderCap(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := state.New(db)
	owner := datagen.RandAddress()
	tok := token.New(datagen.RandAddress(), st, token.DefaultMetadata(), chainID)
	rel := New(datagen.RandAddress(), st, tok, DefaultMetadata(), chainID)
	env := xenv.New(st, &xenv.BlockContext{Number: 1, Time: genesisTime}, owner, rel.Address())

	holders := make([]Holder, ube.MaxAllocationBatch+1)
	for i := range holders {
		holders[i] = Holder{Address: datagen.RandAddress(), Amount: big.NewInt(10)}
	}
	params := Params{
		Owner:       owner,
		TotalAmount: big.NewInt(210),
		Schedule:    Schedule{Start: startTime, Cliff: cliffTime, End: endTime},
		Holders:     holders,
	}

	assert.ErrorIs(t, rel.Deploy(env, params), ErrBatchTooLarge)
	_, err = rel.Schedule()
	assert.ErrorIs(t, err, ErrNotDeployed)

	params.Holders = holders[:ube.MaxAllocationBatch]
	require.NoError(t, rel.Deploy(env, params))

	supply, err := rel.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, int64(200), supply.Int64())
	allocated, err := rel.TotalAllocated()
	require.NoError(t, err)
	assert.Equal(t, int64(200), allocated.Int64())
}

func TestDeployInvalidSchedule(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := state.New(db)
	owner := datagen.RandAddress()
	tok := token.New(datagen.RandAddress(), st, token.DefaultMetadata(), chainID)
	rel := New(datagen.RandAddress(), st, tok, DefaultMetadata(), chainID)
	env := xenv.New(st, &xenv.BlockContext{Number: 1, Time: genesisTime}, owner, rel.Address())

	err = rel.Deploy(env, Params{Owner: owner, TotalAmount: big.NewInt(1), Schedule: Schedule{Start: 10, Cliff: 20, End: 20}})
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = rel.Schedule()
	assert.ErrorIs(t, err, ErrNotDeployed)
}

func TestClaimBeforeCliff(t *testing.T) {
	x := datagen.RandAddress()
	f := newFixture(t, big.NewInt(1_000_000))
	require.NoError(t, f.allocate([]ube.Address{x}, []*big.Int{big.NewInt(1_000_000)}))

	for _, ts := range []uint64{genesisTime, startTime, startTime + 500, cliffTime - 1} {
		f.setTime(ts)
		paid, receipt := f.claim(x)
		assert.Equal(t, 0, paid.Sign())
		assert.Empty(t, receipt.Logs)
	}

	claimed, err := f.rel.TotalClaimedBy(x)
	require.NoError(t, err)
	assert.Equal(t, 0, claimed.Sign())

	// at the cliff the accrual counts from start
	f.setTime(cliffTime)
	assert.Equal(t, int64(100_000), f.releasable(x).Int64())
}

func TestClaimAtEnd(t *testing.T) {
	x := datagen.RandAddress()
	f := newFixture(t, big.NewInt(1_000_000))
	f.setTime(startTime)
	require.NoError(t, f.allocate([]ube.Address{x}, []*big.Int{big.NewInt(1_000_000)}))

	f.setTime(endTime)
	assert.Equal(t, int64(1_000_000), f.releasable(x).Int64())

	paid, receipt := f.claim(x)
	assert.Equal(t, int64(1_000_000), paid.Int64())
	assert.Equal(t, int64(1_000_000), f.tokenBalance(x).Int64())
	assert.Equal(t, []string{"DelegateVotesChanged", "Transfer", "Transfer", "Claimed"}, eventNames(receipt.Logs))
	assert.Equal(t, f.tok.Address(), receipt.Logs[2].Address)

	paid, receipt = f.claim(x)
	assert.Equal(t, 0, paid.Sign())
	assert.Empty(t, receipt.Logs)
	assert.Equal(t, int64(1_000_000), f.tokenBalance(x).Int64())

	bal, err := f.rel.BalanceOf(x)
	require.NoError(t, err)
	assert.Equal(t, 0, bal.Sign())
	assert.Equal(t, int64(0), f.votes(x))
	assert.Equal(t, 0, f.view(f.rel.Custody).Sign())
}

func TestClaimInStages(t *testing.T) {
	x := datagen.RandAddress()
	f := newFixture(t, big.NewInt(1000), Holder{Address: x, Amount: big.NewInt(1000)})

	total := new(big.Int)
	for _, ts := range []uint64{cliffTime, 4321, 7777, 11999, endTime, endTime + 100} {
		f.setTime(ts)
		paid, _ := f.claim(x)
		total.Add(total, paid)

		earned := f.earned(x)
		assert.Equal(t, 0, earned.Cmp(total), "claimed everything earned at %d", ts)
		bal, err := f.rel.BalanceOf(x)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), new(big.Int).Add(bal, total).Int64())
	}
	assert.Equal(t, int64(1000), total.Int64())
	assert.Equal(t, int64(1000), f.tokenBalance(x).Int64())

	claimed, err := f.rel.TotalClaimed()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), claimed.Int64())
}

func TestAllocateBatchCap(t *testing.T) {
	f := newFixture(t, big.NewInt(10_000))

	recipients := datagen.RandAddresses(21)
	amounts := make([]*big.Int, 21)
	for i := range amounts {
		amounts[i] = big.NewInt(1)
	}
	assert.ErrorIs(t, f.allocate(recipients, amounts), ErrBatchTooLarge)

	require.NoError(t, f.allocate(recipients[:20], amounts[:20]))
	total, err := f.rel.TotalAllocated()
	require.NoError(t, err)
	assert.Equal(t, int64(20), total.Int64())
}

func TestAllocateErrors(t *testing.T) {
	x, y := datagen.RandAddress(), datagen.RandAddress()
	f := newFixture(t, big.NewInt(100))

	assert.ErrorIs(t, f.allocate([]ube.Address{x, y}, []*big.Int{big.NewInt(1)}), ErrLengthMismatch)
	assert.ErrorIs(t, f.allocate([]ube.Address{{}}, []*big.Int{big.NewInt(1)}), ErrZeroAddress)
	assert.ErrorIs(t, f.allocate([]ube.Address{x}, []*big.Int{big.NewInt(-1)}), ErrNegativeAmount)

	_, err := f.exec(x, func(env *xenv.Environment) error {
		return f.rel.Allocate(env, []ube.Address{x}, []*big.Int{big.NewInt(1)})
	})
	assert.ErrorIs(t, err, ErrNotOwner)

	// the first entry fits, the second does not: nothing applies
	err = f.allocate([]ube.Address{x, y}, []*big.Int{big.NewInt(60), big.NewInt(41)})
	assert.ErrorIs(t, err, ErrOverallocated)
	for _, a := range []ube.Address{x, y} {
		lifetime, err := f.rel.LifetimeTotalAllocated(a)
		require.NoError(t, err)
		assert.Equal(t, 0, lifetime.Sign())
		assert.Equal(t, int64(0), f.votes(a))
	}
	total, err := f.rel.TotalAllocated()
	require.NoError(t, err)
	assert.Equal(t, 0, total.Sign())

	require.NoError(t, f.allocate([]ube.Address{x, y}, []*big.Int{big.NewInt(60), big.NewInt(40)}))
	assert.ErrorIs(t, f.allocate([]ube.Address{x}, []*big.Int{big.NewInt(1)}), ErrOverallocated)
}

func TestAllocateAccumulates(t *testing.T) {
	x := datagen.RandAddress()
	f := newFixture(t, big.NewInt(1000))

	require.NoError(t, f.allocate([]ube.Address{x, x}, []*big.Int{big.NewInt(100), big.NewInt(50)}))
	require.NoError(t, f.allocate([]ube.Address{x}, []*big.Int{big.NewInt(25)}))

	lifetime, err := f.rel.LifetimeTotalAllocated(x)
	require.NoError(t, err)
	assert.Equal(t, int64(175), lifetime.Int64())
	assert.Equal(t, int64(175), f.votes(x))
}

func TestAllocateEvents(t *testing.T) {
	x := datagen.RandAddress()
	f := newFixture(t, big.NewInt(1000))

	receipt, err := f.exec(f.owner, func(env *xenv.Environment) error {
		return f.rel.Allocate(env, []ube.Address{x}, []*big.Int{big.NewInt(7)})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DelegateVotesChanged", "Transfer", "Allocated"}, eventNames(receipt.Logs))

	ev, ok := receipt.Logs[2].Event.(*Allocated)
	require.True(t, ok)
	assert.Equal(t, x, ev.Recipient)
	assert.Equal(t, int64(7), ev.Amount.Int64())
	assert.Equal(t, f.rel.Address(), receipt.Logs[2].Address)
}

func TestLateAllocationVestsFromStart(t *testing.T) {
	x, y := datagen.RandAddress(), datagen.RandAddress()
	f := newFixture(t, big.NewInt(2000), Holder{Address: x, Amount: big.NewInt(1000)})

	f.setTime(startTime + (endTime-startTime)/2)
	require.NoError(t, f.allocate([]ube.Address{y}, []*big.Int{big.NewInt(1000)}))
	assert.Equal(t, int64(500), f.releasable(y).Int64())

	// a fully claimed account becomes claimable again after a new allocation
	f.setTime(endTime)
	paid, _ := f.claim(x)
	assert.Equal(t, int64(1000), paid.Int64())
	assert.Equal(t, 0, f.releasable(x).Sign())

	_, err := f.exec(f.owner, func(env *xenv.Environment) error {
		return f.rel.TransferOwnership(env, y)
	})
	require.NoError(t, err)
	assert.ErrorIs(t, f.allocate([]ube.Address{x}, []*big.Int{big.NewInt(1)}), ErrNotOwner)
}

func TestReallocateAfterFullClaim(t *testing.T) {
	x := datagen.RandAddress()
	f := newFixture(t, big.NewInt(2000), Holder{Address: x, Amount: big.NewInt(1000)})

	f.setTime(endTime)
	paid, _ := f.claim(x)
	assert.Equal(t, int64(1000), paid.Int64())

	require.NoError(t, f.allocate([]ube.Address{x}, []*big.Int{big.NewInt(500)}))
	assert.Equal(t, int64(500), f.releasable(x).Int64())
	paid, _ = f.claim(x)
	assert.Equal(t, int64(500), paid.Int64())
	assert.Equal(t, int64(1500), f.tokenBalance(x).Int64())
}

func TestTransferOwnership(t *testing.T) {
	next := datagen.RandAddress()
	f := newFixture(t, big.NewInt(10))

	_, err := f.exec(next, func(env *xenv.Environment) error {
		return f.rel.TransferOwnership(env, next)
	})
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = f.exec(f.owner, func(env *xenv.Environment) error {
		return f.rel.TransferOwnership(env, ube.Address{})
	})
	assert.ErrorIs(t, err, ErrNewOwnerZero)

	receipt, err := f.exec(f.owner, func(env *xenv.Environment) error {
		return f.rel.TransferOwnership(env, next)
	})
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)
	ev := receipt.Logs[0].Event.(*OwnershipTransferred)
	assert.Equal(t, f.owner, ev.PreviousOwner)
	assert.Equal(t, next, ev.NewOwner)

	_, err = f.exec(next, func(env *xenv.Environment) error {
		return f.rel.Allocate(env, []ube.Address{next}, []*big.Int{big.NewInt(10)})
	})
	require.NoError(t, err)
}

// A delegate that redelegates moves only its own balance; power it received
// from its delegators stays with it.
func TestDelegationMovesOneHop(t *testing.T) {
	x, y, z := datagen.RandAddress(), datagen.RandAddress(), datagen.RandAddress()
	f := newFixture(t, big.NewInt(111),
		Holder{Address: x, Amount: big.NewInt(100)},
		Holder{Address: y, Amount: big.NewInt(10)},
		Holder{Address: z, Amount: big.NewInt(1)},
	)
	delegate := func(from, to ube.Address) {
		_, err := f.exec(from, func(env *xenv.Environment) error { return f.rel.Delegate(env, to) })
		require.NoError(t, err)
	}

	delegate(x, y)
	delegate(y, z)
	assert.Equal(t, int64(100), f.votes(y))
	assert.Equal(t, int64(11), f.votes(z))

	delegate(y, y)
	assert.Equal(t, int64(110), f.votes(y))
	assert.Equal(t, int64(1), f.votes(z))

	d, err := f.rel.Delegates(x)
	require.NoError(t, err)
	assert.Equal(t, y, d)
}

func TestDelegateBySigReplayAndExpiry(t *testing.T) {
	key, x := datagen.RandKey()
	y := datagen.RandAddress()
	f := newFixture(t, big.NewInt(100), Holder{Address: x, Amount: big.NewInt(100)})
	domain := f.rel.Ledger().DomainSeparator()
	expiry := f.rt.Pending().Time + 3600

	sig, err := votingpower.SignDelegation(key, domain, y, 0, expiry)
	require.NoError(t, err)
	bySig := func(nonce, expiry uint64, sig []byte) error {
		_, err := f.exec(datagen.RandAddress(), func(env *xenv.Environment) error {
			return f.rel.DelegateBySig(env, x, y, nonce, expiry, sig)
		})
		return err
	}

	require.NoError(t, bySig(0, expiry, sig))
	assert.Equal(t, int64(100), f.votes(y))
	assert.ErrorIs(t, bySig(0, expiry, sig), votingpower.ErrInvalidNonce)

	nonce, err := f.rel.Nonces(x)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)

	past := f.rt.Pending().Time - 1
	sig, err = votingpower.SignDelegation(key, domain, y, 1, past)
	require.NoError(t, err)
	assert.ErrorIs(t, bySig(1, past, sig), votingpower.ErrSignatureExpired)
}

func TestPriorVotesAcrossClaim(t *testing.T) {
	x := datagen.RandAddress()
	f := newFixture(t, big.NewInt(1000), Holder{Address: x, Amount: big.NewInt(1000)})

	allocatedAt := f.rt.Pending().Number
	_, err := f.rt.Mine(endTime)
	require.NoError(t, err)
	claimedAt := f.rt.Pending().Number

	paid, _ := f.claim(x)
	assert.Equal(t, int64(1000), paid.Int64())
	_, err = f.rt.Mine(0)
	require.NoError(t, err)

	prior := func(block uint32) *big.Int {
		return f.view(func(env *xenv.Environment) (*big.Int, error) { return f.rel.GetPriorVotes(env, x, block) })
	}
	assert.Equal(t, int64(1000), prior(allocatedAt).Int64())
	assert.Equal(t, int64(0), prior(claimedAt).Int64())
	assert.Equal(t, int64(0), prior(allocatedAt-1).Int64())

	err = f.rt.View(f.rel.Address(), func(env *xenv.Environment) error {
		_, err := f.rel.GetPriorVotes(env, x, env.BlockContext().Number)
		return err
	})
	assert.ErrorIs(t, err, votingpower.ErrUnsettledIndex)

	cps, err := f.rel.Checkpoints(x)
	require.NoError(t, err)
	require.Len(t, cps, 2)
	assert.Equal(t, allocatedAt, cps[0].FromBlock)
	assert.Equal(t, claimedAt, cps[1].FromBlock)
}

func TestConservation(t *testing.T) {
	accounts := datagen.RandAddresses(6)
	f := newFixture(t, ube.Ether(1_000_000))

	lifetimeAllocated := make(map[ube.Address]*big.Int)
	lifetimeClaimed := make(map[ube.Address]*big.Int)
	for _, a := range accounts {
		lifetimeAllocated[a] = new(big.Int)
		lifetimeClaimed[a] = new(big.Int)
	}

	check := func() {
		sumBalances, sumVotes, sumUnclaimed := new(big.Int), new(big.Int), new(big.Int)
		for _, a := range accounts {
			bal, err := f.rel.BalanceOf(a)
			require.NoError(t, err)
			sumBalances.Add(sumBalances, bal)
			votes, err := f.rel.GetCurrentVotes(a)
			require.NoError(t, err)
			sumVotes.Add(sumVotes, votes)

			allocated, err := f.rel.LifetimeTotalAllocated(a)
			require.NoError(t, err)
			claimed, err := f.rel.TotalClaimedBy(a)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, allocated.Cmp(lifetimeAllocated[a]), 0)
			assert.GreaterOrEqual(t, claimed.Cmp(lifetimeClaimed[a]), 0)
			lifetimeAllocated[a], lifetimeClaimed[a] = allocated, claimed
			sumUnclaimed.Add(sumUnclaimed, new(big.Int).Sub(allocated, claimed))

			assert.LessOrEqual(t, f.earned(a).Cmp(allocated), 0)
		}
		total, err := f.rel.TotalVotingPower()
		require.NoError(t, err)
		assert.Equal(t, 0, total.Cmp(sumBalances))
		assert.Equal(t, 0, total.Cmp(sumVotes))
		assert.Equal(t, 0, total.Cmp(sumUnclaimed))
	}

	ts := genesisTime
	for round := 0; round < 30; round++ {
		a := accounts[datagen.RandIntN(len(accounts))]
		switch datagen.RandIntN(3) {
		case 0:
			amount := new(big.Int).Mul(datagen.RandAmount(10_000), ube.Ether(1))
			_ = f.allocate([]ube.Address{a}, []*big.Int{amount})
		case 1:
			f.claim(a)
		case 2:
			to := accounts[datagen.RandIntN(len(accounts))]
			_, err := f.exec(a, func(env *xenv.Environment) error { return f.rel.Delegate(env, to) })
			require.NoError(t, err)
		}
		check()

		ts += uint64(datagen.RandIntN(800))
		f.setTime(ts)
		if round%5 == 0 {
			_, err := f.rt.Mine(0)
			require.NoError(t, err)
			ts = f.rt.Pending().Time
		}
	}

	f.setTime(max(ts, endTime))
	for _, a := range accounts {
		f.claim(a)
	}
	check()
	assert.Equal(t, 0, f.view(f.rel.Custody).Cmp(new(big.Int).Sub(ube.Ether(1_000_000), mustTotalClaimed(t, f.rel))))
}

func mustTotalClaimed(t *testing.T, r *Release) *big.Int {
	v, err := r.TotalClaimed()
	require.NoError(t, err)
	return v
}
