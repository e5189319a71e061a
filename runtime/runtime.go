// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/ubeswap/release/builtin/reverts"
	"github.com/ubeswap/release/chain"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/metrics"
	"github.com/ubeswap/release/state"
	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metricCallDuration = metrics.LazyLoadHistogramVec("runtime_call_duration_us", []string{"method"}, metrics.BucketCallMicros)
	metricReverts      = metrics.LazyLoadCounterVec("runtime_reverts_count", []string{"method", "reason"})
	metricBlocks       = metrics.LazyLoadCounter("runtime_sealed_blocks_count")
)

// Receipt is the outcome of a committed call.
type Receipt struct {
	Method      string
	BlockNumber uint32
	BlockTime   uint64
	Caller      ube.Address
	Contract    ube.Address
	Logs        []*xenv.Log
}

// Runtime is the single serialization point of all builtin contracts sharing a state.
// Calls run one at a time inside a state checkpoint: an error rolls back every write
// and drops every event of the call, success flushes the writes in one batch.
// Views run concurrently with each other.
type Runtime struct {
	mu       sync.RWMutex
	state    *state.State
	chain    *chain.Chain
	interval uint64

	receiptFeed event.Feed
	scope       event.SubscriptionScope
}

// New create a runtime over st, taking block contexts from c.
// blockInterval is the number of seconds between mined blocks.
func New(st *state.State, c *chain.Chain, blockInterval uint64) *Runtime {
	return &Runtime{
		state:    st,
		chain:    c,
		interval: blockInterval,
	}
}

// State returns the shared state, for binding contract storage.
func (rt *Runtime) State() *state.State { return rt.state }

// Pending returns the context of the block being built.
func (rt *Runtime) Pending() xenv.BlockContext {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.chain.Pending()
}

// Exec runs fn as a call from caller to the contract at to.
func (rt *Runtime) Exec(method string, caller, to ube.Address, fn func(env *xenv.Environment) error) (*Receipt, error) {
	receipt, err := rt.exec(method, caller, to, fn)
	if err != nil {
		return nil, err
	}
	rt.receiptFeed.Send(receipt)
	return receipt, nil
}

func (rt *Runtime) exec(method string, caller, to ube.Address, fn func(env *xenv.Environment) error) (*Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	defer func() {
		metricCallDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"method": method})
	}()

	bc := rt.chain.Pending()
	env := xenv.New(rt.state, &bc, caller, to)

	checkpoint := rt.state.NewCheckpoint()
	if err := fn(env); err != nil {
		rt.state.RevertTo(checkpoint)

		reason, ok := reverts.Reason(err)
		if !ok {
			reason = "error"
			logger.Warn("call failed", "method", method, "caller", caller, "err", err)
		} else {
			logger.Debug("call reverted", "method", method, "caller", caller, "reason", reason)
		}
		metricReverts().AddWithLabel(1, map[string]string{"method": method, "reason": reason})
		return nil, err
	}
	if err := rt.state.Commit(); err != nil {
		rt.state.RevertTo(checkpoint)
		return nil, errors.WithMessage(err, "commit")
	}

	logger.Debug("call committed", "method", method, "caller", caller, "block", bc.Number, "logs", len(env.Logs()))
	return &Receipt{
		Method:      method,
		BlockNumber: bc.Number,
		BlockTime:   bc.Time,
		Caller:      caller,
		Contract:    to,
		Logs:        env.Logs(),
	}, nil
}

// View runs fn as a read-only call to the contract at to. fn must not write state.
func (rt *Runtime) View(to ube.Address, fn func(env *xenv.Environment) error) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	bc := rt.chain.Pending()
	return fn(xenv.New(rt.state, &bc, ube.Address{}, to))
}

// Mine seals the pending block. The next block opens one interval later, or at
// minTime if that is later.
func (rt *Runtime) Mine(minTime uint64) (xenv.BlockContext, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	sealed, err := rt.chain.Mine(rt.interval, minTime)
	if err != nil {
		return xenv.BlockContext{}, err
	}
	metricBlocks().Add(1)
	return sealed, nil
}

// IncreaseTime moves the pending block time forward.
func (rt *Runtime) IncreaseTime(seconds uint64) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	return rt.chain.IncreaseTime(seconds)
}

// SubscribeReceipts delivers the receipt of every committed call to ch.
func (rt *Runtime) SubscribeReceipts(ch chan *Receipt) event.Subscription {
	return rt.scope.Track(rt.receiptFeed.Subscribe(ch))
}

// Close unsubscribes all receipt subscribers.
func (rt *Runtime) Close() {
	rt.scope.Close()
}
