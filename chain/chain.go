// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"math"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/ubeswap/release/kv"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/metrics"
	"github.com/ubeswap/release/xenv"
)

const propsBucket = kv.Bucket("c")

var (
	pendingKey = []byte("pending")

	logger          = log.WithContext("pkg", "chain")
	metricHeadBlock = metrics.LazyLoadGauge("chain_pending_block")
	metricHeadTime  = metrics.LazyLoadGauge("chain_pending_time")
)

// errNotFound is returned when no head was persisted yet.
var errNotFound = errors.New("not found")

// Chain is the source of block contexts. It keeps a single pending block whose
// number indexes checkpoints and whose timestamp drives the release schedule.
// Every block below the pending one is sealed.
type Chain struct {
	props   kv.Store
	mu      sync.RWMutex
	pending xenv.BlockContext
}

// New loads the pending block persisted in db, or starts from genesis when db is fresh.
func New(db kv.Store, genesis xenv.BlockContext) (*Chain, error) {
	c := &Chain{props: propsBucket.NewStore(db)}

	pending, err := loadPending(c.props)
	switch {
	case err == nil:
		c.pending = pending
		logger.Debug("loaded pending block", "number", pending.Number, "time", pending.Time)
	case errors.Is(err, errNotFound):
		if genesis.Number == 0 {
			// block 0 is the genesis itself, building starts at 1
			genesis.Number = 1
		}
		if err := c.persist(genesis); err != nil {
			return nil, err
		}
		c.pending = genesis
	default:
		return nil, err
	}
	c.report()
	return c, nil
}

func loadPending(r kv.Getter) (xenv.BlockContext, error) {
	var bc xenv.BlockContext
	data, err := r.Get(pendingKey)
	if err != nil {
		if r.IsNotFound(err) {
			return bc, errNotFound
		}
		return bc, errors.Wrap(err, "load pending block")
	}
	if err := rlp.DecodeBytes(data, &bc); err != nil {
		return bc, errors.Wrap(err, "decode pending block")
	}
	return bc, nil
}

func (c *Chain) persist(bc xenv.BlockContext) error {
	data, err := rlp.EncodeToBytes(&bc)
	if err != nil {
		return errors.Wrap(err, "encode pending block")
	}
	if err := c.props.Put(pendingKey, data); err != nil {
		return errors.Wrap(err, "save pending block")
	}
	return nil
}

func (c *Chain) report() {
	metricHeadBlock().Set(int64(c.pending.Number))
	metricHeadTime().Set(int64(c.pending.Time))
}

// Pending returns the context of the block being built.
func (c *Chain) Pending() xenv.BlockContext {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending
}

// Mine seals the pending block and opens the next one, one block interval later
// or at minTime if that is later. It returns the sealed block.
func (c *Chain) Mine(interval, minTime uint64) (xenv.BlockContext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending.Number == math.MaxUint32 {
		return xenv.BlockContext{}, errors.New("block number overflow")
	}
	sealed := c.pending
	next := xenv.BlockContext{
		Number: sealed.Number + 1,
		Time:   max(sealed.Time+interval, minTime),
	}
	if err := c.persist(next); err != nil {
		return xenv.BlockContext{}, err
	}
	c.pending = next
	c.report()
	logger.Debug("sealed block", "number", sealed.Number, "time", sealed.Time)
	return sealed, nil
}

// IncreaseTime moves the pending timestamp forward by seconds.
func (c *Chain) IncreaseTime(seconds uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending.Time > math.MaxUint64-seconds {
		return errors.New("block time overflow")
	}
	next := c.pending
	next.Time += seconds
	if err := c.persist(next); err != nil {
		return err
	}
	c.pending = next
	c.report()
	return nil
}
