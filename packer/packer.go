// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer

import (
	"context"
	"time"

	"github.com/ubeswap/release/co"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/runtime"
	"github.com/ubeswap/release/xenv"
)

var logger = log.WithContext("pkg", "packer")

// Packer seals the pending block on a fixed wall clock interval.
type Packer struct {
	rt       *runtime.Runtime
	interval time.Duration
	now      func() time.Time
}

// New creates a packer sealing a block every interval.
func New(rt *runtime.Runtime, interval time.Duration) *Packer {
	return &Packer{
		rt:       rt,
		interval: interval,
		now:      time.Now,
	}
}

// Pack seals the pending block. The next block opens no earlier than the
// current wall clock time, so vesting follows real time even after idle periods.
func (p *Packer) Pack() (xenv.BlockContext, error) {
	sealed, err := p.rt.Mine(uint64(p.now().Unix()))
	if err != nil {
		return xenv.BlockContext{}, err
	}
	logger.Debug("packed block", "number", sealed.Number, "time", sealed.Time, "next", p.rt.Pending().Number)
	return sealed, nil
}

// Run packs blocks until ctx is done.
func (p *Packer) Run(ctx context.Context) {
	var goes co.Goes
	defer goes.Wait()

	logger.Info("prepared to pack block", "interval", p.interval)
	goes.Go(func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("stopping interval packing service......")
				return
			case <-ticker.C:
				if _, err := p.Pack(); err != nil {
					logger.Error("failed to pack block", "err", err)
				}
			}
		}
	})
}
