// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co holds goroutine helpers.
package co

import "sync"

// Goes tracks background routines so their owner can wait for them on shutdown.
type Goes struct {
	wg sync.WaitGroup
}

func (g *Goes) Go(f func()) { g.wg.Go(f) }

func (g *Goes) Wait() { g.wg.Wait() }

// Done is closed once every routine started so far has returned.
func (g *Goes) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	return done
}
