// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoes(t *testing.T) {
	var (
		g     Goes
		count atomic.Int32
	)
	for range 10 {
		g.Go(func() { count.Add(1) })
	}
	g.Wait()
	assert.Equal(t, int32(10), count.Load())

	release := make(chan struct{})
	g.Go(func() { <-release })
	done := g.Done()
	select {
	case <-done:
		t.Fatal("done before routine exits")
	case <-time.After(10 * time.Millisecond):
	}
	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done not closed")
	}
}
