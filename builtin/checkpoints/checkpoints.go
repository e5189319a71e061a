// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package checkpoints

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/ubeswap/release/builtin/reverts"
	"github.com/ubeswap/release/builtin/solidity"
	"github.com/ubeswap/release/ube"
)

// UnsettledIndex is returned when querying a block that can still receive writes.
var UnsettledIndex = reverts.New("not yet determined")

// Checkpoint marks the value held from a given block on.
type Checkpoint struct {
	FromBlock uint32
	Votes     *big.Int
}

type positionKey struct {
	account  ube.Address
	position uint32
}

func (k positionKey) Bytes() []byte {
	b := make([]byte, 0, ube.AddressLength+4)
	b = append(b, k.account[:]...)
	return binary.BigEndian.AppendUint32(b, k.position)
}

// Store keeps an append-only history of values per account, ordered by block.
type Store struct {
	counts *solidity.Mapping[ube.Address, uint32]
	points *solidity.Mapping[positionKey, *Checkpoint]
}

// New creates a store whose slots are derived from name, so that several
// stores can share one contract.
func New(ctx *solidity.Context, name string) *Store {
	return &Store{
		counts: solidity.NewMapping[ube.Address, uint32](ctx, solidity.Slot(name+".counts")),
		points: solidity.NewMapping[positionKey, *Checkpoint](ctx, solidity.Slot(name+".points")),
	}
}

// Count returns the number of checkpoints of account.
func (s *Store) Count(account ube.Address) (uint32, error) {
	return s.counts.Get(account)
}

// At returns the checkpoint of account at position, which must be below Count.
func (s *Store) At(account ube.Address, position uint32) (*Checkpoint, error) {
	cp, err := s.points.Get(positionKey{account, position})
	if err != nil {
		return nil, err
	}
	if cp.Votes == nil {
		cp.Votes = new(big.Int)
	}
	return cp, nil
}

// CurrentValue returns the latest value of account, 0 without history.
func (s *Store) CurrentValue(account ube.Address) (*big.Int, error) {
	n, err := s.Count(account)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return new(big.Int), nil
	}
	cp, err := s.At(account, n-1)
	if err != nil {
		return nil, err
	}
	return cp.Votes, nil
}

// Write records value for account at block. A write at the block of the last
// checkpoint replaces its value. Writing below the last block is an invariant
// violation and fails without touching the history.
func (s *Store) Write(account ube.Address, block uint32, value *big.Int) error {
	if value.Sign() < 0 {
		return errors.Errorf("checkpoint: negative value %v for %v", value, account)
	}
	n, err := s.Count(account)
	if err != nil {
		return err
	}
	if n > 0 {
		last, err := s.At(account, n-1)
		if err != nil {
			return err
		}
		switch {
		case last.FromBlock == block:
			last.Votes = new(big.Int).Set(value)
			return s.points.Set(positionKey{account, n - 1}, last)
		case last.FromBlock > block:
			return errors.Errorf("checkpoint: block %d precedes last checkpoint %d of %v", block, last.FromBlock, account)
		}
	}
	if err := s.points.Set(positionKey{account, n}, &Checkpoint{FromBlock: block, Votes: new(big.Int).Set(value)}); err != nil {
		return err
	}
	return s.counts.Set(account, n+1)
}

// QueryAt returns the value account held at the end of block. pending is the
// block being built; querying it or anything later fails with UnsettledIndex.
func (s *Store) QueryAt(account ube.Address, block, pending uint32) (*big.Int, error) {
	if block >= pending {
		return nil, UnsettledIndex
	}

	n, err := s.Count(account)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return new(big.Int), nil
	}

	last, err := s.At(account, n-1)
	if err != nil {
		return nil, err
	}
	if last.FromBlock <= block {
		return last.Votes, nil
	}

	first, err := s.At(account, 0)
	if err != nil {
		return nil, err
	}
	if first.FromBlock > block {
		return new(big.Int), nil
	}

	// rightmost checkpoint with FromBlock <= block, known to lie in [0, n-1)
	lower, upper := uint32(0), n-1
	for upper > lower {
		center := upper - (upper-lower)/2
		cp, err := s.At(account, center)
		if err != nil {
			return nil, err
		}
		switch {
		case cp.FromBlock == block:
			return cp.Votes, nil
		case cp.FromBlock < block:
			lower = center
		default:
			upper = center - 1
		}
	}
	cp, err := s.At(account, lower)
	if err != nil {
		return nil, err
	}
	return cp.Votes, nil
}
