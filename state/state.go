// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ubeswap/release/kv"
	"github.com/ubeswap/release/stackedmap"
	"github.com/ubeswap/release/ube"
)

// StorageBucket is the kv bucket that holds contract storage.
const StorageBucket = kv.Bucket("s")

// Error wraps a storage access or encoding failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr ube.Address
	key  ube.Bytes32
}

func (k storageKey) dbKey() []byte {
	return append(append(make([]byte, 0, ube.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// State manages contract storage on top of a kv store.
// Changes are kept in a revision stack until Commit flushes them.
type State struct {
	store kv.Store
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New returns a state reading committed storage from db.
func New(db kv.Store) *State {
	s := &State{
		store: StorageBucket.NewStore(db),
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(func(key storageKey) (rlp.RawValue, bool, error) {
		raw, err := kv.GetOr(s.store, key.dbKey(), nil)
		if err != nil {
			return nil, false, err
		}
		return raw, true, nil
	})
}

// GetStorage reads a word slot. RLP list values, used by structured slots,
// read as the hash of their encoding.
func (s *State) GetStorage(addr ube.Address, key ube.Bytes32) (ube.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return ube.Bytes32{}, err
	}
	if len(raw) == 0 {
		return ube.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return ube.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		return ube.Blake2b(raw), nil
	}
	return ube.BytesToBytes32(content), nil
}

// SetStorage writes a word slot, deleting it when value is zero.
func (s *State) SetStorage(addr ube.Address, key, value ube.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns the RLP encoded slot, nil when unset.
func (s *State) GetRawStorage(addr ube.Address, key ube.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

func (s *State) SetRawStorage(addr ube.Address, key ube.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage stores the output of enc.
func (s *State) EncodeStorage(addr ube.Address, key ube.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage feeds the raw slot to dec. dec sees nil for an unset slot.
func (s *State) DecodeStorage(addr ube.Address, key ube.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint opens a revision and returns its number for RevertTo.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo drops every write made since revision was opened.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Dirty reports the number of uncommitted storage writes.
func (s *State) Dirty() int {
	return len(s.sm.Journal())
}

// Commit writes all changes since the last commit into the underlying store in one batch.
// The revision stack is cleared on success; on failure nothing is written and
// the pending changes are kept.
func (s *State) Commit() error {
	journal := s.sm.Journal()
	if len(journal) == 0 {
		return nil
	}

	latest := make(map[storageKey]rlp.RawValue, len(journal))
	order := make([]storageKey, 0, len(journal))
	for _, entry := range journal {
		if _, ok := latest[entry.Key]; !ok {
			order = append(order, entry.Key)
		}
		latest[entry.Key] = entry.Value
	}

	bulk := s.store.Bulk()
	for _, key := range order {
		var err error
		if raw := latest[key]; len(raw) == 0 {
			err = bulk.Delete(key.dbKey())
		} else {
			err = bulk.Put(key.dbKey(), raw)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	s.reset()
	return nil
}
