// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value storage contract shared by the chain
// head and the contract state.
package kv

type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	// IsNotFound reports whether err was returned by Get for a missing key.
	IsNotFound(err error) bool
}

type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Bulk buffers puts until Write applies them in one atomic batch.
type Bulk interface {
	Putter
	Len() int
	Write() error
}

type Store interface {
	Getter
	Putter
	Bulk() Bulk
}

// GetOr reads key, falling back to def when it is absent.
func GetOr(g Getter, key, def []byte) ([]byte, error) {
	val, err := g.Get(key)
	switch {
	case err == nil:
		return val, nil
	case g.IsNotFound(err):
		return def, nil
	default:
		return nil, err
	}
}
