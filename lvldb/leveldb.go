// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb implements kv.Store on goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/ubeswap/release/kv"
	"github.com/ubeswap/release/metrics"
)

const minCacheMB = 16

var (
	_ kv.Store = (*LevelDB)(nil)

	// every committed call is fsynced before its receipt is published
	syncWrite = &opt.WriteOptions{Sync: true}

	metricBatchWrites = metrics.LazyLoadCounter("lvldb_batch_writes_count")
)

// Options tunes a persistent instance. Zero values pick the minimums.
type Options struct {
	CacheMB   int
	OpenFiles int
}

func (o Options) leveldb() *opt.Options {
	cache := max(o.CacheMB, minCacheMB)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFiles, 16),
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	}
}

type LevelDB struct {
	db *leveldb.DB
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open storage [%v]", path)
	}
	return open(stg, opts)
}

// NewMem opens a database living in memory only.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	db, err := leveldb.Open(stg, opts.leveldb())
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db}, nil
}

func (l *LevelDB) IsNotFound(err error) bool      { return errors.Is(err, leveldb.ErrNotFound) }
func (l *LevelDB) Get(key []byte) ([]byte, error) { return l.db.Get(key, nil) }
func (l *LevelDB) Has(key []byte) (bool, error)   { return l.db.Has(key, nil) }
func (l *LevelDB) Put(key, value []byte) error    { return l.db.Put(key, value, syncWrite) }
func (l *LevelDB) Delete(key []byte) error        { return l.db.Delete(key, syncWrite) }
func (l *LevelDB) Close() error                   { return l.db.Close() }
func (l *LevelDB) Bulk() kv.Bulk                  { return &batch{l.db, new(leveldb.Batch)} }

type batch struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int { return b.b.Len() }

// Write applies the buffered ops atomically and resets the batch for reuse.
func (b *batch) Write() error {
	if b.b.Len() == 0 {
		return nil
	}
	if err := b.db.Write(b.b, syncWrite); err != nil {
		return errors.Wrap(err, "write batch")
	}
	b.b.Reset()
	metricBatchWrites().Add(1)
	return nil
}
