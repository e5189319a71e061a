// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket is a key prefix partitioning one store between components.
type Bucket string

// Key returns key prefixed by the bucket name.
func (b Bucket) Key(key []byte) []byte {
	k := make([]byte, 0, len(b)+len(key))
	return append(append(k, b...), key...)
}

// NewStore returns a view of src restricted to the bucket.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{b, src}
}

type bucketStore struct {
	bucket Bucket
	src    Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error) { return s.src.Get(s.bucket.Key(key)) }
func (s *bucketStore) Has(key []byte) (bool, error)   { return s.src.Has(s.bucket.Key(key)) }
func (s *bucketStore) IsNotFound(err error) bool      { return s.src.IsNotFound(err) }
func (s *bucketStore) Put(key, val []byte) error      { return s.src.Put(s.bucket.Key(key), val) }
func (s *bucketStore) Delete(key []byte) error        { return s.src.Delete(s.bucket.Key(key)) }

func (s *bucketStore) Bulk() Bulk {
	return &bucketBulk{s.bucket, s.src.Bulk()}
}

type bucketBulk struct {
	bucket Bucket
	Bulk
}

func (b *bucketBulk) Put(key, val []byte) error { return b.Bulk.Put(b.bucket.Key(key), val) }
func (b *bucketBulk) Delete(key []byte) error   { return b.Bulk.Delete(b.bucket.Key(key)) }
