// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubeswap/release/lvldb"
	"github.com/ubeswap/release/ube"
)

func newState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStateStorage(t *testing.T) {
	st, _ := newState(t)
	addr := ube.BytesToAddress([]byte("contract"))
	key := ube.BytesToBytes32([]byte("key"))

	v, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	value := ube.BytesToBytes32([]byte("value"))
	st.SetStorage(addr, key, value)

	v, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, v)

	// zero value clears the slot
	st.SetStorage(addr, key, ube.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Len(t, raw, 0)
}

func TestStateRevert(t *testing.T) {
	st, _ := newState(t)
	addr := ube.BytesToAddress([]byte("contract"))
	key := ube.BytesToBytes32([]byte("key"))

	st.SetStorage(addr, key, ube.BytesToBytes32([]byte{1}))
	rev := st.NewCheckpoint()
	st.SetStorage(addr, key, ube.BytesToBytes32([]byte{2}))

	v, _ := st.GetStorage(addr, key)
	assert.Equal(t, ube.BytesToBytes32([]byte{2}), v)

	st.RevertTo(rev)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, ube.BytesToBytes32([]byte{1}), v)

	// reverting past the base level keeps the state usable
	st.RevertTo(0)
	v, _ = st.GetStorage(addr, key)
	assert.True(t, v.IsZero())
	st.SetStorage(addr, key, ube.BytesToBytes32([]byte{3}))
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, ube.BytesToBytes32([]byte{3}), v)
}

func TestStateCommit(t *testing.T) {
	st, db := newState(t)
	addr := ube.BytesToAddress([]byte("contract"))
	k1 := ube.BytesToBytes32([]byte("k1"))
	k2 := ube.BytesToBytes32([]byte("k2"))

	assert.NoError(t, st.EncodeStorage(addr, k1, func() ([]byte, error) {
		return rlp.EncodeToBytes(big.NewInt(42))
	}))
	st.SetStorage(addr, k2, ube.BytesToBytes32([]byte{7}))
	st.SetStorage(addr, k2, ube.BytesToBytes32([]byte{8}))
	assert.Equal(t, 3, st.Dirty())

	assert.NoError(t, st.Commit())
	assert.Equal(t, 0, st.Dirty())

	// a fresh state over the same db sees committed values
	other := New(db)
	var n big.Int
	assert.NoError(t, other.DecodeStorage(addr, k1, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &n)
	}))
	assert.Equal(t, int64(42), n.Int64())

	v, err := other.GetStorage(addr, k2)
	assert.NoError(t, err)
	assert.Equal(t, ube.BytesToBytes32([]byte{8}), v)

	// clearing a committed slot deletes it
	other.SetStorage(addr, k2, ube.Bytes32{})
	assert.NoError(t, other.Commit())
	v, err = New(db).GetStorage(addr, k2)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestStateDecodeError(t *testing.T) {
	st, _ := newState(t)
	addr := ube.BytesToAddress([]byte("contract"))
	key := ube.BytesToBytes32([]byte("bad"))

	st.SetRawStorage(addr, key, rlp.RawValue{0xFF})
	var n big.Int
	err := st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &n)
	})
	var stateErr *Error
	assert.ErrorAs(t, err, &stateErr)
}
