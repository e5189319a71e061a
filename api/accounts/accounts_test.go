// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubeswap/release/api/accounts"
	"github.com/ubeswap/release/api/utils"
	"github.com/ubeswap/release/builtin/votingpower"
	"github.com/ubeswap/release/chain"
	"github.com/ubeswap/release/genesis"
	"github.com/ubeswap/release/lvldb"
	"github.com/ubeswap/release/runtime"
	"github.com/ubeswap/release/state"
	"github.com/ubeswap/release/ube"
)

const launchTime = 1_700_000_000

func initAccountServer(t *testing.T) (*httptest.Server, *runtime.Runtime, *genesis.Genesis) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := genesis.NewDevnet(launchTime)
	c, err := chain.New(db, cfg.Block())
	require.NoError(t, err)
	rt := runtime.New(state.New(db), c, ube.BlockInterval)
	g, err := genesis.Build(rt, cfg)
	require.NoError(t, err)

	router := mux.NewRouter()
	accounts.New(rt, g.Release).Mount(router, "/accounts")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, rt, g
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}


func TestAccount(t *testing.T) {
	ts, _, _ := initAccountServer(t)
	holder := genesis.DevAccounts()[1].Address

	body, status := httpGet(t, ts.URL+"/accounts/"+holder.String())
	require.Equal(t, http.StatusOK, status, string(body))

	var acc accounts.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	million := ube.Ether(1_000_000)
	assert.Equal(t, 0, million.Cmp((*big.Int)(acc.Balance)))
	assert.Equal(t, 0, million.Cmp((*big.Int)(acc.Votes)))
	assert.Equal(t, 0, million.Cmp((*big.Int)(acc.LifetimeAllocated)))
	assert.Equal(t, 0, (*big.Int)(acc.Releasable).Sign())
	assert.Equal(t, 0, (*big.Int)(acc.TokenBalance).Sign())
	assert.Equal(t, uint64(0), acc.Nonce)

	_, status = httpGet(t, ts.URL+"/accounts/0x1234")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestClaim(t *testing.T) {
	ts, rt, g := initAccountServer(t)
	holder := genesis.DevAccounts()[2].Address

	// nothing vested yet
	body, status := httpPost(t, ts.URL+"/accounts/"+holder.String()+"/claim", struct{}{})
	require.Equal(t, http.StatusOK, status, string(body))
	var receipt accounts.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Empty(t, receipt.Events)
	assert.Equal(t, 0, (*big.Int)(receipt.Amount).Sign())

	s, err := g.Release.Schedule()
	require.NoError(t, err)
	require.NoError(t, rt.IncreaseTime(s.End-launchTime))

	body, status = httpPost(t, ts.URL+"/accounts/"+holder.String()+"/claim", struct{}{})
	require.Equal(t, http.StatusOK, status, string(body))
	receipt = accounts.Receipt{}
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Equal(t, 0, ube.Ether(1_000_000).Cmp((*big.Int)(receipt.Amount)))
	assert.Contains(t, receipt.Events, "Claimed")

	body, _ = httpGet(t, ts.URL+"/accounts/"+holder.String())
	var acc accounts.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, 0, ube.Ether(1_000_000).Cmp((*big.Int)(acc.TokenBalance)))
	assert.Equal(t, 0, (*big.Int)(acc.Balance).Sign())
}

func TestVotesAndCheckpoints(t *testing.T) {
	ts, rt, _ := initAccountServer(t)
	holder := genesis.DevAccounts()[3].Address

	// the pending block is not settled
	body, status := httpGet(t, ts.URL+"/accounts/"+holder.String()+"/votes?block=1")
	require.Equal(t, http.StatusBadRequest, status)
	var reverted utils.Reverted
	require.NoError(t, json.Unmarshal(body, &reverted))
	assert.Equal(t, votingpower.ErrUnsettledIndex.Error(), reverted.Reason)

	_, err := rt.Mine(0)
	require.NoError(t, err)

	body, status = httpGet(t, ts.URL+"/accounts/"+holder.String()+"/votes?block=1")
	require.Equal(t, http.StatusOK, status, string(body))
	var votes accounts.Votes
	require.NoError(t, json.Unmarshal(body, &votes))
	assert.Equal(t, uint32(1), votes.Block)
	assert.Equal(t, 0, ube.Ether(1_000_000).Cmp((*big.Int)(votes.Votes)))

	body, status = httpGet(t, ts.URL+"/accounts/"+holder.String()+"/votes")
	require.Equal(t, http.StatusOK, status, string(body))
	votes = accounts.Votes{}
	require.NoError(t, json.Unmarshal(body, &votes))
	assert.Equal(t, uint32(2), votes.Block)

	_, status = httpGet(t, ts.URL+"/accounts/"+holder.String()+"/votes?block=x")
	assert.Equal(t, http.StatusBadRequest, status)

	body, status = httpGet(t, ts.URL+"/accounts/"+holder.String()+"/checkpoints")
	require.Equal(t, http.StatusOK, status, string(body))
	var cps []accounts.Checkpoint
	require.NoError(t, json.Unmarshal(body, &cps))
	require.Len(t, cps, 1)
	assert.Equal(t, uint32(1), cps[0].FromBlock)
}

func TestDelegateBySig(t *testing.T) {
	ts, rt, g := initAccountServer(t)
	dev := genesis.DevAccounts()
	signer, delegatee := dev[1], dev[4]

	expiry := rt.Pending().Time + 60
	sig, err := votingpower.SignDelegation(signer.PrivateKey, g.Release.Ledger().DomainSeparator(), delegatee.Address, 0, expiry)
	require.NoError(t, err)
	req := &accounts.DelegationRequest{Delegatee: delegatee.Address, Nonce: 0, Expiry: expiry, Signature: sig}

	body, status := httpPost(t, ts.URL+"/accounts/"+signer.Address.String()+"/delegation", req)
	require.Equal(t, http.StatusOK, status, string(body))
	var receipt accounts.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Contains(t, receipt.Events, "DelegateChanged")

	votes, err := g.Release.GetCurrentVotes(delegatee.Address)
	require.NoError(t, err)
	assert.Equal(t, 0, ube.Ether(2_000_000).Cmp(votes))

	// replay
	body, status = httpPost(t, ts.URL+"/accounts/"+signer.Address.String()+"/delegation", req)
	require.Equal(t, http.StatusBadRequest, status)
	var reverted utils.Reverted
	require.NoError(t, json.Unmarshal(body, &reverted))
	assert.Equal(t, votingpower.ErrInvalidNonce.Error(), reverted.Reason)
	assert.Equal(t, votingpower.ErrInvalidNonce.Bytes(), []byte(reverted.Data))

	_, status = httpPost(t, ts.URL+"/accounts/"+signer.Address.String()+"/delegation", map[string]any{"unknown": 1})
	assert.Equal(t, http.StatusBadRequest, status)
}
