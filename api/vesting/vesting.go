// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/ubeswap/release/api/utils"
	"github.com/ubeswap/release/builtin/release"
	"github.com/ubeswap/release/runtime"
	"github.com/ubeswap/release/xenv"
)

type Vesting struct {
	rt  *runtime.Runtime
	rel *release.Release
}

func New(rt *runtime.Runtime, rel *release.Release) *Vesting {
	return &Vesting{
		rt,
		rel,
	}
}

func (v *Vesting) summary() (*Summary, error) {
	s := &Summary{
		Address:  v.rel.Address(),
		Token:    v.rel.Token().Address(),
		Metadata: v.rel.Metadata(),
	}
	err := v.rt.View(v.rel.Address(), func(env *xenv.Environment) (err error) {
		if s.Owner, err = v.rel.Owner(); err != nil {
			return err
		}
		if s.Schedule, err = v.rel.Schedule(); err != nil {
			return err
		}
		amounts := []struct {
			dst  **math.HexOrDecimal256
			load func() (*big.Int, error)
		}{
			{&s.TotalAmount, v.rel.TotalAmount},
			{&s.TotalAllocated, v.rel.TotalAllocated},
			{&s.TotalClaimed, v.rel.TotalClaimed},
			{&s.TotalSupply, v.rel.TotalSupply},
			{&s.TotalVotingPower, v.rel.TotalVotingPower},
			{&s.Custody, func() (*big.Int, error) { return v.rel.Custody(env) }},
		}
		for _, a := range amounts {
			value, err := a.load()
			if err != nil {
				return err
			}
			*a.dst = utils.Amount(value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (v *Vesting) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	s, err := v.summary()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, s)
}

func (v *Vesting) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodGet).
		Name("release_get_summary").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetSummary))
}
