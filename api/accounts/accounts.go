// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/ubeswap/release/api/utils"
	"github.com/ubeswap/release/builtin/release"
	"github.com/ubeswap/release/runtime"
	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

type Accounts struct {
	rt  *runtime.Runtime
	rel *release.Release
}

func New(rt *runtime.Runtime, rel *release.Release) *Accounts {
	return &Accounts{
		rt,
		rel,
	}
}

func (a *Accounts) getAccount(addr ube.Address) (*Account, error) {
	acc := &Account{}
	err := a.rt.View(a.rel.Address(), func(env *xenv.Environment) (err error) {
		if acc.Delegate, err = a.rel.Delegates(addr); err != nil {
			return err
		}
		if acc.Nonce, err = a.rel.Nonces(addr); err != nil {
			return err
		}
		balance, err := a.rel.BalanceOf(addr)
		if err != nil {
			return err
		}
		votes, err := a.rel.GetCurrentVotes(addr)
		if err != nil {
			return err
		}
		allocated, err := a.rel.LifetimeTotalAllocated(addr)
		if err != nil {
			return err
		}
		claimed, err := a.rel.TotalClaimedBy(addr)
		if err != nil {
			return err
		}
		earned, err := a.rel.Earned(env, addr)
		if err != nil {
			return err
		}
		token := a.rel.Token()
		tokenBalance, err := token.BalanceOf(env.Call(token.Address()), addr)
		if err != nil {
			return err
		}

		acc.Balance = utils.Amount(balance)
		acc.Votes = utils.Amount(votes)
		acc.LifetimeAllocated = utils.Amount(allocated)
		acc.LifetimeClaimed = utils.Amount(claimed)
		acc.Earned = utils.Amount(earned)
		acc.Releasable = utils.Amount(new(big.Int).Sub(earned, claimed))
		acc.TokenBalance = utils.Amount(tokenBalance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	acc, err := a.getAccount(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (a *Accounts) handleGetVotes(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}

	result := &Votes{}
	err = a.rt.View(a.rel.Address(), func(env *xenv.Environment) error {
		var votes *big.Int
		if s := req.URL.Query().Get("block"); s != "" {
			block, err := utils.ParseBlockNumber(s)
			if err != nil {
				return err
			}
			result.Block = block
			if votes, err = a.rel.GetPriorVotes(env, addr, block); err != nil {
				return err
			}
		} else {
			result.Block = env.BlockContext().Number
			if votes, err = a.rel.GetCurrentVotes(addr); err != nil {
				return err
			}
		}
		result.Votes = utils.Amount(votes)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (a *Accounts) handleGetCheckpoints(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}

	var result []*Checkpoint
	err = a.rt.View(a.rel.Address(), func(*xenv.Environment) error {
		cps, err := a.rel.Checkpoints(addr)
		if err != nil {
			return err
		}
		result = make([]*Checkpoint, 0, len(cps))
		for _, cp := range cps {
			result = append(result, &Checkpoint{FromBlock: cp.FromBlock, Votes: utils.Amount(cp.Votes)})
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (a *Accounts) handleClaim(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}

	var paid *big.Int
	receipt, err := a.rt.Exec("claim", ube.Address{}, a.rel.Address(), func(env *xenv.Environment) (err error) {
		paid, err = a.rel.Claim(env, addr)
		return
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertReceipt(receipt, paid))
}

func (a *Accounts) handleDelegateBySig(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body DelegationRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	receipt, err := a.rt.Exec("delegateBySig", ube.Address{}, a.rel.Address(), func(env *xenv.Environment) error {
		return a.rel.DelegateBySig(env, addr, body.Delegatee, body.Nonce, body.Expiry, body.Signature)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertReceipt(receipt, nil))
}

func convertReceipt(r *runtime.Receipt, amount *big.Int) *Receipt {
	out := &Receipt{
		BlockNumber: r.BlockNumber,
		BlockTime:   r.BlockTime,
		Events:      make([]string, 0, len(r.Logs)),
	}
	if amount != nil {
		out.Amount = utils.Amount(amount)
	}
	for _, l := range r.Logs {
		out.Events = append(out.Events, l.Event.EventName())
	}
	return out
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("accounts_get_account").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/votes").
		Methods(http.MethodGet).
		Name("accounts_get_votes").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetVotes))
	sub.Path("/{address}/checkpoints").
		Methods(http.MethodGet).
		Name("accounts_get_checkpoints").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetCheckpoints))
	sub.Path("/{address}/claim").
		Methods(http.MethodPost).
		Name("accounts_claim").
		HandlerFunc(utils.WrapHandlerFunc(a.handleClaim))
	sub.Path("/{address}/delegation").
		Methods(http.MethodPost).
		Name("accounts_delegate_by_sig").
		HandlerFunc(utils.WrapHandlerFunc(a.handleDelegateBySig))
}
