// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ubeswap/release/state"
	"github.com/ubeswap/release/ube"
)

// Context binds storage slots to a contract address.
type Context struct {
	address ube.Address
	state   *state.State
}

func NewContext(address ube.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() ube.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Slot derives the storage position of a named variable.
func Slot(name string) ube.Bytes32 {
	return ube.Blake2b([]byte(name))
}
