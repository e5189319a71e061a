// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/ubeswap/release/state"
	"github.com/ubeswap/release/ube"
)

// BlockContext block context.
type BlockContext struct {
	Number uint32 `json:"number"`
	Time   uint64 `json:"timestamp"`
}

// Event is an observation emitted by a builtin contract.
type Event interface {
	EventName() string
}

// Indexed is implemented by events with accounts that logs can be filtered by,
// in the order of their indexed positions.
type Indexed interface {
	Topics() []ube.Address
}

// Log is an event tagged with the address of the contract that emitted it.
type Log struct {
	Address ube.Address
	Event   Event
}

// Topics returns the indexed accounts of the event, nil when it has none.
func (l *Log) Topics() []ube.Address {
	if indexed, ok := l.Event.(Indexed); ok {
		return indexed.Topics()
	}
	return nil
}

// Environment an env to execute builtin methods.
// Sub environments created by Call share the state and the log sink.
type Environment struct {
	state    *state.State
	blockCtx *BlockContext
	caller   ube.Address
	to       ube.Address
	logs     *[]*Log
}

// New create a new env.
func New(state *state.State, blockCtx *BlockContext, caller, to ube.Address) *Environment {
	return &Environment{
		state:    state,
		blockCtx: blockCtx,
		caller:   caller,
		to:       to,
		logs:     new([]*Log),
	}
}

func (env *Environment) State() *state.State          { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Caller() ube.Address          { return env.caller }
func (env *Environment) To() ube.Address              { return env.to }

// Call returns the env for a call from the current contract into the contract at addr.
func (env *Environment) Call(addr ube.Address) *Environment {
	return &Environment{
		state:    env.state,
		blockCtx: env.blockCtx,
		caller:   env.to,
		to:       addr,
		logs:     env.logs,
	}
}

// Log records an event emitted by the current contract.
func (env *Environment) Log(ev Event) {
	*env.logs = append(*env.logs, &Log{Address: env.to, Event: ev})
}

// Logs returns the events recorded so far, in emission order.
func (env *Environment) Logs() []*Log {
	return *env.logs
}
