// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"encoding/json"

	"github.com/ubeswap/release/ube"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive block number range. To below From means open ended.
type Range struct {
	From uint32 `json:"from"`
	To   uint32 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// EventCriteria matches events by emitter, name and indexed topics.
// Unset fields match anything.
type EventCriteria struct {
	Address *ube.Address            `json:"address"`
	Name    string                  `json:"name"`
	Topics  [maxTopics]*ube.Address `json:"topics"`
}

// EventFilter selects events matching any of the criteria.
type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *Range           `json:"range"`
	Options     *Options         `json:"options"`
	Order       Order            `json:"order"`
}

// Event is an indexed event.
type Event struct {
	BlockNumber uint32
	BlockTime   uint64
	Index       uint32
	Method      string
	Caller      ube.Address
	Address     ube.Address
	Name        string
	Topics      [maxTopics]*ube.Address
	Data        json.RawMessage
}
