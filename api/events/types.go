// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/json"

	"github.com/ubeswap/release/logdb"
	"github.com/ubeswap/release/ube"
)

type LogMeta struct {
	BlockNumber uint32      `json:"blockNumber"`
	BlockTime   uint64      `json:"blockTimestamp"`
	Method      string      `json:"method"`
	Caller      ube.Address `json:"caller"`
	EventIndex  uint32      `json:"eventIndex"`
}

// FilteredEvent is an indexed event in response.
type FilteredEvent struct {
	Address ube.Address     `json:"address"`
	Name    string          `json:"name"`
	Topics  []*ube.Address  `json:"topics"`
	Data    json.RawMessage `json:"data"`
	Meta    LogMeta         `json:"meta"`
}

func convertEvent(ev *logdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		Address: ev.Address,
		Name:    ev.Name,
		Data:    ev.Data,
		Meta: LogMeta{
			BlockNumber: ev.BlockNumber,
			BlockTime:   ev.BlockTime,
			Method:      ev.Method,
			Caller:      ev.Caller,
			EventIndex:  ev.Index,
		},
	}
	for _, t := range ev.Topics {
		if t != nil {
			fe.Topics = append(fe.Topics, t)
		}
	}
	return fe
}
