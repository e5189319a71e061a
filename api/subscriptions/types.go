// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"
	"net/url"

	"github.com/pkg/errors"

	"github.com/ubeswap/release/api/events"
	"github.com/ubeswap/release/runtime"
	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

const maxTopics = 3

// EventFilter selects the events pushed to a subscriber. Unset fields match anything.
type EventFilter struct {
	Address *ube.Address
	Name    string
	Topics  [maxTopics]*ube.Address
}

func parseEventFilter(query url.Values) (*EventFilter, error) {
	parseAddr := func(key string) (*ube.Address, error) {
		s := query.Get(key)
		if s == "" {
			return nil, nil
		}
		addr, err := ube.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, key)
		}
		return &addr, nil
	}

	var (
		f   = &EventFilter{Name: query.Get("name")}
		err error
	)
	if f.Address, err = parseAddr("addr"); err != nil {
		return nil, err
	}
	for i, key := range []string{"t0", "t1", "t2"} {
		if f.Topics[i], err = parseAddr(key); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *EventFilter) Match(l *xenv.Log) bool {
	if f.Address != nil && *f.Address != l.Address {
		return false
	}
	if f.Name != "" && f.Name != l.Event.EventName() {
		return false
	}
	topics := l.Topics()
	for i, want := range f.Topics {
		if want == nil {
			continue
		}
		if i >= len(topics) || topics[i] != *want {
			return false
		}
	}
	return true
}

// EventMessage is an event pushed to a subscriber, shaped like a filtered log.
type EventMessage = events.FilteredEvent

func newEventMessage(receipt *runtime.Receipt, index int, l *xenv.Log) (*EventMessage, error) {
	data, err := json.Marshal(l.Event)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %v", l.Event.EventName())
	}
	msg := &EventMessage{
		Address: l.Address,
		Name:    l.Event.EventName(),
		Data:    data,
		Meta: events.LogMeta{
			BlockNumber: receipt.BlockNumber,
			BlockTime:   receipt.BlockTime,
			Method:      receipt.Method,
			Caller:      receipt.Caller,
			EventIndex:  uint32(index),
		},
	}
	for _, t := range l.Topics() {
		msg.Topics = append(msg.Topics, &t)
	}
	return msg, nil
}
