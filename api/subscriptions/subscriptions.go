// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package subscriptions streams the events of committed calls over websocket.
package subscriptions

import (
	"net/http"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/ubeswap/release/api/utils"
	"github.com/ubeswap/release/co"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/metrics"
	"github.com/ubeswap/release/runtime"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 7 / 10
	backlog    = 64
)

var (
	logger = log.WithContext("pkg", "subscriptions")

	metricActiveSubscribers = metrics.LazyLoadGauge("api_active_subscriptions_count")
)

type Subscriptions struct {
	rt       *runtime.Runtime
	upgrader *websocket.Upgrader
}

// New creates the websocket endpoints. An empty allowedOrigins admits
// same-origin clients only, "*" admits any origin.
func New(rt *runtime.Runtime, allowedOrigins []string) *Subscriptions {
	upgrader := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	if len(allowedOrigins) > 0 {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
		}
	}
	return &Subscriptions{rt, upgrader}
}

func (s *Subscriptions) handleSubscribeEvent(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseEventFilter(req.URL.Query())
	if err != nil {
		return utils.BadRequest(err)
	}
	// subscribe before the handshake completes so no receipt committed after
	// the client sees the upgrade is missed
	ch := make(chan *runtime.Receipt, backlog)
	sub := s.rt.SubscribeReceipts(ch)
	defer sub.Unsubscribe()

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has replied already
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	metricActiveSubscribers().Add(1)
	defer metricActiveSubscribers().Add(-1)

	if err := pipe(conn, ch, sub, filter); err != nil {
		logger.Debug("subscription closed", "remote", req.RemoteAddr, "err", err)
	}
	return nil
}

// pipe pushes matching events to conn until the client leaves or the runtime closes.
func pipe(conn *websocket.Conn, ch <-chan *runtime.Receipt, sub event.Subscription, filter *EventFilter) error {
	var goes co.Goes
	defer goes.Wait()
	defer conn.Close()

	// the read side only serves control frames and notices the client leaving
	gone := make(chan struct{})
	goes.Go(func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug("read failed", "err", err)
				}
				return
			}
		}
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return nil
		case err := <-sub.Err():
			// runtime closed
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(writeWait))
			return err
		case receipt := <-ch:
			for i, l := range receipt.Logs {
				if !filter.Match(l) {
					continue
				}
				msg, err := newEventMessage(receipt, i, l)
				if err != nil {
					return err
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					return errors.WithMessage(err, "write event")
				}
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return errors.WithMessage(err, "ping")
			}
		}
	}
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("subscriptions_event").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvent))
}
