// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/ubeswap/release/api/accounts"
	"github.com/ubeswap/release/api/events"
	"github.com/ubeswap/release/api/node"
	"github.com/ubeswap/release/api/subscriptions"
	"github.com/ubeswap/release/api/vesting"
	"github.com/ubeswap/release/builtin/release"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/logdb"
	"github.com/ubeswap/release/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
	LogsLimit       uint64
	Node            node.Info
}

// New return api router. The event log endpoint is served only with a logDB.
func New(rt *runtime.Runtime, rel *release.Release, logDB *logdb.LogDB, opts Options) http.HandlerFunc {
	var origins []string
	for o := range strings.SplitSeq(opts.AllowedOrigins, ",") {
		if o = strings.ToLower(strings.TrimSpace(o)); o != "" {
			origins = append(origins, o)
		}
	}

	router := mux.NewRouter()

	accounts.New(rt, rel).
		Mount(router, "/accounts")
	vesting.New(rt, rel).
		Mount(router, "/release")
	node.New(rt, opts.Node).
		Mount(router, "/node")
	subscriptions.New(rt, origins).
		Mount(router, "/subscriptions")
	if logDB != nil {
		events.New(logDB, opts.LogsLimit).
			Mount(router, "/logs/event")
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	corsOpts := []handlers.CORSOption{handlers.AllowedHeaders([]string{"content-type"})}
	if len(origins) == 0 {
		// an empty list would let gorilla allow every origin
		corsOpts = append(corsOpts, handlers.AllowedOriginValidator(func(string) bool { return false }))
	} else {
		corsOpts = append(corsOpts, handlers.AllowedOrigins(origins))
	}
	handler = handlers.CORS(corsOpts...)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}
