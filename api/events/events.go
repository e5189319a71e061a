// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/ubeswap/release/api/utils"
	"github.com/ubeswap/release/logdb"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

func (e *Events) filter(req *http.Request, filter *logdb.EventFilter) ([]*FilteredEvent, error) {
	if filter.Options == nil {
		filter.Options = &logdb.Options{Limit: e.limit}
	} else if filter.Options.Limit > e.limit {
		return nil, utils.BadRequest(errors.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}
	if filter.Order != "" && filter.Order != logdb.ASC && filter.Order != logdb.DESC {
		return nil, utils.BadRequest(errors.New("order: must be asc or desc"))
	}

	evs, err := e.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return nil, err
	}
	fes := make([]*FilteredEvent, len(evs))
	for i, ev := range evs {
		fes[i] = convertEvent(ev)
	}
	return fes, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter logdb.EventFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	fes, err := e.filter(req, &filter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, fes)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("logs_filter_event").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
