// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb indexes the events of committed calls in sqlite.
package logdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/ubeswap/release/co"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/metrics"
	"github.com/ubeswap/release/runtime"
	"github.com/ubeswap/release/ube"
)

var (
	logger = log.WithContext("pkg", "logdb")

	metricWrittenEvents = metrics.LazyLoadCounter("logdb_written_events_count")
)

type LogDB struct {
	path string
	db   *sql.DB
}

// New opens the index at path, creating the schema when missing.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a memory db lives as long as its connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	logger.Debug("log db opened", "path", path, "sqlite", driverVer)
	return &LogDB{path, db}, nil
}

// NewMem opens an index living in memory only.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

func (db *LogDB) Close() {
	db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// Write indexes the events of receipt in one transaction.
func (db *LogDB) Write(receipt *runtime.Receipt) (err error) {
	if len(receipt.Logs) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`INSERT INTO event(blockNumber, blockTime, eventIndex, method, caller, address, name, topic1, topic2, topic3, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, l := range receipt.Logs {
		data, err := json.Marshal(l.Event)
		if err != nil {
			return errors.Wrapf(err, "encode %v", l.Event.EventName())
		}
		var topics [maxTopics][]byte
		for j, addr := range l.Topics() {
			if j < maxTopics {
				topics[j] = addr.Bytes()
			}
		}
		if _, err := stmt.Exec(
			receipt.BlockNumber,
			receipt.BlockTime,
			i,
			receipt.Method,
			receipt.Caller.Bytes(),
			l.Address.Bytes(),
			l.Event.EventName(),
			topics[0], topics[1], topics[2],
			string(data),
		); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	metricWrittenEvents().Add(int64(len(receipt.Logs)))
	return nil
}

// Sync indexes the receipts of rt until ctx is done.
func (db *LogDB) Sync(ctx context.Context, rt *runtime.Runtime) func() {
	ch := make(chan *runtime.Receipt, 64)
	sub := rt.SubscribeReceipts(ch)

	var goes co.Goes
	goes.Go(func() {
		defer sub.Unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-sub.Err():
				if err != nil {
					logger.Warn("receipt subscription failed", "err", err)
				}
				return
			case receipt := <-ch:
				if err := db.Write(receipt); err != nil {
					logger.Error("failed to write events", "method", receipt.Method, "block", receipt.BlockNumber, "err", err)
				}
			}
		}
	})
	return goes.Wait
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND blockNumber >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND blockNumber <= ? "
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND address = ? "
		}
		if criteria.Name != "" {
			args = append(args, criteria.Name)
			stmt += " AND name = ? "
		}
		for j, topic := range criteria.Topics {
			if topic != nil {
				args = append(args, topic.Bytes())
				stmt += fmt.Sprintf(" AND topic%v = ?", j+1)
			}
		}
		stmt += ")"
	}
	if len(filter.CriteriaSet) > 0 {
		stmt += ")"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     int64
			ev      Event
			caller  []byte
			address []byte
			topics  [maxTopics][]byte
			data    string
		)
		if err := rows.Scan(
			&seq,
			&ev.BlockNumber,
			&ev.BlockTime,
			&ev.Index,
			&ev.Method,
			&caller,
			&address,
			&ev.Name,
			&topics[0],
			&topics[1],
			&topics[2],
			&data,
		); err != nil {
			return nil, err
		}
		ev.Caller = ube.BytesToAddress(caller)
		ev.Address = ube.BytesToAddress(address)
		for i, t := range topics {
			if len(t) > 0 {
				addr := ube.BytesToAddress(t)
				ev.Topics[i] = &addr
			}
		}
		ev.Data = json.RawMessage(data)
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
