// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for event logs
const eventTableSchema = `
create table if not exists event (
	seq integer primary key autoincrement,
	blockNumber integer,
	blockTime integer,
	eventIndex integer,
	method text,
	caller blob(20),
	address blob(20),
	name text,
	topic1 blob(20),
	topic2 blob(20),
	topic3 blob(20),
	data text
);

CREATE INDEX if not exists blockNumberIndex on event(blockNumber);
CREATE INDEX if not exists addressIndex on event(address);
CREATE INDEX if not exists nameIndex on event(name);

CREATE INDEX if not exists topicIndex1 on event(topic1);
CREATE INDEX if not exists topicIndex2 on event(topic2);
CREATE INDEX if not exists topicIndex3 on event(topic3);
`

const maxTopics = 3
