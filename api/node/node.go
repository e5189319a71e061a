// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ubeswap/release/api/utils"
	"github.com/ubeswap/release/runtime"
)

// Info describes the running node.
type Info struct {
	ChainID       uint64 `json:"chainId"`
	BlockInterval uint64 `json:"blockInterval"`
}

type Node struct {
	rt   *runtime.Runtime
	info Info
}

func New(rt *runtime.Runtime, info Info) *Node {
	return &Node{
		rt,
		info,
	}
}

func (n *Node) handlePendingBlock(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, n.rt.Pending())
}

func (n *Node) handleNodeInfo(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, n.info)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/block").
		Methods(http.MethodGet).
		Name("node_get_pending_block").
		HandlerFunc(utils.WrapHandlerFunc(n.handlePendingBlock))
	sub.Path("/info").
		Methods(http.MethodGet).
		Name("node_get_info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleNodeInfo))
}
