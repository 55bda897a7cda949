package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"solbalance/internal/rpc"
)

// Reply is what the mock node sends back for one address
type Reply struct {
	// Status defaults to 200
	Status int
	// Body is sent verbatim
	Body  string
	Delay time.Duration
}

// BalanceReply answers with a well-formed getBalance result
func BalanceReply(lamports uint64) func(id uint64) Reply {
	return func(id uint64) Reply {
		return Reply{Body: fmt.Sprintf(
			`{"jsonrpc":"2.0","id":%d,"result":{"context":{"slot":310000000},"value":%d}}`, id, lamports)}
	}
}

// RPCErrorReply answers with a JSON-RPC error object
func RPCErrorReply(code int, message string) func(id uint64) Reply {
	return func(id uint64) Reply {
		msg, _ := json.Marshal(message)
		return Reply{Body: fmt.Sprintf(
			`{"jsonrpc":"2.0","id":%d,"error":{"code":%d,"message":%s}}`, id, code, msg)}
	}
}

// RawReply answers with a fixed status and body
func RawReply(status int, body string) func(id uint64) Reply {
	return func(uint64) Reply {
		return Reply{Status: status, Body: body}
	}
}

// RPCNode is a mock Solana JSON-RPC node answering getBalance from a table
// keyed by address. Unknown addresses get a zero balance.
type RPCNode struct {
	server *httptest.Server

	mu      sync.Mutex
	replies map[string]func(id uint64) Reply
	delays  map[string]time.Duration
	ids     []uint64

	calls atomic.Int64
}

// NewRPCNode starts a mock node; callers must Close it.
func NewRPCNode() *RPCNode {
	n := &RPCNode{
		replies: make(map[string]func(id uint64) Reply),
		delays:  make(map[string]time.Duration),
	}
	n.server = httptest.NewServer(http.HandlerFunc(n.handleJSONRPC))
	return n
}

// URL is the endpoint to POST to
func (n *RPCNode) URL() string {
	return n.server.URL
}

// Close shuts the server down
func (n *RPCNode) Close() {
	n.server.Close()
}

// Set registers the reply for address
func (n *RPCNode) Set(address string, reply func(id uint64) Reply) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replies[address] = reply
}

// SetDelay makes the node wait before answering for address
func (n *RPCNode) SetDelay(address string, d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delays[address] = d
}

// Calls returns how many HTTP requests reached the node
func (n *RPCNode) Calls() int {
	return int(n.calls.Load())
}

// IDs returns the request ids seen so far, in arrival order
func (n *RPCNode) IDs() []uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]uint64(nil), n.ids...)
}

func (n *RPCNode) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	n.calls.Add(1)

	var req rpc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	if req.Method != "getBalance" || len(req.Params) != 1 {
		writeJSON(w, http.StatusOK, fmt.Sprintf(
			`{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"Method not found"}}`, req.ID))
		return
	}
	address, _ := req.Params[0].(string)

	n.mu.Lock()
	n.ids = append(n.ids, req.ID)
	replyFn, ok := n.replies[address]
	delay := n.delays[address]
	n.mu.Unlock()

	if !ok {
		replyFn = BalanceReply(0)
	}
	reply := replyFn(req.ID)

	if d := delay + reply.Delay; d > 0 {
		select {
		case <-time.After(d):
		case <-r.Context().Done():
			return
		}
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	writeJSON(w, status, reply.Body)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
