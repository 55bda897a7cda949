package rpc

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_Wire(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NewRequest(1, "getBalance", "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"jsonrpc":"2.0","id":1,"method":"getBalance","params":["9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"]}`,
		string(raw))
}

func TestNewRequest_NoParams(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NewRequest(7, "getHealth"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"jsonrpc":"2.0","id":7,"method":"getHealth","params":[]}`, string(raw))
}

func TestResponse_Decode(t *testing.T) {
	t.Parallel()

	type balance struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value uint64 `json:"value"`
	}

	tests := []struct {
		name       string
		body       string
		wantResult bool
		wantError  bool
	}{
		{
			name:       "result only",
			body:       `{"jsonrpc":"2.0","id":1,"result":{"context":{"slot":1},"value":5}}`,
			wantResult: true,
		},
		{
			name:      "error only",
			body:      `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid param"}}`,
			wantError: true,
		},
		{
			name: "neither",
			body: `{"jsonrpc":"2.0","id":1}`,
		},
		{
			name: "null result",
			body: `{"jsonrpc":"2.0","id":1,"result":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp Response[balance]
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))

			assert.Equal(t, tt.wantResult, resp.Result != nil)
			assert.Equal(t, tt.wantError, resp.Error != nil)
		})
	}
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := &Error{Code: -32602, Message: "Invalid param: WrongSize"}
	assert.Equal(t, "Invalid param: WrongSize (code: -32602)", err.Error())
}

func TestIDSource_Unique(t *testing.T) {
	t.Parallel()

	var ids IDSource
	assert.Equal(t, uint64(1), ids.Next())

	const workers = 50
	seen := make(chan uint64, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- ids.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[uint64]struct{}, workers)
	for id := range seen {
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, workers)
}
