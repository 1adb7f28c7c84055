package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const registryPayload = `{
	"f32": {"shortPath": "f32", "kind": "Value", "reflectTypes": ["Serialize", "Deserialize"]},
	"glam::Vec2": {
		"shortPath": "Vec2",
		"kind": "Struct",
		"properties": {
			"x": {"type": {"$ref": "#/$defs/f32"}},
			"y": {"type": {"$ref": "#/$defs/f32"}}
		}
	}
}`

// rpcServer answers JSON-RPC over HTTP and records the requests it saw.
func rpcServer(t *testing.T, handler func(req rpcRequest) rpcResponse) (*httptest.Server, *brpClient) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "2.0", req.JSONRPC)

		resp := handler(req)
		resp.JSONRPC = "2.0"
		resp.ID = req.ID

		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	client := &brpClient{
		endpoint: srv.URL + "/",
		transport: &httpTransport{
			endpoint: srv.URL,
			client:   srv.Client(),
		},
		logger: zap.NewNop(),
	}

	return srv, client
}

func TestBRPClient_FetchSnapshot(t *testing.T) {
	t.Parallel()

	var gotMethod string

	_, client := rpcServer(t, func(req rpcRequest) rpcResponse {
		gotMethod = req.Method

		return rpcResponse{Result: json.RawMessage(registryPayload)}
	})

	snapshot, err := client.FetchSnapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, "bevy/registry/schema", gotMethod)
	require.NotEmpty(t, snapshot.SessionID)
	require.Equal(t, client.endpoint, snapshot.Endpoint)
	require.False(t, snapshot.FetchedAt.IsZero())
	require.JSONEq(t, registryPayload, string(snapshot.Payload))

	registry, err := snapshot.Decode()
	require.NoError(t, err)
	require.Equal(t, 2, registry.Len())
}

func TestBRPClient_FetchSnapshot_InvalidPayload(t *testing.T) {
	t.Parallel()

	_, client := rpcServer(t, func(rpcRequest) rpcResponse {
		return rpcResponse{Result: json.RawMessage(`[1, 2, 3]`)}
	})

	_, err := client.FetchSnapshot(context.Background())
	require.Error(t, err)
}

func TestBRPClient_FetchSnapshot_RemoteError(t *testing.T) {
	t.Parallel()

	_, client := rpcServer(t, func(rpcRequest) rpcResponse {
		return rpcResponse{Error: &rpcError{Code: -32601, Message: "method not found"}}
	})

	_, err := client.FetchSnapshot(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "method not found")
}

func TestBRPClient_MutateComponent(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotParams map[string]any

	_, client := rpcServer(t, func(req rpcRequest) rpcResponse {
		gotMethod = req.Method
		gotParams, _ = req.Params.(map[string]any)

		return rpcResponse{Result: json.RawMessage(`null`)}
	})

	err := client.MutateComponent(context.Background(), 42,
		"bevy_transform::components::transform::Transform", ".translation.x", 1.5)
	require.NoError(t, err)
	require.Equal(t, "bevy/mutate_component", gotMethod)
	require.Equal(t, float64(42), gotParams["entity"])
	require.Equal(t, "bevy_transform::components::transform::Transform", gotParams["component"])
	require.Equal(t, ".translation.x", gotParams["path"])
	require.Equal(t, 1.5, gotParams["value"])
}

func TestBRPClient_MutateResource(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotParams map[string]any

	_, client := rpcServer(t, func(req rpcRequest) rpcResponse {
		gotMethod = req.Method
		gotParams, _ = req.Params.(map[string]any)

		return rpcResponse{Result: json.RawMessage(`null`)}
	})

	err := client.MutateResource(context.Background(), "my_game::settings::Volume", "", 0.8)
	require.NoError(t, err)
	require.Equal(t, "bevy/mutate_resource", gotMethod)
	require.Equal(t, "my_game::settings::Volume", gotParams["resource"])
}

func TestHTTPTransport_RequestIDsIncrement(t *testing.T) {
	t.Parallel()

	var ids []uint64

	_, client := rpcServer(t, func(req rpcRequest) rpcResponse {
		ids = append(ids, req.ID)

		return rpcResponse{Result: json.RawMessage(`null`)}
	})

	require.NoError(t, client.MutateResource(context.Background(), "my_game::A", "", 1))
	require.NoError(t, client.MutateResource(context.Background(), "my_game::A", "", 2))
	require.Equal(t, []uint64{1, 2}, ids)
}

func TestDecodeEnvelope_StaleID(t *testing.T) {
	t.Parallel()

	_, err := decodeEnvelope([]byte(`{"jsonrpc": "2.0", "id": 7, "result": null}`), 8)
	require.Error(t, err)
	require.True(t, isStaleResponse(err))
}

func TestNewHTTPClient_Endpoint(t *testing.T) {
	t.Parallel()

	client := NewHTTPClient("127.0.0.1", DefaultPort, zap.NewNop())
	require.Equal(t, "http://127.0.0.1:15702/", client.Endpoint())
	require.NoError(t, client.Close())
}

func TestNewWebSocketClient_Endpoint(t *testing.T) {
	t.Parallel()

	client := NewWebSocketClient("127.0.0.1", DefaultPort, zap.NewNop())
	require.Equal(t, "ws://127.0.0.1:15702/", client.Endpoint())

	// Never dialed, so closing is a no-op.
	require.NoError(t, client.Close())
}
