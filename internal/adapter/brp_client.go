// Package adapter provides the wire client, caching and persistence
// adapters the mutation path engine collaborates with.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	m "github.com/natepiano/brp-mutate/internal/model"
)

// BRP method names.
const (
	methodRegistrySchema = "bevy/registry/schema"
	methodMutateComp     = "bevy/mutate_component"
	methodMutateResource = "bevy/mutate_resource"
)

// DefaultPort is the port the remote protocol listens on by default.
const DefaultPort = 15702

// BRPClient talks to a running application over its remote protocol.
type BRPClient interface {
	// FetchSnapshot retrieves the full reflection type registry together
	// with fresh session metadata.
	FetchSnapshot(ctx context.Context) (*m.Snapshot, error)
	// MutateComponent sets the value at path inside a component of one
	// entity.
	MutateComponent(ctx context.Context, entity uint64, component m.TypeName, path string, value any) error
	// MutateResource sets the value at path inside a global resource.
	MutateResource(ctx context.Context, resource m.TypeName, path string, value any) error
	// Endpoint identifies the remote for caching and snapshot metadata.
	Endpoint() string
	// Close releases the underlying transport.
	Close() error
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
}

// transport issues one JSON-RPC call and returns the raw result.
type transport interface {
	call(ctx context.Context, method string, params any) (json.RawMessage, error)
	close() error
}

type brpClient struct {
	endpoint  string
	transport transport
	logger    *zap.Logger
}

// NewHTTPClient creates a client speaking JSON-RPC over HTTP POST.
func NewHTTPClient(host string, port int, logger *zap.Logger) BRPClient {
	endpoint := fmt.Sprintf("http://%s:%d/", host, port)

	return &brpClient{
		endpoint: endpoint,
		transport: &httpTransport{
			endpoint: endpoint,
			client:   &http.Client{Timeout: 30 * time.Second},
		},
		logger: logger,
	}
}

// NewWebSocketClient creates a client speaking JSON-RPC over a WebSocket
// connection; the connection is established on the first call.
func NewWebSocketClient(host string, port int, logger *zap.Logger) BRPClient {
	endpoint := fmt.Sprintf("ws://%s:%d/", host, port)

	return &brpClient{
		endpoint:  endpoint,
		transport: &wsTransport{endpoint: endpoint},
		logger:    logger,
	}
}

func (c *brpClient) FetchSnapshot(ctx context.Context) (*m.Snapshot, error) {
	started := time.Now()

	payload, err := c.transport.call(ctx, methodRegistrySchema, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registry from %s: %w", c.endpoint, err)
	}

	// Validate the payload up front; the snapshot stores it verbatim.
	registry, err := m.DecodeRegistry(payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info("fetched registry",
		zap.String("endpoint", c.endpoint),
		zap.Int("types", registry.Len()),
		zap.Duration("elapsed", time.Since(started)))

	return &m.Snapshot{
		SessionID: uuid.NewString(),
		Endpoint:  c.endpoint,
		FetchedAt: time.Now().UTC(),
		Payload:   payload,
	}, nil
}

func (c *brpClient) MutateComponent(ctx context.Context, entity uint64, component m.TypeName, path string, value any) error {
	params := map[string]any{
		"entity":    entity,
		"component": component,
		"path":      path,
		"value":     value,
	}

	if _, err := c.transport.call(ctx, methodMutateComp, params); err != nil {
		return fmt.Errorf("failed to mutate %s%s on entity %d: %w", component.Short(), path, entity, err)
	}

	c.logger.Info("mutated component",
		zap.Uint64("entity", entity),
		zap.String("component", string(component)),
		zap.String("path", path))

	return nil
}

func (c *brpClient) MutateResource(ctx context.Context, resource m.TypeName, path string, value any) error {
	params := map[string]any{
		"resource": resource,
		"path":     path,
		"value":    value,
	}

	if _, err := c.transport.call(ctx, methodMutateResource, params); err != nil {
		return fmt.Errorf("failed to mutate resource %s%s: %w", resource.Short(), path, err)
	}

	c.logger.Info("mutated resource",
		zap.String("resource", string(resource)),
		zap.String("path", path))

	return nil
}

func (c *brpClient) Endpoint() string {
	return c.endpoint
}

func (c *brpClient) Close() error {
	return c.transport.close()
}

// httpTransport POSTs one JSON-RPC envelope per call.
type httpTransport struct {
	endpoint string
	client   *http.Client
	nextID   atomic.Uint64
}

func (t *httpTransport) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	envelope := rpcRequest{
		JSONRPC: "2.0",
		ID:      t.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return decodeEnvelope(raw, envelope.ID)
}

func (t *httpTransport) close() error {
	t.client.CloseIdleConnections()

	return nil
}

// wsTransport keeps one connection and serializes calls over it.
type wsTransport struct {
	endpoint string

	mu     sync.Mutex
	conn   *websocket.Conn
	nextID uint64
}

func (t *wsTransport) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to dial %s: %w", t.endpoint, err)
		}

		t.conn = conn
	}

	t.nextID++
	envelope := rpcRequest{JSONRPC: "2.0", ID: t.nextID, Method: method, Params: params}

	if deadline, ok := ctx.Deadline(); ok {
		_ = t.conn.SetReadDeadline(deadline)
		_ = t.conn.SetWriteDeadline(deadline)
	}

	if err := t.conn.WriteJSON(envelope); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	for {
		_, raw, err := t.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		result, err := decodeEnvelope(raw, envelope.ID)
		if err == nil || !isStaleResponse(err) {
			return result, err
		}
	}
}

func (t *wsTransport) close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}

	err := t.conn.Close()
	t.conn = nil

	return err
}

type staleResponseError struct {
	got, want uint64
}

func (e *staleResponseError) Error() string {
	return fmt.Sprintf("response id %d does not match request id %d", e.got, e.want)
}

func isStaleResponse(err error) bool {
	_, ok := err.(*staleResponseError)

	return ok
}

func decodeEnvelope(raw []byte, wantID uint64) (json.RawMessage, error) {
	var envelope rpcResponse

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if envelope.ID != wantID {
		return nil, &staleResponseError{got: envelope.ID, want: wantID}
	}

	if envelope.Error != nil {
		return nil, envelope.Error
	}

	return envelope.Result, nil
}
