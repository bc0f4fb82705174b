// Package client provides a typed HTTP client for the oblivious store's
// four operations, plus a workload driver for benchmarking it.
package client

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"net/http"
	"time"

	"github.com/tumichaels/oramd/api"
)

// Client talks to one oramd server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Setup initializes the remote store.
func (c *Client) Setup(ctx context.Context, req *api.SetupRequest) error {
	_, err := post[api.SetupRequest, api.SetupResponse](ctx, c, "/oram/setup", req)
	return err
}

// ReadBlock reads the listed logical blocks in order.
func (c *Client) ReadBlock(ctx context.Context, indices []int64) (*api.ReadBlockResponse, error) {
	return post[api.ReadBlockRequest, api.ReadBlockResponse](ctx, c, "/oram/read",
		&api.ReadBlockRequest{Indices: indices})
}

// WriteBlock writes blocks[i] to indices[i].
func (c *Client) WriteBlock(ctx context.Context, indices []int64, blocks []api.WireBlock) (*api.WriteBlockResponse, error) {
	return post[api.WriteBlockRequest, api.WriteBlockResponse](ctx, c, "/oram/write",
		&api.WriteBlockRequest{Indices: indices, Blocks: blocks})
}

// Print fetches a diagnostic dump of the store state.
func (c *Client) Print(ctx context.Context) (*api.PrintResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/oram/print", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse[api.PrintResponse](resp)
}

func post[Req any, Resp any](ctx context.Context, c *Client, path string, req *Req) (*Resp, error) {
	data, err := api.SerializeMessage(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()
	return decodeResponse[Resp](resp)
}

func decodeResponse[Resp any](resp *http.Response) (*Resp, error) {
	if resp.StatusCode != http.StatusOK {
		errResp, err := api.DecodeMessage[api.ErrorResponse](resp.Body)
		if err != nil {
			return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, errResp.Error)
	}
	return api.DecodeMessage[Resp](resp.Body)
}

// Uint64Value encodes an integer value as a fixed 8-byte block payload.
func Uint64Value(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// DecodeUint64 decodes a payload written with Uint64Value.
func DecodeUint64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("payload must be 8 bytes, got %d", len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}
