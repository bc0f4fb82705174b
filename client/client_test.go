package client

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumichaels/oramd/api"
	"github.com/tumichaels/oramd/crypto"
	"github.com/tumichaels/oramd/oram"
	"github.com/tumichaels/oramd/server"
)

// newTestServer runs a real handler over a real store, with the AES-GCM
// bucket sealer in the loop.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sealer, err := crypto.NewBucketSealer(key)
	require.NoError(t, err)

	log := slog.New(slog.DiscardHandler)
	impl := server.NewServer(log, sealer, oram.NewSeededLeafSource(7))
	r := chi.NewRouter()
	server.NewHandler(impl, log).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)
	ctx := context.Background()

	err := c.Setup(ctx, &api.SetupRequest{
		NumLayers:  4,
		BucketSize: 4,
		BlockIDs:   []int64{1, 2, 3},
	})
	require.NoError(t, err)

	_, err = c.WriteBlock(ctx, []int64{1}, []api.WireBlock{{Index: 1, Value: Uint64Value(42)}})
	require.NoError(t, err)

	resp, err := c.ReadBlock(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, resp.Blocks, 1)
	got, err := DecodeUint64(resp.Blocks[0].Value)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got)

	_, err = c.ReadBlock(ctx, []int64{5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	pr, err := c.Print(ctx)
	require.NoError(t, err)
	assert.True(t, pr.Success)
	assert.Contains(t, pr.Dump, "tree L=4 Z=4")
}

func TestClientSetupErrors(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)
	ctx := context.Background()

	err := c.Setup(ctx, &api.SetupRequest{NumLayers: 0, BucketSize: 4, BlockIDs: []int64{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")

	require.NoError(t, c.Setup(ctx, &api.SetupRequest{NumLayers: 4, BucketSize: 4, BlockIDs: []int64{1}}))
	err = c.Setup(ctx, &api.SetupRequest{NumLayers: 4, BucketSize: 4, BlockIDs: []int64{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}

func TestRunWorkload(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping workload in short mode")
	}

	srv := newTestServer(t)
	c := New(srv.URL)

	var stashLog bytes.Buffer
	err := RunWorkload(context.Background(), c, WorkloadConfig{
		NumLayers:   6,
		BucketSize:  4,
		NumBlocks:   32,
		Ops:         200,
		WriteRatio:  0.3,
		Seed:        13,
		ReportEvery: 100,
		StashOut:    &stashLog,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stashLog.String()), "\n")
	assert.Len(t, lines, 200)
}

func TestUint64ValueRoundTrip(t *testing.T) {
	v, err := DecodeUint64(Uint64Value(123456789))
	require.NoError(t, err)
	assert.Equal(t, uint64(123456789), v)

	_, err = DecodeUint64([]byte{1, 2, 3})
	require.Error(t, err)
}
