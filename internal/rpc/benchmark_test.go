package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePinger answers from a table and records which URLs were probed.
type fakePinger struct {
	mu      sync.Mutex
	results map[string]Endpoint
	probed  []string
}

func (f *fakePinger) ping(_ context.Context, url string) (time.Duration, uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probed = append(f.probed, url)
	r, ok := f.results[url]
	if !ok {
		return 0, 0, errors.New("unreachable")
	}
	return r.Latency, r.BlockNumber, r.Err
}

// evmRPCServer creates an httptest server that responds to eth_blockNumber.
func evmRPCServer(t *testing.T, blockNum uint64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":"0x%x"}`, blockNum)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ---------------------------------------------------------------------------
// Benchmark
// ---------------------------------------------------------------------------

func TestBenchmarkPreservesOrder(t *testing.T) {
	p := &fakePinger{results: map[string]Endpoint{
		"https://a.com": {Latency: 30 * time.Millisecond, BlockNumber: 10},
		"https://c.com": {Latency: 10 * time.Millisecond, BlockNumber: 11},
	}}
	urls := []string{"https://a.com", "https://b.com", "https://c.com"}

	results := Benchmark(t.Context(), urls, p.ping)
	require.Len(t, results, 3)
	for i, u := range urls {
		assert.Equal(t, u, results[i].URL)
	}
	assert.True(t, results[0].Healthy())
	assert.False(t, results[1].Healthy())
	assert.Equal(t, uint64(11), results[2].BlockNumber)
}

// ---------------------------------------------------------------------------
// Select
// ---------------------------------------------------------------------------

func TestSelectSingleURLNoProbe(t *testing.T) {
	p := &fakePinger{}
	url, err := Select(t.Context(), []string{"https://only.rpc"}, StrategyFastest, p.ping)
	require.NoError(t, err)
	assert.Equal(t, "https://only.rpc", url)
	assert.Empty(t, p.probed)
}

func TestSelectEmpty(t *testing.T) {
	_, err := Select(t.Context(), nil, StrategyFastest, nil)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestSelectFastest(t *testing.T) {
	p := &fakePinger{results: map[string]Endpoint{
		"https://slow": {Latency: 300 * time.Millisecond, BlockNumber: 100},
		"https://fast": {Latency: 20 * time.Millisecond, BlockNumber: 100},
	}}
	url, err := Select(t.Context(), []string{"https://slow", "https://fast", "https://down"}, StrategyFastest, p.ping)
	require.NoError(t, err)
	assert.Equal(t, "https://fast", url)
	assert.Len(t, p.probed, 3)
}

func TestSelectFailoverStopsAtFirstAnswer(t *testing.T) {
	p := &fakePinger{results: map[string]Endpoint{
		"https://second": {Latency: time.Second, BlockNumber: 1},
		"https://third":  {Latency: time.Millisecond, BlockNumber: 1},
	}}
	url, err := Select(t.Context(), []string{"https://first", "https://second", "https://third"}, StrategyFailover, p.ping)
	require.NoError(t, err)
	assert.Equal(t, "https://second", url)
	assert.Equal(t, []string{"https://first", "https://second"}, p.probed)
}

func TestSelectFailoverAllDown(t *testing.T) {
	p := &fakePinger{}
	_, err := Select(t.Context(), []string{"https://a", "https://b"}, StrategyFailover, p.ping)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestSelectUnknownStrategy(t *testing.T) {
	p := &fakePinger{}
	_, err := Select(t.Context(), []string{"https://a", "https://b"}, Strategy("random"), p.ping)
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// EthPing
// ---------------------------------------------------------------------------

func TestEthPing(t *testing.T) {
	srv := evmRPCServer(t, 1000)

	latency, block, err := EthPing(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), block)
	assert.Greater(t, latency, time.Duration(0))
}

func TestEthPingUnreachable(t *testing.T) {
	srv := evmRPCServer(t, 1)
	url := srv.URL
	srv.Close()

	_, _, err := EthPing(t.Context(), url)
	assert.Error(t, err)
}

func TestSelectFastestOverHTTP(t *testing.T) {
	head := evmRPCServer(t, 5000)
	stale := evmRPCServer(t, 4000)

	url, err := Select(t.Context(), []string{stale.URL, head.URL}, StrategyFastest, nil)
	require.NoError(t, err)
	assert.Equal(t, head.URL, url)
}
