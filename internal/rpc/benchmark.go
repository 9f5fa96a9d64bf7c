package rpc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
)

// Pinger measures one endpoint, returning its latency and head block.
type Pinger func(ctx context.Context, url string) (time.Duration, uint64, error)

// EthPing dials url and times an eth_blockNumber round trip.
func EthPing(ctx context.Context, url string) (time.Duration, uint64, error) {
	ec, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return 0, 0, err
	}
	defer ec.Close()

	start := time.Now()
	block, err := ec.BlockNumber(ctx)
	return time.Since(start), block, err
}

// Benchmark pings all URLs in parallel. Results keep the order of urls.
func Benchmark(ctx context.Context, urls []string, ping Pinger) []Endpoint {
	results := make([]Endpoint, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			latency, block, err := ping(ctx, u)
			results[idx] = Endpoint{URL: u, Latency: latency, BlockNumber: block, Err: err}
		}(i, url)
	}

	wg.Wait()
	return results
}

// Select picks one URL. A single URL is returned without probing. Fastest
// benchmarks every URL; failover returns the first URL that answers, trying
// them in order.
func Select(ctx context.Context, urls []string, strategy Strategy, ping Pinger) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}
	if ping == nil {
		ping = EthPing
	}

	switch strategy {
	case StrategyFailover:
		for _, u := range urls {
			if _, _, err := ping(ctx, u); err != nil {
				log.Debug("RPC endpoint unavailable", "url", u, "err", err)
				continue
			}
			return u, nil
		}
		return "", ErrNoHealthyRPC
	case StrategyFastest, "":
		endpoints := Benchmark(ctx, urls, ping)
		for _, e := range endpoints {
			log.Debug("RPC endpoint benchmarked", "url", e.URL, "latency", e.Latency, "block", e.BlockNumber, "err", e.Err)
		}
		winner, err := PickFastest(endpoints)
		if err != nil {
			return "", err
		}
		return winner.URL, nil
	}
	return "", fmt.Errorf("unknown RPC strategy %q", strategy)
}
