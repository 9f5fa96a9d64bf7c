package rpc

import (
	"errors"
	"time"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Strategy defines how an RPC endpoint is selected.
type Strategy string

const (
	StrategyFastest  Strategy = "fastest"
	StrategyFailover Strategy = "failover"

	// Discard nodes more than this many blocks behind the best.
	staleBlockThreshold = 3
)

// Endpoint represents a single RPC endpoint with its measured attributes.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Err         error // nil when the endpoint answered
}

// Healthy reports whether the endpoint answered its ping.
func (e Endpoint) Healthy() bool { return e.Err == nil }

// PickFastest selects the best-scoring healthy endpoint that is not stale.
func PickFastest(endpoints []Endpoint) (*Endpoint, error) {
	var bestBlock uint64
	for _, e := range endpoints {
		if e.Healthy() && e.BlockNumber > bestBlock {
			bestBlock = e.BlockNumber
		}
	}

	var winner *Endpoint
	var bestScore float64
	for i := range endpoints {
		e := &endpoints[i]
		if !e.Healthy() {
			continue
		}
		if bestBlock-e.BlockNumber > staleBlockThreshold {
			continue
		}
		s := score(e, bestBlock)
		if winner == nil || s > bestScore {
			winner = e
			bestScore = s
		}
	}
	if winner == nil {
		return nil, ErrNoHealthyRPC
	}
	return winner, nil
}

// --- scoring ---

func score(e *Endpoint, bestBlock uint64) float64 {
	var s float64

	// Latency score: higher = faster.
	if us := e.Latency.Microseconds(); us > 0 {
		s += 1_000_000.0 / float64(us)
	} else {
		s += 1_000_000.0
	}

	// Loses 1 point per block behind the best.
	s -= float64(bestBlock - e.BlockNumber)
	return s
}
