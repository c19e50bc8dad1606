package rpc

import (
	"errors"
	"sync"
	"time"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm defines how an RPC endpoint is selected.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"

	// Discard nodes more than this many blocks behind the best.
	staleBlockThreshold = 3
)

// Endpoint is one RPC endpoint with its measured attributes.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool
}

// Picker selects an RPC endpoint according to the configured algorithm.
type Picker struct {
	algo    Algorithm
	mu      sync.Mutex
	rrIndex int
}

// NewPicker creates a new Picker. Unknown algorithms behave like fastest.
func NewPicker(algo Algorithm) *Picker {
	return &Picker{algo: algo}
}

// Pick selects an endpoint from the provided list.
func (p *Picker) Pick(endpoints []Endpoint) (*Endpoint, error) {
	healthy := fresh(endpoints)
	if len(healthy) == 0 {
		return nil, ErrNoHealthyRPC
	}

	switch p.algo {
	case AlgorithmRoundRobin:
		p.mu.Lock()
		defer p.mu.Unlock()
		idx := p.rrIndex % len(healthy)
		p.rrIndex = idx + 1
		return healthy[idx], nil
	case AlgorithmFailover:
		// Configuration order wins.
		return healthy[0], nil
	default:
		best := healthy[0]
		for _, e := range healthy[1:] {
			if e.Latency < best.Latency {
				best = e
			}
		}
		return best, nil
	}
}

// fresh returns healthy endpoints within staleBlockThreshold of the best
// block, preserving input order.
func fresh(endpoints []Endpoint) []*Endpoint {
	var bestBlock uint64
	for _, e := range endpoints {
		if e.Healthy && e.BlockNumber > bestBlock {
			bestBlock = e.BlockNumber
		}
	}

	var out []*Endpoint
	for i := range endpoints {
		e := &endpoints[i]
		if !e.Healthy {
			continue
		}
		if bestBlock-e.BlockNumber > staleBlockThreshold {
			continue
		}
		out = append(out, e)
	}
	return out
}
