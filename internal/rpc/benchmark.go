package rpc

import (
	"context"
	"sync"

	"github.com/Mohsinsiddi/devmint/internal/chain"
)

// Pinger measures one endpoint.
type Pinger func(ctx context.Context, url string) Endpoint

// PingEVM dials url and measures latency and head block.
func PingEVM(ctx context.Context, url string) Endpoint {
	c, err := chain.Dial(ctx, url)
	if err != nil {
		return Endpoint{URL: url}
	}
	defer c.Close()

	latency, block, err := c.Ping(ctx)
	return Endpoint{
		URL:         url,
		Latency:     latency,
		BlockNumber: block,
		Healthy:     err == nil,
	}
}

// Benchmark pings all urls in parallel. Results keep the input order.
func Benchmark(ctx context.Context, urls []string, ping Pinger) []Endpoint {
	results := make([]Endpoint, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			results[idx] = ping(ctx, u)
		}(i, url)
	}

	wg.Wait()
	return results
}
