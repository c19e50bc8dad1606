package rpc

import "context"

// SelectBest picks the best RPC URL from urls using the named algorithm.
// A single URL is returned as-is without being pinged; an empty algorithm
// defaults to "fastest".
func SelectBest(ctx context.Context, urls []string, algorithm string) (string, error) {
	return selectBest(ctx, urls, algorithm, PingEVM)
}

func selectBest(ctx context.Context, urls []string, algorithm string, ping Pinger) (string, error) {
	if len(urls) == 0 {
		return "", ErrNoHealthyRPC
	}
	if len(urls) == 1 {
		return urls[0], nil
	}
	algo := Algorithm(algorithm)
	if algo == "" {
		algo = AlgorithmFastest
	}

	winner, err := NewPicker(algo).Pick(Benchmark(ctx, urls, ping))
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}
