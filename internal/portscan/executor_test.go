package portscan

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestBatchExecutor_NeverExceedsConcurrencyBound(t *testing.T) {
	const concurrency = 4
	const endpoints = 40

	var inFlight int32
	var maxObserved int32

	ex := &BatchExecutor{
		Concurrency: concurrency,
		Timeout:     time.Second,
		probeFn: func(ctx context.Context, e Endpoint, timeout time.Duration) Outcome {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				cur := atomic.LoadInt32(&maxObserved)
				if n <= cur || atomic.CompareAndSwapInt32(&maxObserved, cur, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return Closed
		},
	}

	batch := make([]Endpoint, endpoints)
	for i := range batch {
		batch[i] = Endpoint{IP: "127.0.0.1", Port: uint16(1000 + i)}
	}

	outcomes := ex.Run(context.Background(), batch)

	if len(outcomes) != endpoints {
		t.Fatalf("expected an outcome for every endpoint, got %d", len(outcomes))
	}
	if maxObserved > concurrency {
		t.Fatalf("observed %d probes in flight, want at most %d", maxObserved, concurrency)
	}
}

func TestBatchExecutor_StreamsOpenEndpointsImmediately(t *testing.T) {
	var streamed []Endpoint

	ex := &BatchExecutor{
		Concurrency: 8,
		Timeout:     time.Second,
		OnOpen: func(e Endpoint) {
			streamed = append(streamed, e)
		},
		probeFn: func(ctx context.Context, e Endpoint, timeout time.Duration) Outcome {
			if e.Port == 443 {
				return Open
			}
			return Closed
		},
	}

	batch := []Endpoint{
		{IP: "127.0.0.1", Port: 80},
		{IP: "127.0.0.1", Port: 443},
	}
	ex.Run(context.Background(), batch)

	if len(streamed) != 1 || streamed[0].Port != 443 {
		t.Fatalf("expected only port 443 to stream as open, got %v", streamed)
	}
}

func TestBatchExecutor_NoDuplicateProbesPerCall(t *testing.T) {
	var calls int32

	ex := &BatchExecutor{
		Concurrency: 8,
		Timeout:     time.Second,
		probeFn: func(ctx context.Context, e Endpoint, timeout time.Duration) Outcome {
			atomic.AddInt32(&calls, 1)
			return Filtered
		},
	}

	batch := []Endpoint{
		{IP: "127.0.0.1", Port: 1},
		{IP: "127.0.0.1", Port: 2},
		{IP: "127.0.0.1", Port: 3},
	}
	ex.Run(context.Background(), batch)

	if int(calls) != len(batch) {
		t.Fatalf("want %d probe calls, got %d", len(batch), calls)
	}
}
