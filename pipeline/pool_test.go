package pipeline

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	var done int64

	pool := NewWorkerPool(4, 0)
	for i := 0; i < 50; i++ {
		pool.Submit(func() {
			atomic.AddInt64(&done, 1)
		})
	}
	pool.Wait()

	if done != 50 {
		t.Errorf("expected 50 completed jobs, got %d", done)
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	var active, peak int64

	pool := NewWorkerPool(2, 0)
	for i := 0; i < 20; i++ {
		pool.Submit(func() {
			n := atomic.AddInt64(&active, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt64(&active, -1)
		})
	}
	pool.Wait()

	if peak > 2 {
		t.Errorf("observed %d concurrent jobs, limit is 2", peak)
	}
}

func TestWorkerPoolRateLimit(t *testing.T) {
	rateLimitMs := 50
	pool := NewWorkerPool(1, rateLimitMs)

	var timestamps []time.Time
	mu := make(chan struct{}, 1)
	mu <- struct{}{}

	for i := 0; i < 3; i++ {
		pool.Submit(func() {
			<-mu
			timestamps = append(timestamps, time.Now())
			mu <- struct{}{}
		})
	}
	pool.Wait()

	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		min := time.Duration(rateLimitMs) * time.Millisecond
		if gap < min {
			t.Errorf("gap between job %d and %d: %v < minimum %v", i-1, i, gap, min)
		}
	}
}
