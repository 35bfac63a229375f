// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-classical.
//
// go-classical is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package metrics

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// ResourceCollector samples the runtime on a fixed interval and publishes
// goroutine, heap, GC and uptime gauges.
type ResourceCollector struct {
	interval time.Duration
	started  time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewResourceCollector returns a collector that samples every interval once
// Run is called. A non-positive interval is treated as one second.
func NewResourceCollector(interval time.Duration) *ResourceCollector {
	if interval <= 0 {
		interval = time.Second
	}
	return &ResourceCollector{
		interval: interval,
		started:  time.Now(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run samples immediately and then on every tick until ctx is done or Stop
// is called. It blocks.
func (rc *ResourceCollector) Run(ctx context.Context) {
	defer close(rc.done)

	ticker := time.NewTicker(rc.interval)
	defer ticker.Stop()

	rc.sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-rc.stop:
			return
		case <-ticker.C:
			rc.sample()
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (rc *ResourceCollector) Stop() {
	rc.stopOnce.Do(func() { close(rc.stop) })
}

// Done is closed when Run returns.
func (rc *ResourceCollector) Done() <-chan struct{} {
	return rc.done
}

func (rc *ResourceCollector) sample() {
	if !IsEnabled() {
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	Goroutines.Set(float64(runtime.NumGoroutine()))
	MemoryAllocBytes.Set(float64(mem.Alloc))
	HeapObjects.Set(float64(mem.HeapObjects))
	GCCycles.Set(float64(mem.NumGC))
	ServerUptime.Set(time.Since(rc.started).Seconds())
}

// StartResourceCollector runs a new collector in the background until ctx
// is done or Stop is called.
func StartResourceCollector(ctx context.Context, interval time.Duration) *ResourceCollector {
	rc := NewResourceCollector(interval)
	go rc.Run(ctx)
	return rc
}
