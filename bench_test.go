// This file contains benchmarks for the table at several scales:
//   - Insertion and lookup of small numeric keys
//   - UUID keys with fixed-size 100 byte values
//   - One million keys, including every growth step on the way
package htable_test

import (
	"math/rand/v2"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/theflywheel/htable"
)

// BenchmarkPut measures inserts into a table that grows as it goes.
func BenchmarkPut(b *testing.B) {
	t, err := htable.New[uint64, uint64]()
	if err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}
	defer htable.Destroy(&t)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := t.Put(uint64(i), uint64(i)); err != nil {
			b.Fatalf("Failed to put key %d: %v", i, err)
		}
	}
}

// BenchmarkFind measures random hits on a table of ten thousand keys.
func BenchmarkFind(b *testing.B) {
	const numKeys = 10_000

	t, err := htable.New[uint64, uint64]()
	if err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}
	defer htable.Destroy(&t)

	for i := uint64(0); i < numKeys; i++ {
		if err := t.Put(i, i*100); err != nil {
			b.Fatalf("Failed to put key %d: %v", i, err)
		}
	}

	keys := make([]uint64, 1024)
	for i := range keys {
		keys[i] = rand.Uint64N(numKeys)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i%len(keys)]
		if v := t.Find(k); v == nil || *v != k*100 {
			b.Fatalf("Lookup failed for key %d", k)
		}
	}
}

// BenchmarkHashers compares the digest strategies on a UUID-sized input.
func BenchmarkHashers(b *testing.B) {
	id := uuid.New()
	for name, h := range map[string]htable.Hasher{
		"xxhash":   htable.XXHash32,
		"xxhash64": htable.XXHash64Fold,
		"fnv1a":    htable.FNV1a32,
	} {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(id)))
			for i := 0; i < b.N; i++ {
				_ = h(id[:])
			}
		})
	}
}

// BenchmarkUUIDKeys inserts UUID keys with 100 byte values, then verifies
// every one of them.
//
// Metrics reported:
//   - inserts/s and lookups/s
//   - final bucket count, longest chain and resize count
func BenchmarkUUIDKeys(b *testing.B) {
	const numKeys = 100_000

	keys := make([]uuid.UUID, numKeys)
	for i := range keys {
		keys[i] = uuid.New()
	}
	value := func(id uuid.UUID) (v [100]byte) {
		for i := range v {
			v[i] = id[i%len(id)] ^ byte(i)
		}
		return v
	}

	for n := 0; n < b.N; n++ {
		t, err := htable.New[uuid.UUID, [100]byte]()
		if err != nil {
			b.Fatalf("Failed to create table: %v", err)
		}

		writeStart := time.Now()
		for _, id := range keys {
			if err := t.Put(id, value(id)); err != nil {
				b.Fatalf("Failed to put key %s: %v", id, err)
			}
		}
		writeTime := time.Since(writeStart)

		readStart := time.Now()
		for _, id := range keys {
			v := t.Find(id)
			if v == nil || *v != value(id) {
				b.Fatalf("Value mismatch for key %s", id)
			}
		}
		readTime := time.Since(readStart)

		stats := t.Stats()
		b.ReportMetric(float64(numKeys)/writeTime.Seconds(), "inserts/s")
		b.ReportMetric(float64(numKeys)/readTime.Seconds(), "lookups/s")
		b.ReportMetric(float64(stats.Capacity), "buckets")
		b.ReportMetric(float64(stats.LongestChain), "longest_chain")
		b.ReportMetric(float64(stats.Resizes), "resizes")
		htable.Destroy(&t)
	}
}

// BenchmarkMillionKeys grows a table from the default capacity to one million
// numeric keys and verifies a sample.
//
// Metrics reported:
//   - inserts/s
//   - heap MB held by the table
//   - final load factor
func BenchmarkMillionKeys(b *testing.B) {
	const (
		numKeys    = 1_000_000
		sampleSize = 10_000
	)

	for n := 0; n < b.N; n++ {
		runtime.GC()
		var before runtime.MemStats
		runtime.ReadMemStats(&before)

		t, err := htable.New[uint64, uint64]()
		if err != nil {
			b.Fatalf("Failed to create table: %v", err)
		}

		writeStart := time.Now()
		for i := uint64(0); i < numKeys; i++ {
			if err := t.Put(i, i); err != nil {
				b.Fatalf("Failed to put key %d: %v", i, err)
			}
		}
		writeTime := time.Since(writeStart)

		for i := 0; i < sampleSize; i++ {
			k := rand.Uint64N(numKeys)
			if v := t.Find(k); v == nil || *v != k {
				b.Fatalf("Verification failed for key %d", k)
			}
		}

		var after runtime.MemStats
		runtime.ReadMemStats(&after)

		b.ReportMetric(float64(numKeys)/writeTime.Seconds(), "inserts/s")
		b.ReportMetric(float64(after.HeapAlloc-min(after.HeapAlloc, before.HeapAlloc))/(1024*1024), "heap_mb")
		b.ReportMetric(t.LoadFactor(), "load_factor")
		htable.Destroy(&t)
	}
}
