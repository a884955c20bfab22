// Package metrics exports htable statistics to Prometheus.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/theflywheel/htable"
)

// Source is anything that reports table statistics; every *htable.Table does.
type Source interface {
	Stats() htable.Stats
}

// Collector reads a Source on every scrape. Tables are not safe for
// concurrent use, so when the table is mutated from other goroutines pass the
// lock that guards it; Collect holds it while reading.
type Collector struct {
	src Source
	mu  sync.Locker

	entries      *prometheus.Desc
	capacity     *prometheus.Desc
	loadFactor   *prometheus.Desc
	usedBuckets  *prometheus.Desc
	longestChain *prometheus.Desc
	resizes      *prometheus.Desc
}

// NewCollector returns a collector for src. mu may be nil.
func NewCollector(namespace string, src Source, mu sync.Locker, labels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, labels)
	}
	return &Collector{
		src:          src,
		mu:           mu,
		entries:      desc("entries", "Number of live entries."),
		capacity:     desc("buckets", "Length of the bucket array."),
		loadFactor:   desc("load_factor", "Entries per bucket."),
		usedBuckets:  desc("used_buckets", "Buckets holding at least one entry."),
		longestChain: desc("longest_chain", "Length of the longest chain."),
		resizes:      desc("resizes_total", "Bucket array resizes since init."),
	}
}

// Describe sends the descriptors of every table metric.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.capacity
	ch <- c.loadFactor
	ch <- c.usedBuckets
	ch <- c.longestChain
	ch <- c.resizes
}

// Collect reads the source's stats once and sends them as constant metrics.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.mu != nil {
		c.mu.Lock()
	}
	s := c.src.Stats()
	if c.mu != nil {
		c.mu.Unlock()
	}

	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Count))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.loadFactor, prometheus.GaugeValue, s.LoadFactor)
	ch <- prometheus.MustNewConstMetric(c.usedBuckets, prometheus.GaugeValue, float64(s.UsedBuckets))
	ch <- prometheus.MustNewConstMetric(c.longestChain, prometheus.GaugeValue, float64(s.LongestChain))
	ch <- prometheus.MustNewConstMetric(c.resizes, prometheus.CounterValue, float64(s.Resizes))
}
