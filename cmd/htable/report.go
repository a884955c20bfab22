package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sugawarayuuta/sonnet"
	"github.com/theflywheel/htable"
	"github.com/theflywheel/htable/metrics"
)

// snapshot serves frozen stats to a metrics.Collector.
type snapshot htable.Stats

func (s snapshot) Stats() htable.Stats { return htable.Stats(s) }

func writeReport(w io.Writer, format string, rep Report) error {
	switch format {
	case "json":
		b, err := sonnet.Marshal(rep)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err

	case "prom":
		reg := prometheus.NewRegistry()
		labels := prometheus.Labels{"key_kind": rep.Config.KeyKind, "hasher": rep.Config.Hasher}
		if err := reg.Register(metrics.NewCollector("htable", snapshot(rep.Stats), nil, labels)); err != nil {
			return err
		}
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		enc := expfmt.NewEncoder(w, expfmt.FmtText)
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				return err
			}
		}
		return nil

	case "dump":
		spew.Fdump(w, rep)
		return nil
	}

	s := rep.Stats
	_, err := fmt.Fprintf(w,
		"keys:          %d (%s, %s)\n"+
			"inserted:      %d in %s\n"+
			"looked up:     %d in %s\n"+
			"deleted:       %d\n"+
			"entries:       %d\n"+
			"buckets:       %d (%d used)\n"+
			"load factor:   %.3f\n"+
			"longest chain: %d\n"+
			"resizes:       %d\n",
		rep.Config.Keys, rep.Config.KeyKind, rep.Config.Hasher,
		rep.Inserted, rep.InsertTime,
		rep.Inserted, rep.LookupTime,
		rep.Deleted,
		s.Count,
		s.Capacity, s.UsedBuckets,
		s.LoadFactor,
		s.LongestChain,
		s.Resizes,
	)
	if err == nil && rep.BudgetInUse > 0 {
		_, err = fmt.Fprintf(w, "budget in use: %d of %d bytes\n", rep.BudgetInUse, rep.Config.Budget)
	}
	return err
}
