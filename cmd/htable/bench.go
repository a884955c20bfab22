package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/theflywheel/htable"
	"github.com/theflywheel/htable/alloc"
	"github.com/urfave/cli/v3"
)

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Fill a table, verify it, delete half and report its shape",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "keys",
				Aliases: []string{"n"},
				Usage:   "Number of keys to insert",
			},
			&cli.StringFlag{
				Name:  "key-kind",
				Usage: "Key type: u64 or uuid",
			},
			&cli.StringFlag{
				Name:  "hasher",
				Usage: "Digest: xxhash, xxhash64 or fnv",
			},
			&cli.Int64Flag{
				Name:  "budget",
				Usage: "Byte budget for buckets and nodes (0 = unlimited)",
			},
			&cli.IntFlag{
				Name:  "initial-capacity",
				Usage: "Starting bucket count, rounded up to a prime",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format: text, json, prom or dump",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)
			if err := cfg.validate(); err != nil {
				return err
			}

			l := loggerFrom(cmd)
			rep, err := runBench(ctx, cfg, l)
			if err != nil {
				return err
			}
			return writeReport(cmd.Root().Writer, cfg.Format, rep)
		},
	}
}

// Report is the outcome of one bench run.
type Report struct {
	Config      Config        `json:"config"`
	Inserted    int           `json:"inserted"`
	Deleted     int           `json:"deleted"`
	InsertTime  time.Duration `json:"insert_ns"`
	LookupTime  time.Duration `json:"lookup_ns"`
	BudgetInUse int64         `json:"budget_in_use,omitempty"`
	Stats       htable.Stats  `json:"stats"`
}

func runBench(ctx context.Context, cfg Config, l *slog.Logger) (Report, error) {
	hasher, err := hasherByName(cfg.Hasher)
	if err != nil {
		return Report{}, err
	}
	opts := []htable.Option{
		htable.WithHasher(hasher),
		htable.WithLogger(l),
		htable.WithInitialCapacity(cfg.InitialCapacity),
	}

	var budget *alloc.Budget
	if cfg.Budget > 0 {
		budget = alloc.NewBudget(cfg.Budget)
		opts = append(opts, htable.WithAllocator(budget))
	}

	var rep Report
	switch cfg.KeyKind {
	case "uuid":
		keys := make([]uuid.UUID, cfg.Keys)
		for i := range keys {
			keys[i] = uuid.New()
		}
		rep, err = benchKeys(ctx, keys, opts, budget, l)
	default:
		keys := make([]uint64, cfg.Keys)
		for i := range keys {
			keys[i] = uint64(i)
		}
		rep, err = benchKeys(ctx, keys, opts, budget, l)
	}
	if err != nil {
		return Report{}, err
	}

	rep.Config = cfg
	return rep, nil
}

// benchKeys stores keys[i] -> i, checks every lookup, deletes the even
// positions and checks again. budget may be nil.
func benchKeys[K any](ctx context.Context, keys []K, opts []htable.Option, budget *alloc.Budget, l *slog.Logger) (Report, error) {
	t, err := htable.New[K, uint64](opts...)
	if err != nil {
		return Report{}, fmt.Errorf("creating table: %w", err)
	}
	defer htable.Destroy(&t)

	var rep Report

	start := time.Now()
	for i, k := range keys {
		if err := t.Put(k, uint64(i)); err != nil {
			l.Error("insert failed", "inserted", i, "capacity", t.Capacity(), "error", err)
			return Report{}, fmt.Errorf("insert %d of %d: %w", i+1, len(keys), err)
		}
		if i%65536 == 0 {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
		}
	}
	rep.InsertTime = time.Since(start)
	rep.Inserted = t.Count()
	l.Debug("inserted", "count", t.Count(), "capacity", t.Capacity(), "took", rep.InsertTime)

	start = time.Now()
	for i, k := range keys {
		var v uint64
		if !t.Get(k, &v) || v != uint64(i) {
			return Report{}, fmt.Errorf("lookup of key %d returned %d", i, v)
		}
	}
	rep.LookupTime = time.Since(start)

	for i := 0; i < len(keys); i += 2 {
		if t.Delete(keys[i]) {
			rep.Deleted++
		}
	}
	for i, k := range keys {
		if t.Contains(k) == (i%2 == 0) {
			return Report{}, fmt.Errorf("key %d has wrong presence after deletes", i)
		}
	}

	rep.Stats = t.Stats()
	if budget != nil {
		rep.BudgetInUse = budget.InUse()
	}
	return rep, nil
}
