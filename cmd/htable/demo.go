package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/theflywheel/htable"
	"github.com/urfave/cli/v3"
)

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Walk through insert, update, delete, growth and explicit resize",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDemo(cmd.Root().Writer, loggerFrom(cmd))
		},
	}
}

func runDemo(w io.Writer, l *slog.Logger) error {
	t, err := htable.New[int32, int32](htable.WithLogger(l))
	if err != nil {
		return err
	}
	defer htable.Destroy(&t)

	// Single key lifecycle.
	if err := t.Put(42, 100); err != nil {
		return err
	}
	fmt.Fprintf(w, "put 42 => 100, find(42) = %d\n", *t.Find(42))
	if err := t.Put(42, 200); err != nil {
		return err
	}
	fmt.Fprintf(w, "put 42 => 200, find(42) = %d, count = %d\n", *t.Find(42), t.Count())
	t.Delete(42)
	fmt.Fprintf(w, "delete 42, contains(42) = %t, count = %d\n", t.Contains(42), t.Count())

	// Growth.
	for i := int32(0); i < 1000; i++ {
		if err := t.Put(i, i); err != nil {
			return err
		}
	}
	for i := int32(0); i < 1000; i++ {
		var v int32
		if !t.Get(i, &v) || v != i {
			return fmt.Errorf("key %d lost after growth", i)
		}
	}
	s := t.Stats()
	fmt.Fprintf(w, "inserted 1000 keys: capacity = %d, load factor = %.3f, resizes = %d\n",
		s.Capacity, s.LoadFactor, s.Resizes)

	// Explicit resize.
	t.Clear()
	for i := int32(0); i < 5; i++ {
		if err := t.Put(i, i*10); err != nil {
			return err
		}
	}
	if err := t.Resize(10_000); err != nil {
		return err
	}
	fmt.Fprintf(w, "resized 5 keys to capacity %d:", t.Capacity())
	for k, v := range t.All() {
		fmt.Fprintf(w, " %d=%d", k, v)
	}
	fmt.Fprintln(w)
	return nil
}
