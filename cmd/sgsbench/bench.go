package main

import (
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/andatr/segregated-storage/sgs/pool"
)

var benchOps int

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchOps, "ops", 10_000_000, "Operations per scenario")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Compare pooled allocation against the heap",
		Long: `The bench command times single-threaded get/put churn on a pool
against plain heap allocation of the same object, reporting ns/op and the
garbage collector runs each scenario triggered.

Example:
  sgsbench bench --ops 50000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

type benchObject struct {
	id      uint64
	payload [120]byte
}

func runBench() error {
	p, err := pool.New[benchObject](nil)
	if err != nil {
		return err
	}
	defer p.Close()

	printInfo("%-12s %12s %10s\n", "scenario", "ns/op", "gc runs")

	elapsed, gcs, err := timed(func() error {
		for i := 0; i < benchOps; i++ {
			o, err := p.Get()
			if err != nil {
				return err
			}
			o.id = uint64(i)
			p.Put(o)
		}
		return nil
	})
	if err != nil {
		return err
	}
	printInfo("%-12s %12.1f %10d\n", "pool", float64(elapsed.Nanoseconds())/float64(benchOps), gcs)

	var sink *benchObject
	elapsed, gcs, err = timed(func() error {
		for i := 0; i < benchOps; i++ {
			o := new(benchObject)
			o.id = uint64(i)
			sink = o
		}
		return nil
	})
	if err != nil {
		return err
	}
	_ = sink
	printInfo("%-12s %12.1f %10d\n", "heap", float64(elapsed.Nanoseconds())/float64(benchOps), gcs)
	return nil
}

// timed runs fn and reports wall time plus the GC cycles it triggered.
func timed(fn func() error) (time.Duration, uint32, error) {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)
	return elapsed, after.NumGC - before.NumGC, err
}
