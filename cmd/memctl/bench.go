package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/cmd/memctl/logger"
	"github.com/joshuapare/memkit/pool"
	"github.com/joshuapare/memkit/table"
)

var (
	benchCount    int
	benchBuckets  int
	benchTol      int
	benchElemSize int
	benchMmap     bool
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVarP(&benchCount, "count", "n", 100000, "Operations per phase")
	cmd.Flags().IntVar(&benchBuckets, "buckets", table.DefaultBuckets, "Initial bucket count")
	cmd.Flags().IntVar(&benchTol, "tolerance", table.DefaultTolerance, "Resize tolerance percent, 0 disables resizing")
	cmd.Flags().IntVar(&benchElemSize, "elem-size", 64, "Raw pool element size in bytes")
	cmd.Flags().BoolVar(&benchMmap, "mmap", false, "Back the raw pool with anonymous mappings")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Benchmark table and pool operations",
		Long: `The bench command times bulk insert, lookup, iteration, and removal on
a hashtable, then alloc/free traffic on a raw pool.

Example:
  memctl bench
  memctl bench -n 1000000 --tolerance 0
  memctl bench --mmap --elem-size 256`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

// BenchReport is the bench command's result summary.
type BenchReport struct {
	Count int

	TableInsert  string
	TableFind    string
	TableIterate string
	TableRemove  string
	TablePeak    table.Stats

	PoolSource string
	PoolAlloc  string
	PoolFree   string
	PoolChurn  string
	PoolStats  pool.Stats
}

// nsPerOp renders a phase duration with its per-operation cost.
func nsPerOp(d time.Duration, n int) string {
	return fmt.Sprintf("%s (%.0f ns/op)", d, float64(d.Nanoseconds())/float64(n))
}

func runBench() error {
	if benchCount <= 0 {
		return fmt.Errorf("count must be positive, got %d", benchCount)
	}
	report := BenchReport{Count: benchCount}

	keys := make([]string, benchCount)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%08d", i)
	}

	tbl := table.NewStrings[int](&table.Config{
		InitialBuckets: benchBuckets,
		Tolerance:      benchTol,
	})

	printVerbose("Table phase: %d keys\n", benchCount)
	start := time.Now()
	for i, k := range keys {
		tbl.Insert(k, i)
	}
	report.TableInsert = nsPerOp(time.Since(start), benchCount)
	report.TablePeak = tbl.Stats()
	logger.Debug("bench inserts done", "entries", tbl.Len(), "buckets", tbl.Buckets())

	start = time.Now()
	hits := 0
	for _, k := range keys {
		if _, ok := tbl.Find(k); ok {
			hits++
		}
	}
	report.TableFind = nsPerOp(time.Since(start), benchCount)
	if hits != benchCount {
		return fmt.Errorf("found %d of %d keys", hits, benchCount)
	}

	start = time.Now()
	seen := 0
	if err := tbl.Range(func(string, int) bool {
		seen++
		return true
	}); err != nil {
		return err
	}
	report.TableIterate = nsPerOp(time.Since(start), benchCount)
	if seen != benchCount {
		return fmt.Errorf("iterated %d of %d entries", seen, benchCount)
	}

	start = time.Now()
	for _, k := range keys {
		tbl.Remove(k)
	}
	report.TableRemove = nsPerOp(time.Since(start), benchCount)
	if tbl.Len() != 0 {
		return fmt.Errorf("%d entries left after removal", tbl.Len())
	}

	var src pool.BlockSource = pool.HeapSource{}
	report.PoolSource = "heap"
	if benchMmap {
		src = pool.MmapSource{}
		report.PoolSource = "mmap"
	}
	rp, err := pool.NewRaw(benchElemSize, 1024, &pool.RawConfig{Source: src, Logger: logger.L})
	if err != nil {
		return err
	}
	defer rp.Close()

	printVerbose("Pool phase: %d slots of %d bytes (%s)\n", benchCount, rp.ElemSize(), report.PoolSource)
	refs := make([]pool.Ref, benchCount)
	start = time.Now()
	for i := range refs {
		ref, b, err := rp.Alloc()
		if err != nil {
			return fmt.Errorf("pool alloc %d: %w", i, err)
		}
		b[0] = byte(i)
		refs[i] = ref
	}
	report.PoolAlloc = nsPerOp(time.Since(start), benchCount)

	start = time.Now()
	for i, ref := range refs {
		if err := rp.Free(ref); err != nil {
			return fmt.Errorf("pool free %d: %w", i, err)
		}
	}
	report.PoolFree = nsPerOp(time.Since(start), benchCount)

	// With every slot parked on the free list, churn measures pure reuse.
	start = time.Now()
	for i := 0; i < benchCount; i++ {
		ref, _, err := rp.Alloc()
		if err != nil {
			return fmt.Errorf("pool churn alloc: %w", err)
		}
		if err := rp.Free(ref); err != nil {
			return fmt.Errorf("pool churn free: %w", err)
		}
	}
	report.PoolChurn = nsPerOp(time.Since(start), benchCount)
	report.PoolStats = rp.Stats()

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Benchmark: %d operations per phase\n", report.Count)
	printInfo("Table (buckets=%d, tolerance=%d):\n", benchBuckets, benchTol)
	printInfo("  insert:  %s\n", report.TableInsert)
	printInfo("  find:    %s\n", report.TableFind)
	printInfo("  iterate: %s\n", report.TableIterate)
	printInfo("  remove:  %s\n", report.TableRemove)
	printInfo("  peak: %d entries in %d buckets (occupied %d, longest chain %d, load %.2f)\n",
		report.TablePeak.Entries, report.TablePeak.Buckets, report.TablePeak.Occupied,
		report.TablePeak.MaxChain, report.TablePeak.Load)
	printInfo("Raw pool (%s, %d-byte slots):\n", report.PoolSource, rp.ElemSize())
	printInfo("  alloc: %s\n", report.PoolAlloc)
	printInfo("  free:  %s\n", report.PoolFree)
	printInfo("  churn: %s\n", report.PoolChurn)
	printInfo("  totals: %d allocs, %d frees, %d blocks held\n",
		report.PoolStats.Allocs, report.PoolStats.Frees, report.PoolStats.Blocks)
	return nil
}
