package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"

	"github.com/joshuapare/memkit/cmd/memctl/logger"
	"github.com/joshuapare/memkit/pool"
	"github.com/joshuapare/memkit/table"
	"github.com/joshuapare/memkit/track"
)

var (
	demoPerBlock int
	demoDump     bool
	demoKeep     int
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoPerBlock, "per-block", 64, "Pool slots per block")
	cmd.Flags().BoolVar(&demoDump, "dump", false, "Dump table buckets after loading")
	cmd.Flags().IntVar(&demoKeep, "keep", 0, "Leave N records unfreed and report their allocation sites")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo <dataset.hujson>",
		Short: "Load a dataset into a pool-backed table",
		Long: `The demo command reads a JSONC dataset, stores each record in a typed
pool, and indexes the records by ID in a hashtable. It then verifies every
lookup, drains the table through Pop, and reports table and pool statistics.

Example:
  memctl demo testdata/people.hujson
  memctl demo testdata/people.hujson --dump
  memctl demo testdata/people.hujson --keep 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(args[0])
		},
	}
}

// Person is one dataset record.
type Person struct {
	ID   string `json:"id"`
	Team string `json:"team"`
	Age  int    `json:"age"`
}

type dataset struct {
	People []Person `json:"people"`
}

// DemoReport is the demo command's result summary.
type DemoReport struct {
	Dataset  string
	Records  int
	Replaced int
	Drained  int
	Leaked   int
	LoadTime string

	Table table.Stats
	Pool  pool.Stats
}

func runDemo(path string) error {
	printVerbose("Reading dataset: %s\n", path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return fmt.Errorf("invalid JSONC: %w", err)
	}
	var ds dataset
	if err := json.Unmarshal(std, &ds); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}
	logger.Info("dataset parsed", "path", path, "records", len(ds.People))

	counter := &track.Counter{}
	sites := track.NewSites()
	people := pool.New[Person](&pool.Config{
		PerBlock: demoPerBlock,
		Reclaim:  true,
		Logger:   logger.L,
		Tracker:  track.Multi(counter, sites),
	})
	byID := table.NewStrings[pool.Ref](nil)

	start := time.Now()
	replaced := 0
	for _, p := range ds.People {
		ref, rec, err := people.Alloc()
		if err != nil {
			return fmt.Errorf("allocating record %q: %w", p.ID, err)
		}
		*rec = p
		if prev, dup := byID.Insert(p.ID, ref); dup {
			// Last record with an ID wins; its predecessor goes back to
			// the pool.
			if err := people.Free(prev); err != nil {
				return fmt.Errorf("freeing replaced record %q: %w", p.ID, err)
			}
			replaced++
			printVerbose("duplicate id %q replaced\n", p.ID)
		}
	}
	loadTime := time.Since(start)

	// Every indexed ref must resolve to the record it was stored for.
	var verifyErr error
	if err := byID.Range(func(id string, ref pool.Ref) bool {
		rec, err := people.Get(ref)
		if err != nil {
			verifyErr = fmt.Errorf("index entry %q: %w", id, err)
			return false
		}
		if rec.ID != id {
			verifyErr = fmt.Errorf("index entry %q resolves to record %q", id, rec.ID)
			return false
		}
		return true
	}); err != nil {
		return err
	}
	if verifyErr != nil {
		return verifyErr
	}

	report := DemoReport{
		Dataset:  path,
		Records:  len(ds.People),
		Replaced: replaced,
		LoadTime: loadTime.String(),
		Table:    byID.Stats(),
		Pool:     people.Stats(),
	}

	if demoDump && !jsonOut {
		printInfo("Bucket layout:\n")
		if err := byID.Dump(os.Stdout, table.DefaultDumpOptions()); err != nil {
			return err
		}
	}

	// Drain through Pop, freeing each record, until only --keep remain.
	for byID.Len() > demoKeep {
		ref, ok := byID.Pop()
		if !ok {
			break
		}
		if err := people.Free(ref); err != nil {
			return fmt.Errorf("freeing drained record: %w", err)
		}
		report.Drained++
	}
	report.Leaked = int(counter.Live())
	logger.Info("demo finished", "drained", report.Drained, "leaked", report.Leaked)

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Loaded %d records from %s in %s\n", report.Records, report.Dataset, report.LoadTime)
	if report.Replaced > 0 {
		printInfo("  duplicate IDs replaced: %d\n", report.Replaced)
	}
	printInfo("Table: %d entries in %d buckets (occupied %d, longest chain %d, load %.2f)\n",
		report.Table.Entries, report.Table.Buckets, report.Table.Occupied,
		report.Table.MaxChain, report.Table.Load)
	printInfo("Pool:  %d live in %d block(s), %d allocs, %d frees, %d reclaims\n",
		report.Pool.Live, report.Pool.Blocks, report.Pool.Allocs,
		report.Pool.Frees, report.Pool.Reclaims)
	printInfo("Drained %d records via Pop\n", report.Drained)

	if demoKeep > 0 {
		printInfo("Leak report:\n")
		if err := sites.Report(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
