package main

import (
	"testing"

	"github.com/joshuapare/memkit/table"
)

func TestBenchCommand(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		tolerance   int
		mmap        bool
		wantJSON    bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:      "small run",
			count:     500,
			tolerance: table.DefaultTolerance,
			wantContain: []string{
				"Benchmark: 500 operations per phase",
				"insert:",
				"iterate:",
				"churn:",
				"ns/op",
				"heap",
			},
		},
		{
			name:      "fixed size table",
			count:     200,
			tolerance: 0,
			wantContain: []string{
				"tolerance=0",
				"200 entries in 16 buckets",
			},
		},
		{
			name:      "mmap backed pool",
			count:     200,
			tolerance: table.DefaultTolerance,
			mmap:      true,
			wantContain: []string{
				"Raw pool (mmap",
			},
		},
		{
			name:        "json output",
			count:       300,
			tolerance:   table.DefaultTolerance,
			wantJSON:    true,
			wantContain: []string{`"Count": 300`, `"PoolSource": "heap"`},
		},
		{
			name:      "bad count",
			count:     0,
			tolerance: table.DefaultTolerance,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = tt.wantJSON
			benchCount = tt.count
			benchBuckets = table.DefaultBuckets
			benchTol = tt.tolerance
			benchElemSize = 32
			benchMmap = tt.mmap

			output, err := captureOutput(t, func() error {
				return runBench()
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runBench() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
				return
			}

			if tt.wantJSON && !tt.wantErr {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}
