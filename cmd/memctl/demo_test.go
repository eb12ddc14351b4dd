package main

import (
	"testing"
)

func TestDemoCommand(t *testing.T) {
	tests := []struct {
		name           string
		dataset        string
		keep           int
		dump           bool
		wantJSON       bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:    "load people",
			dataset: "testdata/people.hujson",
			wantContain: []string{
				"Loaded 11 records",
				"duplicate IDs replaced: 1",
				"10 entries in 16 buckets",
				"Drained 10 records via Pop",
			},
			wantNotContain: []string{"Leak report"},
		},
		{
			name:    "keep and report leaks",
			dataset: "testdata/people.hujson",
			keep:    2,
			wantContain: []string{
				"Leak report:",
				"live allocations: 2",
				"runDemo",
			},
		},
		{
			name:    "dump buckets",
			dataset: "testdata/people.hujson",
			dump:    true,
			wantContain: []string{
				"Bucket layout:",
				"---------",
				`"grace"`,
			},
		},
		{
			name:        "json output",
			dataset:     "testdata/people.hujson",
			wantJSON:    true,
			wantContain: []string{`"Records": 11`, `"Replaced": 1`, `"Drained": 10`},
		},
		{
			name:    "missing file",
			dataset: "testdata/no-such-file.hujson",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = tt.wantJSON
			demoPerBlock = 64
			demoDump = tt.dump
			demoKeep = tt.keep

			output, err := captureOutput(t, func() error {
				return runDemo(tt.dataset)
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runDemo() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
				return
			}

			if tt.wantJSON && !tt.wantErr {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestDemoCommand_BadDatasets(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"not json at all", "this is not json", true},
		{"unbalanced braces", `{"people": [`, true},
		{"comments and trailing commas accepted", `{
			// JSONC features are fine
			"people": [
				{"id": "solo", "team": "qa", "age": 1},
			],
		}`, false},
		{"empty dataset", `{"people": []}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiet = false
			verbose = false
			jsonOut = false
			demoPerBlock = 64
			demoDump = false
			demoKeep = 0

			path := writeDataset(t, tt.content)
			output, err := captureOutput(t, func() error {
				return runDemo(path)
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("runDemo() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
			}
		})
	}
}
