package main

import (
	"testing"
)

func TestVersionCommand(t *testing.T) {
	t.Run("text output", func(t *testing.T) {
		jsonOut = false
		out, err := captureOutput(t, func() error {
			return versionCmd.RunE(versionCmd, nil)
		})
		if err != nil {
			t.Fatalf("version: %v", err)
		}
		assertContains(t, out, []string{"memctl dev", "commit: none", "built: unknown"})
	})

	t.Run("json output", func(t *testing.T) {
		jsonOut = true
		defer func() { jsonOut = false }()
		out, err := captureOutput(t, func() error {
			return versionCmd.RunE(versionCmd, nil)
		})
		if err != nil {
			t.Fatalf("version: %v", err)
		}
		assertJSON(t, out)
		assertContains(t, out, []string{`"Version": "dev"`})
	})
}
