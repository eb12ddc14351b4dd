package table

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDump_EmptyTable(t *testing.T) {
	tbl := NewStrings[int](nil)

	var buf bytes.Buffer
	if err := tbl.Dump(&buf, DefaultDumpOptions()); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 16 {
		t.Fatalf("Dump produced %d lines, want 16", len(lines))
	}
	for i, line := range lines {
		want := fmt.Sprintf("[%04d]: ---------", i)
		if line != want {
			t.Errorf("line %d = %q, want %q", i, line, want)
		}
	}
}

func TestDump_SingleKey(t *testing.T) {
	tbl := NewStrings[int](nil)
	tbl.Insert("hello", 1)

	var buf bytes.Buffer
	if err := tbl.Dump(&buf, DefaultDumpOptions()); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()

	idx := HashString("hello") & 15
	want := fmt.Sprintf("[%04d]: %q; \n", idx, "hello")
	if !strings.Contains(out, want) {
		t.Errorf("Dump output missing %q:\n%s", want, out)
	}
	if got := strings.Count(out, emptyBucketMark); got != 15 {
		t.Errorf("Dump shows %d empty buckets, want 15", got)
	}
}

func TestDump_TruncatesLongKeys(t *testing.T) {
	tbl := NewStrings[int](nil)
	tbl.Insert("abcdefghijKLMNO", 1)

	var buf bytes.Buffer
	if err := tbl.Dump(&buf, DefaultDumpOptions()); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `"abcdefghij"`) {
		t.Errorf("Dump did not truncate to 10 bytes:\n%s", out)
	}
	if strings.Contains(out, "KLMNO") {
		t.Errorf("Dump leaked bytes past the truncation point:\n%s", out)
	}
}

func TestDump_NoTruncationWhenZero(t *testing.T) {
	tbl := NewStrings[int](nil)
	tbl.Insert("abcdefghijKLMNO", 1)

	var buf bytes.Buffer
	if err := tbl.Dump(&buf, DumpOptions{MaxKeyBytes: 0}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(buf.String(), `"abcdefghijKLMNO"`) {
		t.Errorf("Dump truncated with MaxKeyBytes=0:\n%s", buf.String())
	}
}

func TestDump_ShowValues(t *testing.T) {
	tbl := NewStrings[int](nil)
	tbl.Insert("k", 42)

	var buf bytes.Buffer
	opts := DefaultDumpOptions()
	opts.ShowValues = true
	if err := tbl.Dump(&buf, opts); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(buf.String(), `"k"=42; `) {
		t.Errorf("Dump missing key=value form:\n%s", buf.String())
	}
}

func TestDump_ChainInInsertionOrder(t *testing.T) {
	collide := func(string) uint32 { return 0 }
	tbl := New[string, int](collide, EqualString, &Config{InitialBuckets: 16})
	tbl.Insert("a", 1)
	tbl.Insert("b", 2)
	tbl.Insert("c", 3)

	var buf bytes.Buffer
	if err := tbl.Dump(&buf, DefaultDumpOptions()); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	first, _, _ := strings.Cut(buf.String(), "\n")
	want := `[0000]: "a"; "b"; "c"; `
	if first != want {
		t.Errorf("bucket 0 line = %q, want %q", first, want)
	}
}

func TestDump_NonStringKeys(t *testing.T) {
	tbl := NewUint32s[string](nil)
	tbl.Insert(42, "answer")

	var buf bytes.Buffer
	if err := tbl.Dump(&buf, DefaultDumpOptions()); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(buf.String(), `"42"`) {
		t.Errorf("Dump did not render numeric key:\n%s", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }

func TestDump_PropagatesWriteError(t *testing.T) {
	tbl := NewStrings[int](nil)
	tbl.Insert("k", 1)

	if err := tbl.Dump(failWriter{}, DefaultDumpOptions()); err == nil {
		t.Error("Dump on failing writer returned nil error")
	}
}
