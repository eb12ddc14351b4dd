package table

import (
	"errors"
	"io"
	"testing"
)

func TestIterator_YieldsEveryEntry(t *testing.T) {
	tbl := NewStrings[int](nil)
	want := map[string]int{}
	for i := 0; i < 100; i++ {
		tbl.Insert(key(i), i)
		want[key(i)] = i
	}

	it := tbl.Iter()
	defer it.Close()

	got := map[string]int{}
	for {
		v, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		k := it.Key()
		if _, dup := got[k]; dup {
			t.Fatalf("iterator yielded key %q twice", k)
		}
		got[k] = v
	}

	if len(got) != tbl.Len() {
		t.Fatalf("iteration yielded %d entries, Len() = %d", len(got), tbl.Len())
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("iterated value for %q = %d, want %d", k, got[k], v)
		}
	}
}

func TestIterator_EmptyTable(t *testing.T) {
	tbl := NewStrings[int](nil)

	it := tbl.Iter()
	defer it.Close()

	if _, err := it.Next(); err != io.EOF {
		t.Errorf("Next on empty table = %v, want io.EOF", err)
	}
}

func TestIterator_EOFIsSticky(t *testing.T) {
	tbl := NewStrings[int](nil)
	tbl.Insert("a", 1)

	it := tbl.Iter()
	defer it.Close()

	if _, err := it.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := it.Next(); err != io.EOF {
			t.Errorf("exhausted Next #%d = %v, want io.EOF", i+1, err)
		}
	}
}

func TestIterator_DetectsMutation(t *testing.T) {
	tbl := NewStrings[int](nil)
	for i := 0; i < 20; i++ {
		tbl.Insert(key(i), i)
	}

	it := tbl.Iter()
	defer it.Close()

	if _, err := it.Next(); err != nil {
		t.Fatalf("Next before mutation: %v", err)
	}

	tbl.Insert("fresh", 999)

	_, err := it.Next()
	if !errors.Is(err, ErrTableMutated) {
		t.Fatalf("Next after insert = %v, want ErrTableMutated", err)
	}

	// The failed iterator is terminal, not wedged.
	if _, err := it.Next(); err != io.EOF {
		t.Errorf("Next after failure = %v, want io.EOF", err)
	}
}

func TestIterator_DetectsRemoveAndClear(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Table[string, int])
	}{
		{"remove", func(tbl *Table[string, int]) { tbl.Remove(key(0)) }},
		{"pop", func(tbl *Table[string, int]) { tbl.Pop() }},
		{"clear", func(tbl *Table[string, int]) { tbl.Clear() }},
		{"replace", func(tbl *Table[string, int]) { tbl.Insert(key(1), -1) }},
	}

	for _, tt := range tests {
		tbl := NewStrings[int](nil)
		for i := 0; i < 8; i++ {
			tbl.Insert(key(i), i)
		}

		it := tbl.Iter()
		if _, err := it.Next(); err != nil {
			t.Fatalf("%s: Next before mutation: %v", tt.name, err)
		}

		tt.mutate(tbl)

		if _, err := it.Next(); !errors.Is(err, ErrTableMutated) {
			t.Errorf("%s: Next after mutation = %v, want ErrTableMutated", tt.name, err)
		}
		it.Close()
	}
}

func TestIterator_FindDoesNotInvalidate(t *testing.T) {
	tbl := NewStrings[int](nil)
	for i := 0; i < 8; i++ {
		tbl.Insert(key(i), i)
	}

	it := tbl.Iter()
	defer it.Close()

	n := 0
	for {
		_, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		tbl.Find(key(3)) // lookups are pure and keep cursors valid
		n++
	}
	if n != 8 {
		t.Errorf("iteration yielded %d entries, want 8", n)
	}
}

func TestIterator_CloseThenReuse(t *testing.T) {
	tbl := NewStrings[int](nil)
	for i := 0; i < 5; i++ {
		tbl.Insert(key(i), i)
	}

	it := tbl.Iter()
	if _, err := it.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	it.Close()

	if _, err := it.Next(); err != io.EOF {
		t.Errorf("Next on closed iterator = %v, want io.EOF", err)
	}

	// A fresh cursor starts over from the first entry regardless of pooled
	// reuse of the struct.
	it2 := tbl.Iter()
	defer it2.Close()
	n := 0
	for {
		if _, err := it2.Next(); err != nil {
			break
		}
		n++
	}
	if n != 5 {
		t.Errorf("reused iterator yielded %d entries, want 5", n)
	}
}

func TestRange_StopsEarly(t *testing.T) {
	tbl := NewStrings[int](nil)
	for i := 0; i < 10; i++ {
		tbl.Insert(key(i), i)
	}

	n := 0
	err := tbl.Range(func(string, int) bool {
		n++
		return n < 4
	})
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if n != 4 {
		t.Errorf("Range visited %d entries after early stop, want 4", n)
	}
}

func TestRange_ReportsMutation(t *testing.T) {
	tbl := NewStrings[int](nil)
	for i := 0; i < 10; i++ {
		tbl.Insert(key(i), i)
	}

	err := tbl.Range(func(k string, _ int) bool {
		tbl.Remove(k)
		return true
	})
	if !errors.Is(err, ErrTableMutated) {
		t.Errorf("Range with mutating callback = %v, want ErrTableMutated", err)
	}
}
