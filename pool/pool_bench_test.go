package pool

import (
	"testing"
)

// BenchmarkPool_AllocFree measures steady-state churn, where every Alloc
// is served from the free list.
func BenchmarkPool_AllocFree(b *testing.B) {
	p := New[[64]byte](&Config{PerBlock: 256})

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		ref, _, err := p.Alloc()
		if err != nil {
			b.Fatal(err)
		}
		if err := p.Free(ref); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPool_Get measures ref dereference cost.
func BenchmarkPool_Get(b *testing.B) {
	p := New[[64]byte](&Config{PerBlock: 256})
	ref, _, err := p.Alloc()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		if _, err := p.Get(ref); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRawPool_AllocFree measures churn on the untyped pool, for
// comparison with the tagged one.
func BenchmarkRawPool_AllocFree(b *testing.B) {
	p, err := NewRaw(64, 256, &RawConfig{})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		ref, _, err := p.Alloc()
		if err != nil {
			b.Fatal(err)
		}
		if err := p.Free(ref); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRawPool_Carve measures first-touch allocation, where every
// slot comes from the bump cursor and blocks grow as needed.
func BenchmarkRawPool_Carve(b *testing.B) {
	b.ReportAllocs()

	p, err := NewRaw(64, 4096, &RawConfig{})
	if err != nil {
		b.Fatal(err)
	}
	for range b.N {
		if _, _, err := p.Alloc(); err != nil {
			b.Fatal(err)
		}
	}
}
