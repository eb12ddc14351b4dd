package table

// Stats is a point-in-time snapshot of table shape, for diagnostics and
// tests. Computing it walks every bucket.
type Stats struct {
	Entries  int     // live associations (== Len())
	Buckets  int     // bucket count (== Buckets())
	Occupied int     // buckets with at least one entry
	MaxChain int     // longest collision chain
	Load     float64 // Entries / Buckets
}

// Stats scans the table and returns its current shape.
func (t *Table[K, V]) Stats() Stats {
	s := Stats{
		Entries: t.count,
		Buckets: len(t.buckets),
	}
	for _, e := range t.buckets {
		n := 0
		for ; e != nil; e = e.next {
			n++
		}
		if n > 0 {
			s.Occupied++
		}
		if n > s.MaxChain {
			s.MaxChain = n
		}
	}
	if s.Buckets > 0 {
		s.Load = float64(s.Entries) / float64(s.Buckets)
	}
	return s
}
