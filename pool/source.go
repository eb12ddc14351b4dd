package pool

// BlockSource provides block memory for a RawPool. Alloc returns exactly
// size zero-filled bytes; Free takes back a slice previously returned by
// Alloc, whole and unmodified in length.
type BlockSource interface {
	Alloc(size int) ([]byte, error)
	Free(b []byte) error
}

// HeapSource allocates blocks on the Go heap. Free is a no-op; the
// garbage collector takes care of released blocks.
type HeapSource struct{}

var _ BlockSource = HeapSource{}

func (HeapSource) Alloc(size int) ([]byte, error) { return make([]byte, size), nil }

func (HeapSource) Free([]byte) error { return nil }
