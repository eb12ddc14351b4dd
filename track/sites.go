package track

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/joshuapare/memkit/pool"
)

// maxFrames is how many stack frames Sites captures per allocation.
const maxFrames = 8

// callersSkip drops runtime.Callers and TrackAlloc itself from the
// capture. Frames between the capture and the user's caller (the pool's
// Alloc, a Multi combinator) are filtered out when reporting.
const callersSkip = 2

// internalFrames marks function-name fragments belonging to allocation
// plumbing rather than to the caller that asked for the slot.
var internalFrames = []string{
	"memkit/pool.",
	"memkit/track.multi",
	"memkit/track.(*Sites)",
}

// Sites records where every live slot was allocated. Attach one to a pool
// through Config.Tracker and dump the outstanding refs with Report when
// the pool should be empty: whatever is listed leaked.
//
// Capture costs a stack walk per Alloc. Like the pools it observes, Sites
// is not safe for concurrent use.
type Sites struct {
	live map[pool.Ref][]uintptr
}

var _ pool.Tracker = (*Sites)(nil)

// NewSites returns an empty recorder.
func NewSites() *Sites {
	return &Sites{live: make(map[pool.Ref][]uintptr)}
}

func (s *Sites) TrackAlloc(ref pool.Ref) {
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(callersSkip, pcs)
	s.live[ref] = pcs[:n]
}

func (s *Sites) TrackFree(ref pool.Ref) {
	delete(s.live, ref)
}

// Len returns the number of refs allocated but not yet freed.
func (s *Sites) Len() int { return len(s.live) }

// Report writes one line per outstanding ref, in ref order, naming the
// function, file, and line that allocated it.
func (s *Sites) Report(w io.Writer) error {
	refs := make([]pool.Ref, 0, len(s.live))
	for ref := range s.live {
		refs = append(refs, ref)
	}
	slices.Sort(refs)

	if _, err := fmt.Fprintf(w, "live allocations: %d\n", len(refs)); err != nil {
		return err
	}
	for _, ref := range refs {
		f := callerFrame(s.live[ref])
		if _, err := fmt.Fprintf(w, "  ref %d: %s (%s:%d)\n", ref, f.Function, f.File, f.Line); err != nil {
			return err
		}
	}
	return nil
}

// callerFrame resolves a capture to its first frame outside the
// allocation plumbing, falling back to the deepest frame when every one
// is internal.
func callerFrame(pcs []uintptr) runtime.Frame {
	frames := runtime.CallersFrames(pcs)
	var f runtime.Frame
	for more := true; more; {
		f, more = frames.Next()
		if !internalFrame(f.Function) {
			break
		}
	}
	return f
}

// internalFrame reports whether fn belongs to pool or tracker plumbing.
func internalFrame(fn string) bool {
	for _, frag := range internalFrames {
		if strings.Contains(fn, frag) {
			return true
		}
	}
	return false
}
