package taint_store

import (
	"math"
	"sort"

	"github.com/Workiva/go-datastructures/augmentedtree"
	"github.com/samber/lo"

	"github.com/Troublor/erebus-infoflow/analysis/info_flow"
	"github.com/Troublor/erebus-infoflow/helpers"
)

// extent is a half-open byte range [lo, hi) whose bytes all carry the same
// non-empty label set.
type extent struct {
	id     uint64
	lo, hi int64
	labels []string
}

func (x *extent) LowAtDimension(uint64) int64 {
	return x.lo
}

func (x *extent) HighAtDimension(uint64) int64 {
	return x.hi
}

func (x *extent) OverlapsAtDimension(iv augmentedtree.Interval, d uint64) bool {
	return x.lo < iv.HighAtDimension(d) && iv.LowAtDimension(d) < x.hi
}

func (x *extent) ID() uint64 {
	return x.id
}

// span is a query window, never stored.
type span struct {
	lo, hi int64
}

func (s span) LowAtDimension(uint64) int64  { return s.lo }
func (s span) HighAtDimension(uint64) int64 { return s.hi }
func (s span) ID() uint64                   { return math.MaxUint64 }
func (s span) OverlapsAtDimension(iv augmentedtree.Interval, d uint64) bool {
	return s.lo < iv.HighAtDimension(d) && iv.LowAtDimension(d) < s.hi
}

// Extent is an exported view of a stored extent.
type Extent struct {
	Addr   info_flow.Address
	Size   uint64
	Labels []string
}

// Store is an info_flow.Store keeping labelled extents in an interval tree.
// Addresses must stay below 2^63.
type Store struct {
	tree   augmentedtree.Tree
	nextID uint64
	graph  *FlowGraph
}

type Option func(s *Store)

// WithFlowGraph records label provenance into g.
func WithFlowGraph(g *FlowGraph) Option {
	return func(s *Store) {
		s.graph = g
	}
}

func New(opts ...Option) *Store {
	s := &Store{tree: augmentedtree.New(1)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) FlowGraph() *FlowGraph {
	return s.graph
}

func toSpan(addr info_flow.Address, n uint64) span {
	helpers.SanityCheck(func() bool {
		return uint64(addr) <= math.MaxInt64-n
	}, "taint store address out of range:", addr.String())
	return span{lo: int64(addr), hi: int64(addr) + int64(n)}
}

// overlapping returns the extents intersecting w ordered by address.
func (s *Store) overlapping(w span) []*extent {
	if w.lo >= w.hi {
		return nil
	}
	// the tree compares closed intervals, so widen the window and filter
	query := span{lo: w.lo, hi: w.hi}
	if query.lo > 0 {
		query.lo--
	}
	found := s.tree.Query(query)
	res := make([]*extent, 0, len(found))
	for _, iv := range found {
		x := iv.(*extent)
		if x.lo < w.hi && w.lo < x.hi {
			res = append(res, x)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].lo < res[j].lo })
	return res
}

func (s *Store) insert(lo, hi int64, labels []string) {
	if lo >= hi || len(labels) == 0 {
		return
	}
	s.nextID++
	s.tree.Add(&extent{id: s.nextID, lo: lo, hi: hi, labels: labels})
}

// rewrite replaces the labels of every byte in w by update(old), where old
// is nil for untainted bytes. Bytes outside w are preserved.
func (s *Store) rewrite(w span, update func(old []string) []string) {
	if w.lo >= w.hi {
		return
	}
	olds := s.overlapping(w)
	for _, x := range olds {
		s.tree.Delete(x)
	}
	cursor := w.lo
	for _, x := range olds {
		// parts outside the window keep their labels
		s.insert(x.lo, w.lo, x.labels)
		s.insert(w.hi, x.hi, x.labels)

		from, to := max64(x.lo, w.lo), min64(x.hi, w.hi)
		s.insert(cursor, from, update(nil))
		s.insert(from, to, update(x.labels))
		cursor = to
	}
	s.insert(cursor, w.hi, update(nil))
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func union(sets ...[]string) []string {
	all := lo.Uniq(lo.Flatten(sets))
	sort.Strings(all)
	return all
}

func (s *Store) labelsIn(w span) []string {
	return union(lo.Map(s.overlapping(w), func(x *extent, _ int) []string {
		return x.labels
	})...)
}

func (s *Store) Delete(addr info_flow.Address, n uint64) {
	s.rewrite(toSpan(addr, n), func([]string) []string { return nil })
}

func (s *Store) Label(addr info_flow.Address, n uint64, label string) {
	if n == 0 {
		return
	}
	s.rewrite(toSpan(addr, n), func(old []string) []string {
		return union(old, []string{label})
	})
	s.graph.recordLabel(label, addr)
}

// Copy replaces the taint of [dst, dst+dstLen). With equal lengths byte i of
// dst takes the labels of byte i of src; otherwise every dst byte takes the
// union of all src labels.
func (s *Store) Copy(dst info_flow.Address, dstLen uint64, src info_flow.Address, srcLen uint64) {
	if dstLen == 0 {
		return
	}
	dw, sw := toSpan(dst, dstLen), toSpan(src, srcLen)
	if dstLen != srcLen {
		labels := s.labelsIn(sw)
		s.rewrite(dw, func([]string) []string { return labels })
		s.graph.recordTransfer(src, dst, labels, FlowCopy)
		return
	}
	type piece struct {
		lo, hi int64
		labels []string
	}
	shift := dw.lo - sw.lo
	pieces := lo.Map(s.overlapping(sw), func(x *extent, _ int) piece {
		return piece{lo: max64(x.lo, sw.lo) + shift, hi: min64(x.hi, sw.hi) + shift, labels: x.labels}
	})
	s.rewrite(dw, func([]string) []string { return nil })
	var moved [][]string
	for _, p := range pieces {
		s.insert(p.lo, p.hi, p.labels)
		moved = append(moved, p.labels)
	}
	s.graph.recordTransfer(src, dst, union(moved...), FlowCopy)
}

// Compute adds the union of the labels of [src, src+srcLen) to every byte of
// [dst, dst+dstLen).
func (s *Store) Compute(dst info_flow.Address, dstLen uint64, src info_flow.Address, srcLen uint64) {
	labels := s.labelsIn(toSpan(src, srcLen))
	if len(labels) == 0 || dstLen == 0 {
		return
	}
	s.rewrite(toSpan(dst, dstLen), func(old []string) []string {
		return union(old, labels)
	})
	s.graph.recordTransfer(src, dst, labels, FlowCompute)
}

func (s *Store) Exists(addr info_flow.Address, n uint64) bool {
	return len(s.overlapping(toSpan(addr, n))) > 0
}

// Labels returns the sorted union of the labels on [addr, addr+n).
func (s *Store) Labels(addr info_flow.Address, n uint64) []string {
	return s.labelsIn(toSpan(addr, n))
}

// Len is the number of stored extents.
func (s *Store) Len() int {
	return int(s.tree.Len())
}

// Extents lists every stored extent ordered by address.
func (s *Store) Extents() []Extent {
	return lo.Map(s.overlapping(span{lo: 0, hi: math.MaxInt64}), func(x *extent, _ int) Extent {
		return Extent{
			Addr:   info_flow.Address(x.lo),
			Size:   uint64(x.hi - x.lo),
			Labels: x.labels,
		}
	})
}

var (
	_ info_flow.Store         = (*Store)(nil)
	_ info_flow.LabelReader   = (*Store)(nil)
	_ info_flow.ExtentCounter = (*Store)(nil)
)
