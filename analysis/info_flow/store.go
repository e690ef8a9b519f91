package info_flow

//go:generate mockgen -destination=./mocks/store.go -package=info_flow_mocks github.com/Troublor/erebus-infoflow/analysis/info_flow Store

// Store is the taint-extent map the engine propagates through. Addresses of
// registers come from the Resolver, so both share one namespace.
type Store interface {
	Delete(addr Address, n uint64)
	Label(addr Address, n uint64, label string)
	// Copy replaces the taint of dst with that of src.
	Copy(dst Address, dstLen uint64, src Address, srcLen uint64)
	// Compute adds the taint of src to dst without erasing what dst already has.
	Compute(dst Address, dstLen uint64, src Address, srcLen uint64)
	Exists(addr Address, n uint64) bool
}

// LabelReader is implemented by stores that can report the labels on a range.
type LabelReader interface {
	Labels(addr Address, n uint64) []string
}

// ExtentCounter is implemented by stores that can report how many extents
// they hold.
type ExtentCounter interface {
	Len() int
}
