package ast

// Ref packs a 31-bit node id and a validity flag into one 32-bit word: bit
// 31 set means valid, the low 31 bits carry the id. The zero value is
// invalid. Using Ref caps the addressable id space at 2^31-1 nodes; that is
// a deliberate trade-off, not an accident.
//
// Ref is the return channel for lookups that may legitimately fail to
// resolve to a node. Callers must check Valid before reading ID; the id of
// an invalid Ref is unspecified.
type Ref uint32

const (
	refValidBit = 1 << 31
	refIDMask   = refValidBit - 1

	// MaxNodeID is the largest id representable by a Ref.
	MaxNodeID NodeID = refIDMask - 1
)

// MakeRef wraps id into a valid Ref.
func MakeRef(id NodeID) Ref {
	return Ref(uint32(id)&refIDMask | refValidBit)
}

// InvalidRef returns the "no node" value. Identical to the zero value.
func InvalidRef() Ref {
	return Ref(0)
}

// Valid reports whether the Ref carries a node id.
func (r Ref) Valid() bool {
	return r&refValidBit != 0
}

// ID returns the packed node id. Only meaningful when Valid is true.
func (r Ref) ID() NodeID {
	return NodeID(r & refIDMask)
}
