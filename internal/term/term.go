// Package term holds the immutable value types that flow unchanged
// from the parser through the blueprint builder into the fuse-map
// builder: a pin reference and a sum-of-products term built from them.
package term

// Pin is a possibly-negated reference to an input pin.
type Pin struct {
	Number int
	Neg    bool
}

// Term is an OR of AND-groups ("product terms"); each inner slice is
// one product, the AND of its pins. Terms are value trees: copying one
// is just copying a small slice of slices, and no term is ever mutated
// after construction.
type Term struct {
	Line int
	Pins [][]Pin
}

// True returns the term for logical true: a single, empty product
// (the AND of nothing is always satisfied).
func True(line int) Term {
	return Term{Line: line, Pins: [][]Pin{{}}}
}

// False returns the term for logical false: no products at all (the
// OR of nothing is never satisfied).
func False(line int) Term {
	return Term{Line: line, Pins: nil}
}

// IsFalse reports whether t is exactly the false term.
func (t Term) IsFalse() bool { return len(t.Pins) == 0 }
