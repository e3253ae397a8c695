// Package gal builds the fully-populated fuse-state structure for a
// target chip from a Blueprint: the main logic array, XOR/AC1/S1 bits,
// the product-term and signature fields, and (for the V8 family) the
// SYN/AC0 mode bits.
package gal

import (
	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/errs"
	"github.com/sprice/galasm/internal/term"
)

// Mode is the GAL16V8/GAL20V8 operating mode. It is derived from the
// blueprint, never set directly by the caller.
type Mode int

const (
	Simple Mode = iota
	Complex
	Registered
)

// GAL is the fuse state of the device being programmed. A fuse bit is
// true when intact and false when blown; every fuse starts intact and
// is cleared selectively as terms are written.
type GAL struct {
	Chip chip.Kind

	Fuses []bool
	Xor   []bool
	Sig   []bool
	AC1   []bool
	PT    []bool
	S1    []bool // GAL22V10 only
	Syn   bool
	AC0   bool
}

// New allocates a GAL with every fuse intact and every control bit
// zeroed.
func New(k chip.Kind) *GAL {
	olmcs := k.NumOLMCs()
	g := &GAL{
		Chip:  k,
		Fuses: make([]bool, k.LogicSize()),
		Xor:   make([]bool, olmcs),
		Sig:   make([]bool, 64),
		AC1:   make([]bool, olmcs),
		PT:    make([]bool, 64),
	}
	if k == chip.GAL22V10 {
		g.S1 = make([]bool, olmcs)
	}
	for i := range g.Fuses {
		g.Fuses[i] = true
	}
	return g
}

// SetMode programs the SYN/AC0 fuses for a GAL16V8/GAL20V8 mode.
func (g *GAL) SetMode(m Mode) {
	switch m {
	case Simple:
		g.Syn, g.AC0 = true, false
	case Complex:
		g.Syn, g.AC0 = true, true
	case Registered:
		g.Syn, g.AC0 = false, true
	}
}

// AddTerm programs one term into the fuse rows described by bounds. It
// fails TooManyProducts (or the friendlier MoreThanOneProduct for a
// single-row slot) if the term carries more product groups than the
// slot has rows; it zeroes every row it doesn't write to.
func (g *GAL) AddTerm(t term.Term, bounds chip.Bounds) error {
	b := bounds
	singleRow := b.MaxRows == b.RowOffset+1
	for _, row := range t.Pins {
		if b.RowOffset == b.MaxRows {
			if singleRow {
				return errs.At(t.Line, errs.MoreThanOneProduct)
			}
			return errs.At(t.Line, errs.TooManyProducts)
		}
		for _, in := range row {
			flip := g.needsFlip(in.Number)
			if code, ok := g.setAnd(b.StartRow+b.RowOffset, in.Number, in.Neg != flip); !ok {
				return errs.At(t.Line, code)
			}
		}
		b.RowOffset++
	}
	g.clearRows(b)
	return nil
}

// AddTermOpt is AddTerm, but writes the false term when t is absent.
func (g *GAL) AddTermOpt(t *term.Term, bounds chip.Bounds) error {
	if t == nil {
		return g.AddTerm(term.False(0), bounds)
	}
	return g.AddTerm(*t, bounds)
}

func (g *GAL) clearRows(b chip.Bounds) {
	rowLen := g.Chip.NumCols()
	start := (b.StartRow + b.RowOffset) * rowLen
	end := (b.StartRow + b.MaxRows) * rowLen
	for i := start; i < end; i++ {
		g.Fuses[i] = false
	}
}

// needsFlip reports the GAL22V10's registered-output polarity flip: a
// feedback reference to a registered OLMC's own pin (ac1 false, i.e.
// not tristated) has its negation inverted in the fuse grid.
func (g *GAL) needsFlip(pinNum int) bool {
	if g.Chip != chip.GAL22V10 {
		return false
	}
	if i, ok := g.Chip.PinToOLMC(pinNum); ok {
		return !g.AC1[g.Chip.NumOLMCs()-1-i]
	}
	return false
}

func (g *GAL) setAnd(row, pinNum int, neg bool) (errs.Code, bool) {
	col, code, ok := pinToColumn(g.Chip, g.mode(), pinNum)
	if !ok {
		return code, false
	}
	off := 0
	if neg {
		off = 1
	}
	rowLen := g.Chip.NumCols()
	g.Fuses[row*rowLen+col+off] = false
	return 0, true
}

// mode reconstructs the V8 mode from the SYN/AC0 fuses; it is
// meaningless for the 22V10/20RA10, whose pin_to_column tables don't
// consult it.
func (g *GAL) mode() Mode {
	switch {
	case g.Syn && !g.AC0:
		return Simple
	case g.Syn && g.AC0:
		return Complex
	default:
		return Registered
	}
}

// Mode exposes the reconstructed V8 mode to callers outside this
// package, such as the pin-table report.
func (g *GAL) Mode() Mode { return g.mode() }

// TrueTerm and FalseTerm re-export the term package's constants under
// the names this package's callers reach for most often.
func TrueTerm(line int) term.Term  { return term.True(line) }
func FalseTerm(line int) term.Term { return term.False(line) }
