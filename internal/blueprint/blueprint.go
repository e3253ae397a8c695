// Package blueprint turns parsed Content into one structured record per
// OLMC: its output term, its control terms, and (for GAL22V10) the two
// global AR/SP terms. It enforces only the rules that are checkable
// without knowing the target chip's fuse geometry; control equations
// may reference an output that has not been seen yet, and are
// tolerated here — a missing base output surfaces later, in the
// fuse-map builder, as UndefinedOutput.
package blueprint

import (
	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/errs"
	"github.com/sprice/galasm/internal/lang"
	"github.com/sprice/galasm/internal/term"
)

// PinMode is the electrical character of an OLMC's base output.
type PinMode int

const (
	Combinatorial PinMode = iota
	Tristate
	Registered
)

// Active is the output polarity an OLMC was defined with.
type Active int

const (
	ActiveLow Active = iota
	ActiveHigh
)

// OLMC is a product-of-options record: one field per independent piece
// of state an equation can attach to an output macrocell. No
// hierarchy — the fuse-map builder pattern-matches on which fields are
// set.
type OLMC struct {
	HasOutput bool
	Mode      PinMode
	Output    *term.Term
	TriCon    *term.Term // .E
	Clock     *term.Term // .CLK, GAL20RA10 only
	ARst      *term.Term // .ARST, GAL20RA10 only
	APRst     *term.Term // .APRST, GAL20RA10 only
	Active    Active
	Feedback  bool
}

// Blueprint is the builder's output: one OLMC record per output pin,
// plus the chip's global AR/SP terms when it has any (GAL22V10 only).
type Blueprint struct {
	Chip      chip.Kind
	Signature []byte
	PinNames  []string
	OLMC      []OLMC
	AR        *term.Term
	SP        *term.Term
}

// Build drives equation-by-equation over c, dispatching each to the
// OLMC (or AR/SP slot) its LHS names.
func Build(c lang.Content) (Blueprint, error) {
	bp := Blueprint{
		Chip:      c.Chip,
		Signature: c.Signature,
		PinNames:  c.PinNames,
		OLMC:      make([]OLMC, c.Chip.NumOLMCs()),
	}

	for _, eq := range c.Equations {
		// The feedback flag is set optimistically, before we know
		// whether the feeding OLMC will end up driven at all: V8 mode
		// analysis depends on it regardless.
		for _, p := range eq.RHS {
			if idx, ok := c.Chip.PinToOLMC(p.Number); ok {
				bp.OLMC[idx].Feedback = true
			}
		}

		t, err := buildTerm(c.Chip, eq)
		if err != nil {
			return Blueprint{}, err
		}

		switch eq.LHS.Kind {
		case lang.LHSAR:
			if bp.AR != nil {
				return Blueprint{}, errs.At(eq.Line, errs.RepeatedSpecial)
			}
			bp.AR = &t
		case lang.LHSSP:
			if bp.SP != nil {
				return Blueprint{}, errs.At(eq.Line, errs.RepeatedSpecial)
			}
			bp.SP = &t
		case lang.LHSPin:
			idx, ok := c.Chip.PinToOLMC(eq.LHS.Pin.Number)
			if !ok {
				return Blueprint{}, errs.At(eq.Line, errs.NotAnOutput)
			}
			if err := dispatch(&bp.OLMC[idx], eq, t); err != nil {
				return Blueprint{}, err
			}
		}
	}

	return bp, nil
}

// buildTerm translates an equation's RHS into a Term. A lone reference
// to VCC or GND is the documented shorthand for true/false; negating
// either is always an error. Any other VCC/GND reference is passed
// through as an ordinary pin and rejected later, when the fuse builder
// tries to map it to a column.
func buildTerm(k chip.Kind, eq lang.Equation) (term.Term, error) {
	if len(eq.RHS) == 1 {
		p := eq.RHS[0]
		switch p.Number {
		case k.NumPins():
			if p.Neg {
				return term.Term{}, errs.At(eq.Line, errs.InvertedPower)
			}
			return term.True(eq.Line), nil
		case k.NumPins() / 2:
			if p.Neg {
				return term.Term{}, errs.At(eq.Line, errs.InvertedPower)
			}
			return term.False(eq.Line), nil
		}
	}

	var groups [][]term.Pin
	for i, p := range eq.RHS {
		if i == 0 || eq.IsOr[i] {
			groups = append(groups, []term.Pin{p})
		} else {
			groups[len(groups)-1] = append(groups[len(groups)-1], p)
		}
	}
	return term.Term{Line: eq.Line, Pins: groups}, nil
}

func dispatch(o *OLMC, eq lang.Equation, t term.Term) error {
	switch eq.LHS.Suffix {
	case lang.SuffixNone:
		return setBase(o, eq, t, Combinatorial)
	case lang.SuffixT:
		return setBase(o, eq, t, Tristate)
	case lang.SuffixR:
		return setBase(o, eq, t, Registered)
	case lang.SuffixE:
		return setControl(o, eq, t, &o.TriCon)
	case lang.SuffixCLK:
		return setControl(o, eq, t, &o.Clock)
	case lang.SuffixARST:
		return setControl(o, eq, t, &o.ARst)
	case lang.SuffixAPRST:
		return setControl(o, eq, t, &o.APRst)
	default:
		return nil
	}
}

func setBase(o *OLMC, eq lang.Equation, t term.Term, mode PinMode) error {
	if o.HasOutput {
		return errs.At(eq.Line, errs.RepeatedOutput)
	}
	o.HasOutput = true
	o.Mode = mode
	o.Output = &t
	if eq.LHS.Pin.Neg {
		o.Active = ActiveLow
	} else {
		o.Active = ActiveHigh
	}
	return nil
}

func setControl(o *OLMC, eq lang.Equation, t term.Term, slot **term.Term) error {
	if eq.LHS.Pin.Neg {
		return errs.At(eq.Line, errs.InvertedControl)
	}
	if *slot != nil {
		return errs.At(eq.Line, errs.RepeatedControl)
	}
	*slot = &t
	return nil
}
