package gal

import (
	"github.com/sprice/galasm/internal/blueprint"
	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/errs"
	"github.com/sprice/galasm/internal/term"
)

// Build maps a Blueprint onto a fully-populated GAL, dispatching on
// chip family. It is the only entry point into this package for
// driving the whole fuse-map stage.
func Build(bp blueprint.Blueprint) (*GAL, error) {
	g := New(bp.Chip)
	setSignature(g, bp.Signature)

	switch bp.Chip {
	case chip.GAL16V8, chip.GAL20V8:
		if err := buildV8(g, bp); err != nil {
			return nil, err
		}
	case chip.GAL22V10:
		if err := build22V10(g, bp); err != nil {
			return nil, err
		}
	case chip.GAL20RA10:
		if err := build20RA10(g, bp); err != nil {
			return nil, err
		}
	}

	setPT(g)
	return g, nil
}

// setSignature copies the (up to 8) signature bytes big-endian-bitwise
// into the 64 signature fuses: byte i, bit j -> sig[i*8+j].
func setSignature(g *GAL, sig []byte) {
	for i := 0; i < len(sig) && i < 8; i++ {
		c := sig[i]
		for j := 0; j < 8; j++ {
			g.Sig[i*8+j] = (c<<uint(j))&0x80 != 0
		}
	}
}

func setPT(g *GAL) {
	for i := range g.PT {
		g.PT[i] = true
	}
}

func setXor(g *GAL, olmcs []blueprint.OLMC) {
	n := len(olmcs)
	for i, o := range olmcs {
		if o.HasOutput && o.Active == blueprint.ActiveHigh {
			g.Xor[n-1-i] = true
		}
	}
}

func rejectControlSuffixes(olmcs []blueprint.OLMC) error {
	for _, o := range olmcs {
		var t *term.Term
		switch {
		case o.Clock != nil:
			t = o.Clock
		case o.ARst != nil:
			t = o.ARst
		case o.APRst != nil:
			t = o.APRst
		default:
			continue
		}
		return errs.At(t.Line, errs.DisallowedControl)
	}
	return nil
}

// --- GAL16V8 / GAL20V8 ---

func buildV8(g *GAL, bp blueprint.Blueprint) error {
	if err := rejectControlSuffixes(bp.OLMC); err != nil {
		return err
	}

	mode := analyzeV8Mode(bp.OLMC)
	g.SetMode(mode)

	setV8Tristate(g, bp.OLMC)
	setXor(g, bp.OLMC)

	for i, o := range bp.OLMC {
		bounds := g.Chip.BoundsForOLMC(i)

		if o.TriCon != nil {
			switch {
			case !o.HasOutput:
				return errs.At(o.TriCon.Line, errs.UndefinedOutput)
			case o.Mode == blueprint.Registered:
				return errs.At(o.TriCon.Line, errs.TristateReg)
			case o.Mode == blueprint.Combinatorial:
				return errs.At(o.TriCon.Line, errs.UnmatchedTristate)
			}
			if err := g.AddTerm(*o.TriCon, chip.Bounds{StartRow: bounds.StartRow, MaxRows: 1}); err != nil {
				return err
			}
		}

		if mode != Simple && o.Mode != blueprint.Registered {
			bounds.RowOffset = 1
		}
		if err := g.AddTermOpt(o.Output, bounds); err != nil {
			return err
		}
	}
	return nil
}

// analyzeV8Mode picks Simple/Complex/Registered by scanning every OLMC
// in order; any registered output forces Registered, any tristate
// output forces Complex, and two narrower feedback conditions (an
// input-only OLMC 3/4 — pins 15/16 on the GAL16V8, 18/19 on the
// GAL20V8 — or an OLMC that both feeds back and drives output) force
// Complex because Simple mode cannot represent them.
func analyzeV8Mode(olmcs []blueprint.OLMC) Mode {
	for _, o := range olmcs {
		if o.HasOutput && o.Mode == blueprint.Registered {
			return Registered
		}
	}
	for _, o := range olmcs {
		if o.HasOutput && o.Mode == blueprint.Tristate {
			return Complex
		}
	}
	for i, o := range olmcs {
		if o.Feedback && !o.HasOutput && (i == 3 || i == 4) {
			return Complex
		}
	}
	for _, o := range olmcs {
		if o.Feedback && o.HasOutput {
			return Complex
		}
	}
	return Simple
}

// setV8Tristate programs the AC1 bit for every OLMC: tristated or (in
// non-Simple modes) always-on combinatorial outputs, plus feedback-only
// input pins, assert AC1.
func setV8Tristate(g *GAL, olmcs []blueprint.OLMC) {
	n := len(olmcs)
	isSimple := g.Syn && !g.AC0
	for i, o := range olmcs {
		tri := false
		switch {
		case !o.HasOutput:
			tri = !isSimple && o.Feedback || isSimple
		case o.Mode == blueprint.Registered:
			tri = false
		default:
			tri = !isSimple
		}
		if tri {
			g.AC1[n-1-i] = true
		}
	}
}

// --- GAL22V10 ---

func build22V10(g *GAL, bp blueprint.Blueprint) error {
	if err := rejectControlSuffixes(bp.OLMC); err != nil {
		return err
	}

	set22V10Tristate(g, bp.OLMC)
	setXor(g, bp.OLMC)

	for i, o := range bp.OLMC {
		bounds := g.Chip.BoundsForOLMC(i)

		if o.TriCon != nil {
			switch {
			case !o.HasOutput:
				return errs.At(o.TriCon.Line, errs.UndefinedOutput)
			case o.Mode == blueprint.Combinatorial:
				return errs.At(o.TriCon.Line, errs.UnmatchedTristate)
			}
			if err := g.AddTerm(*o.TriCon, chip.Bounds{StartRow: bounds.StartRow, MaxRows: 1}); err != nil {
				return err
			}
		}

		bounds.RowOffset = 1
		if err := g.AddTermOpt(o.Output, bounds); err != nil {
			return err
		}
	}

	if err := g.AddTermOpt(bp.AR, chip.Bounds{StartRow: 0, MaxRows: 1}); err != nil {
		return err
	}
	return g.AddTermOpt(bp.SP, chip.Bounds{StartRow: 131, MaxRows: 1})
}

// set22V10Tristate is analogous to the V8 case, except combinatorial
// outputs are always implicitly tristated (there is no Simple mode on
// the 22V10).
func set22V10Tristate(g *GAL, olmcs []blueprint.OLMC) {
	n := len(olmcs)
	for i, o := range olmcs {
		tri := false
		switch {
		case !o.HasOutput:
			tri = o.Feedback
		case o.Mode == blueprint.Registered:
			tri = false
		default:
			tri = true
		}
		if tri {
			g.AC1[n-1-i] = true
		}
	}
}

// --- GAL20RA10 ---

func build20RA10(g *GAL, bp blueprint.Blueprint) error {
	setXor(g, bp.OLMC)

	for i, o := range bp.OLMC {
		bounds := g.Chip.BoundsForOLMC(i)
		start := bounds.StartRow

		if o.Clock != nil && !o.HasOutput {
			return errs.At(o.Clock.Line, errs.UndefinedOutput)
		}
		if o.ARst != nil {
			if !o.HasOutput {
				return errs.At(o.ARst.Line, errs.UndefinedOutput)
			}
			if o.Mode != blueprint.Registered {
				return errs.At(o.ARst.Line, errs.InvalidControl)
			}
		}
		if o.APRst != nil {
			if !o.HasOutput {
				return errs.At(o.APRst.Line, errs.UndefinedOutput)
			}
			if o.Mode != blueprint.Registered {
				return errs.At(o.APRst.Line, errs.InvalidControl)
			}
		}
		if o.HasOutput && o.Mode == blueprint.Registered && o.Clock == nil {
			return errs.At(outputLine(o), errs.NoCLK)
		}

		if err := g.AddTermOpt(o.TriCon, chip.Bounds{StartRow: start, MaxRows: 1}); err != nil {
			return err
		}
		if err := g.AddTermOpt(o.Clock, chip.Bounds{StartRow: start, MaxRows: 2, RowOffset: 1}); err != nil {
			return err
		}
		if err := g.AddTermOpt(o.ARst, chip.Bounds{StartRow: start, MaxRows: 3, RowOffset: 2}); err != nil {
			return err
		}
		if err := g.AddTermOpt(o.APRst, chip.Bounds{StartRow: start, MaxRows: 4, RowOffset: 3}); err != nil {
			return err
		}
		if err := g.AddTermOpt(o.Output, bounds); err != nil {
			return err
		}
	}
	return nil
}

func outputLine(o blueprint.OLMC) int {
	if o.Output != nil {
		return o.Output.Line
	}
	return 0
}
