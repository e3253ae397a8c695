package gal

import (
	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/errs"
)

// colEntry is either a fuse column (ok=true) or the reason the pin
// can't be used as an input at all (ok=false); pin→column tables are
// exhaustive data, not "-1 means unusable" sentinels.
type colEntry struct {
	col  int
	code errs.Code
	ok   bool
}

func col(c int) colEntry              { return colEntry{col: c, ok: true} }
func bad(code errs.Code) colEntry     { return colEntry{code: code} }

var (
	errBad    = bad(errs.BadAnalysis)
	errPwr    = bad(errs.BadPower)
	err1      = bad(errs.NotAnInput1)
	err13     = bad(errs.NotAnInput13)
	err111    = bad(errs.NotAnInput111)
	err113    = bad(errs.NotAnInput113)
	err1219   = bad(errs.NotAnInput1219)
	err1522   = bad(errs.NotAnInput1522)
)

// GAL16V8, one entry per pin (1..20), indexed 0-based.
var pinToCol16Simple = []colEntry{
	col(2), col(0), col(4), col(8), col(12), col(16), col(20), col(24), col(28), errPwr,
	col(30), col(26), col(22), col(18), errBad, errBad, col(14), col(10), col(6), errPwr,
}
var pinToCol16Complex = []colEntry{
	col(2), col(0), col(4), col(8), col(12), col(16), col(20), col(24), col(28), errPwr,
	col(30), err1219, col(26), col(22), col(18), col(14), col(10), col(6), err1219, errPwr,
}
var pinToCol16Registered = []colEntry{
	err111, col(0), col(4), col(8), col(12), col(16), col(20), col(24), col(28), errPwr,
	err111, col(30), col(26), col(22), col(18), col(14), col(10), col(6), col(2), errPwr,
}

// GAL20V8, one entry per pin (1..24).
var pinToCol20Simple = []colEntry{
	col(2), col(0), col(4), col(8), col(12), col(16), col(20), col(24), col(28), col(32), col(36), errPwr,
	col(38), col(34), col(30), col(26), col(22), errBad, errBad, col(18), col(14), col(10), col(6), errPwr,
}
var pinToCol20Complex = []colEntry{
	col(2), col(0), col(4), col(8), col(12), col(16), col(20), col(24), col(28), col(32), col(36), errPwr,
	col(38), col(34), err1522, col(30), col(26), col(22), col(18), col(14), col(10), err1522, col(6), errPwr,
}
var pinToCol20Registered = []colEntry{
	err113, col(0), col(4), col(8), col(12), col(16), col(20), col(24), col(28), col(32), col(36), errPwr,
	err113, col(38), col(34), col(30), col(26), col(22), col(18), col(14), col(10), col(6), col(2), errPwr,
}

// GAL22V10, one entry per pin (1..24).
var pinToCol22V10 = []colEntry{
	col(0), col(4), col(8), col(12), col(16), col(20), col(24), col(28), col(32), col(36), col(40), errPwr,
	col(42), col(38), col(34), col(30), col(26), col(22), col(18), col(14), col(10), col(6), col(2), errPwr,
}

// GAL20RA10, one entry per pin (1..24).
var pinToCol20RA10 = []colEntry{
	err1, col(0), col(4), col(8), col(12), col(16), col(20), col(24), col(28), col(32), col(36), errPwr,
	err13, col(38), col(34), col(30), col(26), col(22), col(18), col(14), col(10), col(6), col(2), errPwr,
}

func pinToColumn(k chip.Kind, m Mode, pin int) (int, errs.Code, bool) {
	if pin < 1 || pin > k.NumPins() {
		return 0, errs.BadAnalysis, false
	}
	var table []colEntry
	switch k {
	case chip.GAL16V8:
		table = modeTable(m, pinToCol16Simple, pinToCol16Complex, pinToCol16Registered)
	case chip.GAL20V8:
		table = modeTable(m, pinToCol20Simple, pinToCol20Complex, pinToCol20Registered)
	case chip.GAL22V10:
		table = pinToCol22V10
	case chip.GAL20RA10:
		table = pinToCol20RA10
	}
	e := table[pin-1]
	if !e.ok {
		return 0, e.code, false
	}
	return e.col, 0, true
}

func modeTable(m Mode, simple, complex_, registered []colEntry) []colEntry {
	switch m {
	case Simple:
		return simple
	case Complex:
		return complex_
	default:
		return registered
	}
}
