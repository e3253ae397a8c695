// Package lang implements the tokeniser and parser for GAL equation
// source files: chip line, signature line, two pin-definition rows,
// and the equation body.
package lang

import (
	"strings"

	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/errs"
	"github.com/sprice/galasm/internal/term"
)

// LHSKind distinguishes the three things an equation can assign to.
type LHSKind int

const (
	LHSPin LHSKind = iota
	LHSAR
	LHSSP
)

// LHS is the left-hand side of one equation.
type LHS struct {
	Kind   LHSKind
	Pin    term.Pin // valid when Kind == LHSPin
	Suffix Suffix
}

// Equation is one parsed assignment: lhs = rhs, with rhs pins grouped
// into AND-products joined by OR. IsOr[0] is always false; IsOr[i]
// true means RHS[i] starts a new product group.
type Equation struct {
	Line int
	LHS  LHS
	RHS  []term.Pin
	IsOr []bool
}

// Content is the parser's output: the resolved chip, signature bytes,
// pin name table, and equation list.
type Content struct {
	Chip      chip.Kind
	Signature []byte
	PinNames  []string // index 1..NumPins, index 0 unused
	Equations []Equation
}

type pinEntry struct {
	number int
	neg    bool
}

type rawLine struct {
	text string
	line int
}

// Parse consumes a full source file and produces a Content record, or
// the first error encountered along with its originating line number.
func Parse(src []byte) (Content, error) {
	lines := splitLines(string(src))

	if len(lines) < 1 || strings.TrimSpace(lines[0]) == "" {
		return Content{}, errs.At(1, errs.BadGALType)
	}
	k, err := chip.FromName(strings.TrimSpace(lines[0]))
	if err != nil {
		return Content{}, err
	}

	if len(lines) < 2 {
		return Content{}, errs.At(2, errs.BadSigEOF)
	}
	sigLine := lines[1]
	if len(sigLine) > 8 {
		sigLine = sigLine[:8]
	}

	c := Content{
		Chip:      k,
		Signature: []byte(sigLine),
		PinNames:  make([]string, k.NumPins()+1),
	}

	body := stripCommentsAndBlanks(lines[2:], 3)

	pinMap := make(map[string]pinEntry)
	half := k.NumPins() / 2

	if len(body) < 1 {
		return Content{}, errs.At(lineOrEOF(body, 0, len(lines)), errs.BadPinEOF)
	}
	if err := parsePinRow(&c, pinMap, body[0], 1, half, k); err != nil {
		return Content{}, err
	}
	if len(body) < 2 {
		return Content{}, errs.At(body[0].line, errs.BadPinEOF)
	}
	if err := parsePinRow(&c, pinMap, body[1], half+1, k.NumPins(), k); err != nil {
		return Content{}, err
	}

	groups, err := groupEquationLines(body[2:])
	if err != nil {
		return Content{}, err
	}
	for _, g := range groups {
		eq, err := parseEquation(g, pinMap, k)
		if err != nil {
			return Content{}, err
		}
		c.Equations = append(c.Equations, eq)
	}

	return c, nil
}

func lineOrEOF(body []rawLine, idx, fallback int) int {
	if idx < len(body) {
		return body[idx].line
	}
	return fallback
}

// splitLines splits on \n, stripping a trailing \r from each line.
func splitLines(s string) []string {
	raw := strings.Split(s, "\n")
	for i, l := range raw {
		raw[i] = strings.TrimRight(l, "\r")
	}
	return raw
}

// stripCommentsAndBlanks drops everything from ';' onward, trims, and
// skips blank lines; it stops at a line equal to DESCRIPTION.
// startLine is the 1-based line number of lines[0].
func stripCommentsAndBlanks(lines []string, startLine int) []rawLine {
	var out []rawLine
	for i, l := range lines {
		lineNo := startLine + i
		if idx := strings.IndexByte(l, ';'); idx >= 0 {
			l = l[:idx]
		}
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if l == "DESCRIPTION" {
			break
		}
		out = append(out, rawLine{text: l, line: lineNo})
	}
	return out
}

func parsePinRow(c *Content, pinMap map[string]pinEntry, row rawLine, lo, hi int, k chip.Kind) error {
	fields := strings.Fields(row.text)
	if len(fields) != hi-lo+1 {
		return errs.At(row.line, errs.BadPinCount)
	}
	half := k.NumPins() / 2
	for i, f := range fields {
		pin := lo + i
		neg := false
		name := f
		if strings.HasPrefix(name, "/") {
			neg = true
			name = name[1:]
		}
		if name == "" || !validPinName(name) {
			return errs.At(row.line, errs.BadPin)
		}

		isPowerSlot := pin == half || pin == k.NumPins()
		if isPowerSlot {
			expected := "VCC"
			if pin == half {
				expected = "GND"
			}
			if name != expected || neg {
				return errs.At(row.line, errs.InvalidPowerPinName)
			}
		} else if name == "VCC" || name == "GND" {
			return errs.At(row.line, errs.InvalidPowerPinLocation)
		}

		if k == chip.GAL22V10 && (name == "AR" || name == "SP") {
			return errs.At(row.line, errs.ReservedPinName)
		}

		if name != "NC" {
			if _, dup := pinMap[name]; dup {
				return errs.At(row.line, errs.RepeatedPinName)
			}
			pinMap[name] = pinEntry{number: pin, neg: neg}
		}
		c.PinNames[pin] = name
	}
	return nil
}

func validPinName(name string) bool {
	if !isAlpha(rune(name[0])) {
		return false
	}
	for _, r := range name {
		if !isAlnum(r) {
			return false
		}
	}
	return true
}

// groupEquationLines merges continuation lines: a line that follows one
// ending in And/Or, or one starting with And/Or, joins its predecessor. The
// merged group keeps the line number of its first physical line.
func groupEquationLines(lines []rawLine) ([][]token, error) {
	var groups [][]token
	var cur []token
	curLine := 0

	for _, l := range lines {
		toks, err := tokenize(l.text, l.line)
		if err != nil {
			return nil, err
		}
		if len(cur) == 0 {
			cur = toks
			curLine = l.line
		} else if cur[len(cur)-1].isAndOr() || (len(toks) > 0 && toks[0].isAndOr()) {
			cur = append(cur, toks...)
		} else {
			groups = append(groups, setLine(cur, curLine))
			cur = toks
			curLine = l.line
		}
	}
	if len(cur) > 0 {
		groups = append(groups, setLine(cur, curLine))
	}
	return groups, nil
}

func setLine(toks []token, line int) []token {
	out := make([]token, len(toks))
	for i, t := range toks {
		t.line = line
		out[i] = t
	}
	return out
}

func parseEquation(toks []token, pinMap map[string]pinEntry, k chip.Kind) (Equation, error) {
	if len(toks) == 0 {
		return Equation{}, errs.At(0, errs.BadEquationEOF)
	}
	line := toks[0].line

	if toks[0].kind != tokItem {
		return Equation{}, errs.At(line, errs.BadToken)
	}

	lhs, err := resolveLHS(toks[0], pinMap, k)
	if err != nil {
		return Equation{}, err
	}

	if len(toks) < 2 {
		return Equation{}, errs.At(line, errs.NoEquals)
	}
	if toks[1].kind != tokEquals {
		return Equation{}, errs.At(line, errs.NoEquals)
	}

	rest := toks[2:]
	if len(rest) == 0 {
		return Equation{}, errs.At(line, errs.BadEquationEOF)
	}

	var rhs []term.Pin
	var isOr []bool
	wantItem := true
	nextIsOr := false
	for _, t := range rest {
		if wantItem {
			if t.kind != tokItem {
				return Equation{}, errs.At(line, errs.BadToken)
			}
			p, err := resolvePin(t, pinMap, k)
			if err != nil {
				return Equation{}, err
			}
			rhs = append(rhs, p)
			isOr = append(isOr, nextIsOr)
			wantItem = false
		} else {
			switch t.kind {
			case tokAnd:
				nextIsOr = false
			case tokOr:
				nextIsOr = true
			default:
				return Equation{}, errs.At(line, errs.BadToken)
			}
			wantItem = true
		}
	}
	if wantItem {
		return Equation{}, errs.At(line, errs.BadEquationEOF)
	}
	if len(isOr) > 0 {
		isOr[0] = false
	}

	return Equation{Line: line, LHS: lhs, RHS: rhs, IsOr: isOr}, nil
}

func resolveLHS(t token, pinMap map[string]pinEntry, k chip.Kind) (LHS, error) {
	if k == chip.GAL22V10 && (t.name == "AR" || t.name == "SP") {
		if t.suffix != SuffixNone {
			return LHS{}, errs.At(t.line, errs.SpecialSuffix)
		}
		if t.neg {
			return LHS{}, errs.At(t.line, errs.InvertedSpecial)
		}
		if t.name == "AR" {
			return LHS{Kind: LHSAR}, nil
		}
		return LHS{Kind: LHSSP}, nil
	}
	p, err := resolvePin(t, pinMap, k)
	if err != nil {
		return LHS{}, err
	}
	return LHS{Kind: LHSPin, Pin: p, Suffix: t.suffix}, nil
}

func resolvePin(t token, pinMap map[string]pinEntry, k chip.Kind) (term.Pin, error) {
	if t.name == "NC" {
		return term.Pin{}, errs.At(t.line, errs.BadNC)
	}
	if k == chip.GAL22V10 && t.name == "AR" {
		return term.Pin{}, errs.At(t.line, errs.BadSpecialAR)
	}
	if k == chip.GAL22V10 && t.name == "SP" {
		return term.Pin{}, errs.At(t.line, errs.BadSpecialSP)
	}
	e, ok := pinMap[t.name]
	if !ok {
		return term.Pin{}, errs.At(t.line, errs.UnknownPin)
	}
	return term.Pin{Number: e.number, Neg: e.neg != t.neg}, nil
}
