package lang

import "github.com/sprice/galasm/internal/errs"

// Suffix distinguishes the output kind or control function an equation
// attaches to an OLMC.
type Suffix int

const (
	SuffixNone Suffix = iota
	SuffixT
	SuffixR
	SuffixE
	SuffixCLK
	SuffixARST
	SuffixAPRST
)

var suffixNames = map[string]Suffix{
	"T":     SuffixT,
	"R":     SuffixR,
	"E":     SuffixE,
	"CLK":   SuffixCLK,
	"ARST":  SuffixARST,
	"APRST": SuffixAPRST,
}

type tokenKind int

const (
	tokEquals tokenKind = iota
	tokAnd
	tokOr
	tokItem
)

type token struct {
	kind   tokenKind
	name   string
	neg    bool
	suffix Suffix
	line   int
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlnum(r rune) bool {
	return isAlpha(r) || (r >= '0' && r <= '9')
}

// tokenize lexes one logical source line into a token stream. Pin
// names carry an optional leading '/' for negation and an optional
// '.'-delimited suffix; '*'/'&' produce And, '+'/'#' produce Or, '='
// produces Equals. Anything else is BadChar.
func tokenize(line string, lineNo int) ([]token, error) {
	r := []rune(line)
	n := len(r)
	var toks []token

	for i := 0; i < n; {
		c := r[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '=':
			toks = append(toks, token{kind: tokEquals, line: lineNo})
			i++
		case c == '*' || c == '&':
			toks = append(toks, token{kind: tokAnd, line: lineNo})
			i++
		case c == '+' || c == '#':
			toks = append(toks, token{kind: tokOr, line: lineNo})
			i++
		case c == '/' || isAlpha(c):
			neg := false
			if c == '/' {
				neg = true
				i++
				if i >= n || !isAlpha(r[i]) {
					return nil, errs.At(lineNo, errs.NoPinName)
				}
			}
			start := i
			for i < n && isAlnum(r[i]) {
				i++
			}
			name := string(r[start:i])
			suffix := SuffixNone
			if i < n && r[i] == '.' {
				i++
				sufStart := i
				for i < n && isAlnum(r[i]) {
					i++
				}
				s, ok := suffixNames[string(r[sufStart:i])]
				if !ok {
					return nil, errs.At(lineNo, errs.BadSuffix)
				}
				suffix = s
			}
			toks = append(toks, token{kind: tokItem, name: name, neg: neg, suffix: suffix, line: lineNo})
		default:
			return nil, errs.At(lineNo, errs.BadChar)
		}
	}
	return toks, nil
}

func (t token) isAndOr() bool { return t.kind == tokAnd || t.kind == tokOr }
