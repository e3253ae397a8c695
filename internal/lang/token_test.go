package lang

import "testing"

func TestTokenize_SimpleEquation(t *testing.T) {
	toks, err := tokenize("Q1 = A * /B + C", 4)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []struct {
		kind tokenKind
		name string
		neg  bool
	}{
		{tokItem, "Q1", false},
		{tokEquals, "", false},
		{tokItem, "A", false},
		{tokAnd, "", false},
		{tokItem, "B", true},
		{tokOr, "", false},
		{tokItem, "C", false},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].kind != w.kind || toks[i].name != w.name || toks[i].neg != w.neg {
			t.Errorf("token %d = %+v, want kind=%v name=%q neg=%v", i, toks[i], w.kind, w.name, w.neg)
		}
	}
}

func TestTokenize_SuffixAndAltOperators(t *testing.T) {
	toks, err := tokenize("Q1.R = A & B # C", 1)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].suffix != SuffixR {
		t.Errorf("suffix = %v, want SuffixR", toks[0].suffix)
	}
	if toks[3].kind != tokAnd {
		t.Errorf("'&' should tokenize as AND")
	}
	if toks[5].kind != tokOr {
		t.Errorf("'#' should tokenize as OR")
	}
}

func TestTokenize_BadChar(t *testing.T) {
	if _, err := tokenize("Q1 = A @ B", 1); err == nil {
		t.Fatal("expected BadChar error")
	}
}

func TestTokenize_UnterminatedNegation(t *testing.T) {
	if _, err := tokenize("Q1 = /", 1); err == nil {
		t.Fatal("expected NoPinName error")
	}
}
