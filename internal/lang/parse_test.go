package lang

import (
	"testing"

	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/errs"
)

const base16V8 = "GAL16V8\nSIG\nA B NC NC NC NC NC NC NC GND\nNC NC NC NC NC NC NC O2 O VCC\n"

func codeOf(t *testing.T, err error) errs.Code {
	t.Helper()
	e, ok := err.(*errs.Error)
	if !ok {
		t.Fatalf("error %v is not *errs.Error", err)
	}
	return e.Code
}

func TestParse_MinimalFile(t *testing.T) {
	c, err := Parse([]byte(base16V8 + "O = A * B\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Chip != chip.GAL16V8 {
		t.Errorf("chip = %v, want GAL16V8", c.Chip)
	}
	if len(c.Equations) != 1 {
		t.Fatalf("len(Equations) = %d, want 1", len(c.Equations))
	}
	if len(c.Equations[0].RHS) != 2 {
		t.Errorf("RHS length = %d, want 2", len(c.Equations[0].RHS))
	}
}

func TestParse_UnknownChipType(t *testing.T) {
	_, err := Parse([]byte("GAL99X8\nSIG\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := codeOf(t, err); got != errs.BadGALType {
		t.Errorf("code = %v, want BadGALType", got)
	}
}

func TestParse_WrongPinCount(t *testing.T) {
	src := "GAL16V8\nSIG\nA B NC NC NC NC NC NC GND\nNC NC NC NC NC NC NC O2 O VCC\n"
	_, err := Parse([]byte(src))
	if got := codeOf(t, err); got != errs.BadPinCount {
		t.Errorf("code = %v, want BadPinCount", got)
	}
}

func TestParse_ReservedPinNameARSP(t *testing.T) {
	src := "GAL22V10\nSIG\nA B AR D E F G H I J K GND\nNC NC NC NC O NC NC NC NC NC NC VCC\nO = A\n"
	_, err := Parse([]byte(src))
	if got := codeOf(t, err); got != errs.ReservedPinName {
		t.Errorf("code = %v, want ReservedPinName", got)
	}
}

func TestParse_InvalidPowerPinLocation(t *testing.T) {
	// VCC placed somewhere other than the power-pin slot on a GAL20V8.
	src := "GAL20V8\nSIG\nVCC B C D E F G H I J K GND\nNC NC NC NC NC NC NC NC NC NC NC VCC\nO = A\n"
	_, err := Parse([]byte(src))
	if got := codeOf(t, err); got != errs.InvalidPowerPinLocation {
		t.Errorf("code = %v, want InvalidPowerPinLocation", got)
	}
}

func TestParse_RepeatedPinName(t *testing.T) {
	src := "GAL16V8\nSIG\nA A NC NC NC NC NC NC NC GND\nNC NC NC NC NC NC NC O2 O VCC\n"
	_, err := Parse([]byte(src))
	if got := codeOf(t, err); got != errs.RepeatedPinName {
		t.Errorf("code = %v, want RepeatedPinName", got)
	}
}

func TestParse_UnknownPinInEquation(t *testing.T) {
	_, err := Parse([]byte(base16V8 + "O = ZZZ\n"))
	if got := codeOf(t, err); got != errs.UnknownPin {
		t.Errorf("code = %v, want UnknownPin", got)
	}
}

func TestParse_NCInEquationFails(t *testing.T) {
	_, err := Parse([]byte(base16V8 + "O = NC\n"))
	if got := codeOf(t, err); got != errs.BadNC {
		t.Errorf("code = %v, want BadNC", got)
	}
}

func TestParse_MissingEquals(t *testing.T) {
	_, err := Parse([]byte(base16V8 + "O A\n"))
	if got := codeOf(t, err); got != errs.NoEquals {
		t.Errorf("code = %v, want NoEquals", got)
	}
}

func TestParse_ContinuationLineJoinsEquation(t *testing.T) {
	src := base16V8 + "O = A *\nB\n"
	c, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.Equations) != 1 {
		t.Fatalf("len(Equations) = %d, want 1 (continuation should merge)", len(c.Equations))
	}
	if len(c.Equations[0].RHS) != 2 {
		t.Errorf("RHS length = %d, want 2", len(c.Equations[0].RHS))
	}
}

func TestParse_CommentsAndBlankLinesIgnored(t *testing.T) {
	src := base16V8 + "; a comment\n\nO = A * B ; trailing comment\n"
	c, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.Equations) != 1 {
		t.Errorf("len(Equations) = %d, want 1", len(c.Equations))
	}
}

func TestParse_DescriptionStopsEquationScan(t *testing.T) {
	src := base16V8 + "O = A * B\nDESCRIPTION\nThis is free text = not an equation\n"
	c, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.Equations) != 1 {
		t.Errorf("len(Equations) = %d, want 1 (DESCRIPTION should stop scanning)", len(c.Equations))
	}
}
