package gal

import (
	"testing"

	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/term"
)

func TestNew_AllFusesIntact(t *testing.T) {
	g := New(chip.GAL16V8)
	for i, f := range g.Fuses {
		if !f {
			t.Fatalf("fuse %d not intact on a fresh GAL", i)
		}
	}
	if len(g.S1) != 0 {
		t.Error("GAL16V8 should not allocate S1")
	}
}

func TestNew_22V10AllocatesS1(t *testing.T) {
	g := New(chip.GAL22V10)
	if len(g.S1) != chip.GAL22V10.NumOLMCs() {
		t.Errorf("len(S1) = %d, want %d", len(g.S1), chip.GAL22V10.NumOLMCs())
	}
}

func TestAddTerm_TrueLeavesFirstRowClearsRest(t *testing.T) {
	g := New(chip.GAL16V8)
	bounds := chip.Bounds{StartRow: 0, MaxRows: 8}
	if err := g.AddTerm(term.True(1), bounds); err != nil {
		t.Fatalf("AddTerm: %v", err)
	}
	rowLen := g.Chip.NumCols()
	for i := 0; i < rowLen; i++ {
		if !g.Fuses[i] {
			t.Errorf("true term should leave row 0 col %d intact", i)
		}
	}
	for row := 1; row < 8; row++ {
		for col := 0; col < rowLen; col++ {
			if g.Fuses[row*rowLen+col] {
				t.Errorf("true term should clear row %d col %d", row, col)
			}
		}
	}
}

func TestAddTerm_FalseClearsEveryRow(t *testing.T) {
	g := New(chip.GAL16V8)
	bounds := chip.Bounds{StartRow: 0, MaxRows: 8}
	if err := g.AddTerm(term.False(1), bounds); err != nil {
		t.Fatalf("AddTerm: %v", err)
	}
	rowLen := g.Chip.NumCols()
	for i := 0; i < 8*rowLen; i++ {
		if g.Fuses[i] {
			t.Errorf("false term should clear fuse %d", i)
		}
	}
}

func TestAddTerm_TooManyProducts(t *testing.T) {
	g := New(chip.GAL16V8)
	g.SetMode(Simple)
	tm := term.Term{Line: 1, Pins: [][]term.Pin{
		{{Number: 1}}, {{Number: 2}}, {{Number: 3}},
	}}
	bounds := chip.Bounds{StartRow: 0, MaxRows: 2}
	if err := g.AddTerm(tm, bounds); err == nil {
		t.Fatal("expected TooManyProducts error")
	}
}

func TestAddTerm_MoreThanOneProductOnSingleRowSlot(t *testing.T) {
	g := New(chip.GAL16V8)
	g.SetMode(Simple)
	tm := term.Term{Line: 1, Pins: [][]term.Pin{
		{{Number: 1}}, {{Number: 2}},
	}}
	bounds := chip.Bounds{StartRow: 0, MaxRows: 1}
	if err := g.AddTerm(tm, bounds); err == nil {
		t.Fatal("expected MoreThanOneProduct error")
	}
}

func TestSetMode_ProgramsSynAC0(t *testing.T) {
	g := New(chip.GAL16V8)
	g.SetMode(Simple)
	if !g.Syn || g.AC0 {
		t.Errorf("Simple: Syn=%v AC0=%v, want true,false", g.Syn, g.AC0)
	}
	g.SetMode(Complex)
	if !g.Syn || !g.AC0 {
		t.Errorf("Complex: Syn=%v AC0=%v, want true,true", g.Syn, g.AC0)
	}
	g.SetMode(Registered)
	if g.Syn || !g.AC0 {
		t.Errorf("Registered: Syn=%v AC0=%v, want false,true", g.Syn, g.AC0)
	}
	if g.Mode() != Registered {
		t.Errorf("Mode() = %v, want Registered", g.Mode())
	}
}
