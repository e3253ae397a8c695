package term

import "testing"

func TestTrue_IsSingleEmptyProduct(t *testing.T) {
	tm := True(5)
	if len(tm.Pins) != 1 || len(tm.Pins[0]) != 0 {
		t.Errorf("True() = %+v, want one empty product", tm)
	}
	if tm.IsFalse() {
		t.Error("True() should not be IsFalse")
	}
}

func TestFalse_HasNoProducts(t *testing.T) {
	tm := False(5)
	if !tm.IsFalse() {
		t.Error("False() should be IsFalse")
	}
	if len(tm.Pins) != 0 {
		t.Errorf("False().Pins = %v, want empty", tm.Pins)
	}
}
