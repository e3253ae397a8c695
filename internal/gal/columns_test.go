package gal

import (
	"testing"

	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/errs"
)

func TestPinToColumn_16V8SimpleRejectsPins15And16(t *testing.T) {
	for _, pin := range []int{15, 16} {
		if _, code, ok := pinToColumn(chip.GAL16V8, Simple, pin); ok || code != errs.BadAnalysis {
			t.Errorf("pin %d in Simple mode: got (ok=%v code=%v), want internal error sentinel", pin, ok, code)
		}
	}
}

func TestPinToColumn_16V8ComplexRejectsPins12And19(t *testing.T) {
	for _, pin := range []int{12, 19} {
		if _, code, ok := pinToColumn(chip.GAL16V8, Complex, pin); ok || code != errs.NotAnInput1219 {
			t.Errorf("pin %d in Complex mode: got (ok=%v code=%v), want NotAnInput1219", pin, ok, code)
		}
	}
}

func TestPinToColumn_16V8RegisteredRejectsPins1And11(t *testing.T) {
	for _, pin := range []int{1, 11} {
		if _, code, ok := pinToColumn(chip.GAL16V8, Registered, pin); ok || code != errs.NotAnInput111 {
			t.Errorf("pin %d in Registered mode: got (ok=%v code=%v), want NotAnInput111", pin, ok, code)
		}
	}
}

func TestPinToColumn_RejectsPower(t *testing.T) {
	if _, code, ok := pinToColumn(chip.GAL16V8, Simple, 10); ok || code != errs.BadPower {
		t.Errorf("GND pin: got (ok=%v code=%v), want BadPower", ok, code)
	}
	if _, code, ok := pinToColumn(chip.GAL16V8, Simple, 20); ok || code != errs.BadPower {
		t.Errorf("VCC pin: got (ok=%v code=%v), want BadPower", ok, code)
	}
}

func TestPinToColumn_20RA10RejectsPins1And13(t *testing.T) {
	if _, code, ok := pinToColumn(chip.GAL20RA10, Simple, 1); ok || code != errs.NotAnInput1 {
		t.Errorf("pin 1: got (ok=%v code=%v), want NotAnInput1", ok, code)
	}
	if _, code, ok := pinToColumn(chip.GAL20RA10, Simple, 13); ok || code != errs.NotAnInput13 {
		t.Errorf("pin 13: got (ok=%v code=%v), want NotAnInput13", ok, code)
	}
}

func TestPinToColumn_22V10AllNonPowerPinsResolve(t *testing.T) {
	for pin := 1; pin <= chip.GAL22V10.NumPins(); pin++ {
		if pin == 12 || pin == 24 {
			continue
		}
		if _, _, ok := pinToColumn(chip.GAL22V10, Simple, pin); !ok {
			t.Errorf("GAL22V10 pin %d should resolve to a column", pin)
		}
	}
}
