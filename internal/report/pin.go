package report

import (
	"fmt"
	"strings"

	"github.com/sprice/galasm/internal/blueprint"
	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/gal"
)

// PinTable renders the per-pin function listing: GND/VCC, the V8
// mode-3 clock/OE pins, the 22V10's shared clock/input pin 1, and for
// every OLMC pin whether it ended up an Output, an Input (feedback
// only), or NC.
func PinTable(k chip.Kind, pinNames []string, mode gal.Mode, olmcs []blueprint.OLMC) string {
	var buf strings.Builder
	n := k.NumPins()

	buf.WriteString("\n\n")
	buf.WriteString(" Pin # | Name     | Pin Type\n")
	buf.WriteString("-----------------------------\n")

	for p := 1; p <= n; p++ {
		name := pinNames[p]
		fmt.Fprintf(&buf, "  %2d   | %s", p, name)
		spaces(&buf, 9-len(name))

		line, handled := fixedPinType(k, p, n, mode)
		if !handled {
			line, handled = olmcPinType(k, p, olmcs)
		}
		if !handled {
			line = "Input"
		}
		buf.WriteString("| ")
		buf.WriteString(line)
		buf.WriteByte('\n')
		if p == n/2 || p == n {
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func fixedPinType(k chip.Kind, p, n int, mode gal.Mode) (string, bool) {
	switch {
	case p == n/2:
		return "GND", true
	case p == n:
		return "VCC", true
	}

	if (k == chip.GAL16V8 || k == chip.GAL20V8) && mode == gal.Registered {
		if p == 1 {
			return "Clock", true
		}
		oe := 11
		if k == chip.GAL20V8 {
			oe = 13
		}
		if p == oe {
			return "/OE", true
		}
	}

	if k == chip.GAL22V10 && p == 1 {
		return "Clock/Input", true
	}
	return "", false
}

func olmcPinType(k chip.Kind, p int, olmcs []blueprint.OLMC) (string, bool) {
	idx, ok := k.PinToOLMC(p)
	if !ok || idx >= len(olmcs) {
		return "", false
	}
	o := olmcs[idx]
	switch {
	case o.HasOutput:
		return "Output", true
	case o.Feedback:
		return "Input", true
	default:
		return "NC", true
	}
}
