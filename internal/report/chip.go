// Package report renders the three human-readable side files the CLI
// writes alongside a .jed image: the chip pinout drawing (.chp), the
// pin-function table (.pin), and the annotated fuse matrix (.fus).
package report

import (
	"fmt"
	"strings"

	"github.com/sprice/galasm/internal/chip"
)

// Chip draws the ASCII DIP pinout, pin names down each side.
func Chip(k chip.Kind, pinNames []string) string {
	var buf strings.Builder
	n := k.NumPins()

	buf.WriteString("\n\n")
	spaces(&buf, 31)
	if k == chip.GAL20RA10 {
		buf.WriteString(k.Name())
	} else {
		buf.WriteByte(' ')
		buf.WriteString(k.Name())
	}
	buf.WriteString("\n\n")

	spaces(&buf, 26)
	buf.WriteString("-------\\___/-------\n")

	for i := 0; i < n/2; i++ {
		if i > 0 {
			spaces(&buf, 26)
			buf.WriteString("|                 |\n")
		}
		left := pinNames[i+1]
		right := pinNames[n-i]
		spaces(&buf, 25-len(left))
		fmt.Fprintf(&buf, "%s | %2d           %2d | %s\n", left, i+1, n-i, right)
	}

	spaces(&buf, 26)
	buf.WriteString("-------------------\n")
	return buf.String()
}

func spaces(buf *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		buf.WriteByte(' ')
	}
}
