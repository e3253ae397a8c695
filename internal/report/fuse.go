package report

import (
	"fmt"
	"strings"

	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/gal"
)

// FuseMatrix renders every logic row as a 0/1 string annotated with
// the OLMC (or AR/SP) it belongs to, followed by the XOR/AC1/PT/SYN/AC0
// trailer fields labelled by name. Unlike the JEDEC writer it never
// skips all-zero rows — the point of this report is to see the whole
// array.
func FuseMatrix(g *gal.GAL) string {
	var buf strings.Builder
	k := g.Chip
	rowLen := k.NumCols()
	numRows := k.NumRows()

	fmt.Fprintf(&buf, "%s fuse matrix (%d rows x %d cols)\n\n", k.Name(), numRows, rowLen)

	for row := 0; row < numRows; row++ {
		fmt.Fprintf(&buf, "row %3d [%s] ", row, rowLabel(k, row))
		chunk := g.Fuses[row*rowLen : (row+1)*rowLen]
		writeBits(&buf, chunk)
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	writeLabeledBits(&buf, "XOR", g.Xor)
	if k == chip.GAL22V10 {
		writeLabeledBits(&buf, "S1 ", g.S1)
	}
	writeLabeledBits(&buf, "SIG", g.Sig)
	if k == chip.GAL16V8 || k == chip.GAL20V8 {
		writeLabeledBits(&buf, "AC1", g.AC1)
		writeLabeledBits(&buf, "PT ", g.PT)
		fmt.Fprintf(&buf, "SYN = %s\n", bitChar(g.Syn))
		fmt.Fprintf(&buf, "AC0 = %s\n", bitChar(g.AC0))
	}
	return buf.String()
}

// rowLabel names the OLMC (or the 22V10's global AR/SP rows) that owns
// a given fuse row.
func rowLabel(k chip.Kind, row int) string {
	if k == chip.GAL22V10 {
		if row == 0 {
			return "AR"
		}
		if row == 131 {
			return "SP"
		}
	}
	for olmc := 0; olmc < k.NumOLMCs(); olmc++ {
		b := k.BoundsForOLMC(olmc)
		if row >= b.StartRow && row < b.StartRow+b.MaxRows {
			pin := k.MinOLMCPin() + olmc
			return fmt.Sprintf("pin%d row%d", pin, row-b.StartRow)
		}
	}
	return "-"
}

func writeBits(buf *strings.Builder, bits []bool) {
	for _, b := range bits {
		buf.WriteByte(bitByte(b))
	}
}

func writeLabeledBits(buf *strings.Builder, label string, bits []bool) {
	fmt.Fprintf(buf, "%s ", label)
	writeBits(buf, bits)
	buf.WriteByte('\n')
}

func bitByte(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

func bitChar(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
