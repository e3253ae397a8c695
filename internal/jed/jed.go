// Package jed renders a *gal.GAL fuse state as JEDEC ASCII text: the
// STX/ETX-delimited format with *F/*G/*QF/*L/*C fields and a trailing
// whole-file checksum.
package jed

import (
	"fmt"
	"strings"

	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/gal"
)

// Config controls the parts of the output the assembler's own flags
// govern, as opposed to the fuse state itself.
type Config struct {
	SecurityBit bool
	Header      []string
}

// field is one *L-addressed span of bits. Fuse rows are skippable: an
// all-zero row advances the running bit offset and checksum without
// emitting a line for it, which is how a JEDEC file stays compact for
// a mostly-unprogrammed device. Everything after the fuse matrix
// (XOR/SIG and the V8 trailer) always emits, since a reader locates
// those fields by their fixed position rather than by content.
type field struct {
	bits      []bool
	skippable bool
}

// Write renders g as a complete JEDEC file.
func Write(cfg Config, g *gal.GAL) string {
	var buf strings.Builder
	writeHeader(&buf, cfg)

	buf.WriteString("*F0\n")
	if cfg.SecurityBit {
		buf.WriteString("*G1\n")
	} else {
		buf.WriteString("*G0\n")
	}
	fmt.Fprintf(&buf, "*QF%d\n", g.Chip.TotalSize())

	writeFields(&buf, layoutFields(g))

	buf.WriteString("*\n")
	buf.WriteByte(0x03)
	fmt.Fprintf(&buf, "%04x\n", fileChecksum(buf.String()))
	return buf.String()
}

func writeHeader(buf *strings.Builder, cfg Config) {
	buf.WriteByte(0x02)
	buf.WriteByte('\n')
	for _, line := range cfg.Header {
		buf.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
}

// layoutFields lays out, in wire order, every bit group a JEDEC file
// carries for g: one skippable field per fuse row, the XOR field (the
// GAL22V10 interleaves it with S1; every other chip emits it bare),
// the signature, and — V8 family only — the AC1/PT/SYN/AC0 trailer.
func layoutFields(g *gal.GAL) []field {
	var fs []field

	rowLen := g.Chip.NumCols()
	for row := 0; row < len(g.Fuses); row += rowLen {
		fs = append(fs, field{bits: g.Fuses[row : row+rowLen], skippable: true})
	}

	if g.Chip == chip.GAL22V10 {
		fs = append(fs, field{bits: interleave(g.Xor, g.S1)})
	} else {
		fs = append(fs, field{bits: g.Xor})
	}

	fs = append(fs, field{bits: g.Sig})

	if g.Chip == chip.GAL16V8 || g.Chip == chip.GAL20V8 {
		fs = append(fs,
			field{bits: g.AC1},
			field{bits: g.PT},
			field{bits: []bool{g.Syn}},
			field{bits: []bool{g.AC0}},
		)
	}
	return fs
}

// interleave alternates a and b bit-for-bit: a[0], b[0], a[1], b[1], ...
func interleave(a, b []bool) []bool {
	out := make([]bool, 0, len(a)+len(b))
	for i := 0; i < len(a) && i < len(b); i++ {
		out = append(out, a[i], b[i])
	}
	return out
}

// writeFields renders each field as either a skipped all-zero run or
// an "*L<offset> <bits>" line, accumulating the running bit offset and
// the 16-bit fuse checksum across the whole sequence, then closes with
// the "*C<checksum>" line.
func writeFields(buf *strings.Builder, fs []field) {
	offset := 0
	var sum bitSum
	for _, f := range fs {
		if f.skippable && !anyTrue(f.bits) {
			for _, b := range f.bits {
				sum.add(b)
			}
			offset += len(f.bits)
			continue
		}
		fmt.Fprintf(buf, "*L%04d ", offset)
		for _, b := range f.bits {
			if b {
				buf.WriteByte('1')
			} else {
				buf.WriteByte('0')
			}
			sum.add(b)
		}
		buf.WriteByte('\n')
		offset += len(f.bits)
	}
	fmt.Fprintf(buf, "*C%04x\n", sum.value())
}

func anyTrue(bits []bool) bool {
	for _, b := range bits {
		if b {
			return true
		}
	}
	return false
}

// bitSum packs bits LSB-first into bytes and keeps a 16-bit wrapping
// sum over them, the JEDEC fuse-checksum convention.
type bitSum struct {
	pending uint8
	nbits   uint8
	total   uint16
}

func (s *bitSum) add(bit bool) {
	if bit {
		s.pending |= 1 << s.nbits
	}
	s.nbits++
	if s.nbits == 8 {
		s.total += uint16(s.pending)
		s.pending = 0
		s.nbits = 0
	}
}

func (s *bitSum) value() uint16 {
	return s.total + uint16(s.pending)
}

// fileChecksum is a 16-bit wrapping sum over every byte written so
// far, including the STX/ETX delimiters themselves.
func fileChecksum(s string) uint16 {
	var sum uint16
	for i := 0; i < len(s); i++ {
		sum += uint16(s[i])
	}
	return sum
}
