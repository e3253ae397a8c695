// Package testutil provides a minimal JEDEC-ASCII reader for
// asserting on *jed.Write output in tests, independent of the writer
// itself.
package testutil

import (
	"fmt"
	"strconv"
	"strings"
)

// JEDEC is a parsed JEDEC-ASCII file: the declared fuse count, the
// security-bit field, the flattened fuse array, and the trailing fuse
// checksum.
type JEDEC struct {
	QF    int
	G     int
	Fuses []bool
	Csum  uint16
}

// ParseJEDEC reads the *G/*QF/*L/*C fields out of a JEDEC-ASCII
// buffer. JEDEC fields are delimited by '*', not by newline, so the
// body is split on that delimiter rather than scanned line by line.
// It tolerates the STX/ETX framing bytes but does not verify the
// trailing file checksum.
func ParseJEDEC(data []byte) (JEDEC, error) {
	body := strings.TrimPrefix(string(data), "\x02")
	if idx := strings.IndexByte(body, 0x03); idx >= 0 {
		body = body[:idx]
	}

	var j JEDEC
	fuses := map[int]bool{}
	maxIndex := -1

	for _, raw := range strings.Split(body, "*") {
		f := strings.TrimSpace(raw)
		if f == "" {
			continue
		}
		tag, rest := f[:1], f[1:]
		var err error
		switch tag {
		case "G":
			j.G, err = strconv.Atoi(strings.TrimSpace(rest))
		case "Q":
			j.QF, err = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(rest, "F")))
		case "C":
			var cs uint64
			cs, err = strconv.ParseUint(strings.TrimSpace(rest), 16, 16)
			j.Csum = uint16(cs)
		case "L":
			err = parseFuseField(rest, fuses, &maxIndex)
		}
		if err != nil {
			return j, err
		}
	}

	if j.QF == 0 {
		j.QF = maxIndex + 1
	}
	j.Fuses = make([]bool, j.QF)
	for i := range j.Fuses {
		j.Fuses[i] = fuses[i]
	}
	return j, nil
}

// parseFuseField parses one "*L<offset> <bits>" field's body (the
// part after the 'L'), recording each bit against its absolute index.
func parseFuseField(rest string, fuses map[int]bool, maxIndex *int) error {
	s := strings.TrimSpace(rest)
	sep := strings.IndexByte(s, ' ')
	if sep < 0 {
		return fmt.Errorf("invalid L field: %q", rest)
	}
	off, err := strconv.Atoi(s[:sep])
	if err != nil {
		return err
	}
	for i, ch := range strings.TrimSpace(s[sep+1:]) {
		idx := off + i
		switch ch {
		case '1':
			fuses[idx] = true
		case '0':
			fuses[idx] = false
		default:
			return fmt.Errorf("invalid bit %q", ch)
		}
		if idx > *maxIndex {
			*maxIndex = idx
		}
	}
	return nil
}

// FuseChecksum computes the same LSB-first, 16-bit wrapping checksum
// the writer produces, for cross-checking a parsed fuse array. Bits
// are packed into bytes first and summed separately, rather than
// folded into one running accumulator, so the packing step can be
// reused or inspected on its own.
func FuseChecksum(bits []bool) uint16 {
	return sumBytes(packBits(bits))
}

func packBits(bits []bool) []byte {
	out := make([]byte, 0, (len(bits)+7)/8)
	var cur byte
	for i, b := range bits {
		if b {
			cur |= 1 << uint(i%8)
		}
		if i%8 == 7 {
			out = append(out, cur)
			cur = 0
		}
	}
	if len(bits)%8 != 0 {
		out = append(out, cur)
	}
	return out
}

func sumBytes(bs []byte) uint16 {
	var sum uint16
	for _, b := range bs {
		sum += uint16(b)
	}
	return sum
}

// DiffFuses returns a human-readable listing of mismatched fuse
// indices, or "" if got and want agree.
func DiffFuses(got, want []bool) string {
	if len(got) != len(want) {
		return fmt.Sprintf("fuse length mismatch: got %d want %d", len(got), len(want))
	}
	var buf strings.Builder
	mismatches := 0
	for i := range got {
		if got[i] != want[i] {
			mismatches++
			fmt.Fprintf(&buf, "  fuse[%d]: got=%v want=%v\n", i, got[i], want[i])
			if mismatches >= 40 {
				fmt.Fprintf(&buf, "  ... (%d+ mismatches, truncated)\n", mismatches)
				break
			}
		}
	}
	if mismatches == 0 {
		return ""
	}
	return fmt.Sprintf("%d fuse mismatches:\n%s", mismatches, buf.String())
}
