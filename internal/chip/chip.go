// Package chip is the static parameter catalog for the four supported
// GAL devices. It is a pure, data-driven lookup layer: every query is a
// table index, never a branch tree per device.
package chip

import (
	"strings"

	"github.com/sprice/galasm/internal/errs"
)

// Kind identifies one of the four supported devices.
type Kind int

const (
	Unknown Kind = iota
	GAL16V8
	GAL20V8
	GAL22V10
	GAL20RA10
)

type data struct {
	name       string
	numPins    int
	numRows    int
	numCols    int
	totalSize  int
	minOLMCPin int
	maxOLMCPin int
	olmcMap    []int
}

// Number of rows dedicated to each OLMC on the 22V10; every other chip
// is uniform at 8 rows per OLMC.
var olmcSize22V10 = []int{9, 11, 13, 15, 17, 17, 15, 13, 11, 9}

var table = map[Kind]data{
	GAL16V8: {
		name:       "GAL16V8",
		numPins:    20,
		numRows:    64,
		numCols:    32,
		totalSize:  2194,
		minOLMCPin: 12,
		maxOLMCPin: 19,
		olmcMap:    []int{56, 48, 40, 32, 24, 16, 8, 0},
	},
	GAL20V8: {
		name:       "GAL20V8",
		numPins:    24,
		numRows:    64,
		numCols:    40,
		totalSize:  2706,
		minOLMCPin: 15,
		maxOLMCPin: 22,
		olmcMap:    []int{56, 48, 40, 32, 24, 16, 8, 0},
	},
	GAL22V10: {
		name:       "GAL22V10",
		numPins:    24,
		numRows:    132,
		numCols:    44,
		totalSize:  5892,
		minOLMCPin: 14,
		maxOLMCPin: 23,
		olmcMap:    []int{122, 111, 98, 83, 66, 49, 34, 21, 10, 1},
	},
	GAL20RA10: {
		name:       "GAL20RA10",
		numPins:    24,
		numRows:    80,
		numCols:    40,
		totalSize:  3274,
		minOLMCPin: 14,
		maxOLMCPin: 23,
		olmcMap:    []int{72, 64, 56, 48, 40, 32, 24, 16, 8, 0},
	},
}

// FromName resolves a device mnemonic from the first source line.
func FromName(name string) (Kind, error) {
	switch strings.TrimSpace(name) {
	case "GAL16V8":
		return GAL16V8, nil
	case "GAL20V8":
		return GAL20V8, nil
	case "GAL22V10":
		return GAL22V10, nil
	case "GAL20RA10":
		return GAL20RA10, nil
	default:
		return Unknown, errs.At(1, errs.BadGALType)
	}
}

func (k Kind) d() data { return table[k] }

func (k Kind) Name() string      { return k.d().name }
func (k Kind) NumPins() int      { return k.d().numPins }
func (k Kind) NumRows() int      { return k.d().numRows }
func (k Kind) NumCols() int      { return k.d().numCols }
func (k Kind) LogicSize() int    { return k.d().numRows * k.d().numCols }
func (k Kind) TotalSize() int    { return k.d().totalSize }
func (k Kind) MinOLMCPin() int   { return k.d().minOLMCPin }
func (k Kind) MaxOLMCPin() int   { return k.d().maxOLMCPin }
func (k Kind) NumOLMCs() int     { return k.d().maxOLMCPin - k.d().minOLMCPin + 1 }

// PinToOLMC returns the zero-based OLMC index for a pin, if the pin is
// backed by an OLMC at all.
func (k Kind) PinToOLMC(pin int) (int, bool) {
	d := k.d()
	if pin < d.minOLMCPin || pin > d.maxOLMCPin {
		return 0, false
	}
	return pin - d.minOLMCPin, true
}

// NumRowsForOLMC returns the row count reserved for one OLMC. Only the
// 22V10 varies; every other chip reserves 8 rows uniformly.
func (k Kind) NumRowsForOLMC(olmc int) int {
	if k == GAL22V10 {
		return olmcSize22V10[olmc]
	}
	return 8
}

// Bounds is the usable fuse-row range for one term slot.
type Bounds struct {
	StartRow  int
	MaxRows   int
	RowOffset int
}

// BoundsForOLMC returns the full row span owned by an OLMC, with no
// offset applied yet; callers narrow it for control-function rows.
func (k Kind) BoundsForOLMC(olmc int) Bounds {
	return Bounds{
		StartRow: k.d().olmcMap[olmc],
		MaxRows:  k.NumRowsForOLMC(olmc),
	}
}
