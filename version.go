package galasm

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionRaw string

// Version returns the embedded build version string.
func Version() string {
	return strings.TrimSpace(versionRaw)
}
