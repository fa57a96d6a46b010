package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/flip"
)

// Now is the clock used for "as of" stamps. Tests replace it.
var Now = time.Now

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// roi formats an optional percentage.
func roi(p flip.Percent, ok bool) string {
	if !ok {
		return "n/a"
	}
	return p.SignedString()
}

// cell escapes the pipes of free text put in a table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

// row writes a two columns table row.
func row(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "| %s | %v |\n", label, value)
}
