package flip

import (
	"fmt"
	"math"
)

// Percent is a ratio expressed in percent, 12.5 means 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

// Valid reports whether p is a share percentage, in [0, 100].
func (p Percent) Valid() bool { return p >= 0 && p <= 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
