// Package format renders large game magnitudes as compact strings.
package format

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// pow1000 returns the nearest float64 to 10^(3*magnitude). Going through
// decimal parsing gives the same value a 1eN literal produces, which
// math.Pow does not guarantee at large exponents.
func pow1000(magnitude int) float64 {
	f, _ := strconv.ParseFloat("1e"+strconv.Itoa(3*magnitude), 64)
	return f
}

// Number formats a magnitude as a compact string.
// Values below 1000 print as plain integers with thousands separators.
// Larger values use k/m/g/t, then two-letter suffixes (aa, ab, ... zz).
func Number(num float64) string {
	abs := math.Abs(num)
	sign := ""
	if num < 0 {
		sign = "-"
	}

	if abs < 1000 {
		return humanize.Comma(int64(math.Floor(num)))
	}

	// Log10 is off by an ulp at exact powers of 1000 (Log10(1e15) lands
	// just under 15), so correct the floored magnitude against the real
	// thousand-group boundaries.
	magnitude := int(math.Floor(math.Log10(abs) / 3))
	if abs >= pow1000(magnitude+1) {
		magnitude++
	} else if abs < pow1000(magnitude) {
		magnitude--
	}

	switch magnitude {
	case 1:
		return sign + strconv.FormatFloat(math.Floor(abs/1e3), 'f', -1, 64) + "k"
	case 2:
		return sign + strconv.FormatFloat(math.Floor(abs/1e6), 'f', -1, 64) + "m"
	case 3:
		return sign + strconv.FormatFloat(math.Floor(abs/1e9), 'f', -1, 64) + "g"
	case 4:
		return sign + strconv.FormatFloat(math.Floor(abs/1e12), 'f', -1, 64) + "t"
	}

	offset := magnitude - 5
	if offset < 0 {
		return humanize.Comma(int64(math.Floor(num)))
	}

	firstIdx := offset / 26
	secondIdx := offset % 26
	if firstIdx > 25 {
		return "MAX"
	}
	suffix := string(rune('a'+firstIdx)) + string(rune('a'+secondIdx))
	return sign + strconv.FormatFloat(math.Floor(abs/pow1000(magnitude)), 'f', -1, 64) + suffix
}
