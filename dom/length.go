package dom

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit is a CSS length unit. UnitNone is a bare number, which the legacy
// width attribute treats as pixels.
type Unit string

const (
	UnitNone    Unit = ""
	UnitPx      Unit = "px"
	UnitPercent Unit = "%"
	UnitPt      Unit = "pt"
	UnitPc      Unit = "pc"
	UnitIn      Unit = "in"
	UnitCm      Unit = "cm"
	UnitMm      Unit = "mm"
	UnitQ       Unit = "q"
	UnitEm      Unit = "em"
	UnitRem     Unit = "rem"
)

// pixels per unit for the absolute units (CSS Values 3, 96px per inch).
var absoluteUnits = map[Unit]float64{
	UnitNone: 1,
	UnitPx:   1,
	UnitPt:   96.0 / 72.0,
	UnitPc:   16,
	UnitIn:   96,
	UnitCm:   96 / 2.54,
	UnitMm:   96 / 25.4,
	UnitQ:    96 / 101.6,
}

var lengthRe = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)\s*([a-zA-Z%]*)$`)

// Length is a parsed CSS length.
type Length struct {
	Value float64
	Unit  Unit
}

func (l Length) String() string {
	return FormatNumber(l.Value) + string(l.Unit)
}

// ParseLength parses values such as "400px", "75%", "12pt" or "200". It
// rejects keywords (auto, inherit), calc() and unknown units.
func ParseLength(s string) (Length, bool) {
	m := lengthRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Length{}, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Length{}, false
	}
	u := Unit(strings.ToLower(m[2]))
	switch u {
	case UnitNone, UnitPx, UnitPercent, UnitPt, UnitPc, UnitIn, UnitCm, UnitMm, UnitQ, UnitEm, UnitRem:
	default:
		return Length{}, false
	}
	return Length{Value: v, Unit: u}, true
}

// IsPercent reports whether l is a percentage.
func (l Length) IsPercent() bool { return l.Unit == UnitPercent }

// Pixels converts an absolute length to CSS pixels.
func (l Length) Pixels() (float64, bool) {
	f, ok := absoluteUnits[l.Unit]
	if !ok {
		return 0, false
	}
	return l.Value * f, true
}

// FormatNumber prints v with at most four decimals and no trailing zeros.
func FormatNumber(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Px formats a pixel length.
func Px(v float64) string { return FormatNumber(v) + "px" }

// Percent formats a percentage.
func Percent(v float64) string { return FormatNumber(v) + "%" }
