package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"400px", Length{400, UnitPx}, true},
		{" 96.75px ", Length{96.75, UnitPx}, true},
		{"75%", Length{75, UnitPercent}, true},
		{"12PT", Length{12, UnitPt}, true},
		{"200", Length{200, UnitNone}, true},
		{".5in", Length{0.5, UnitIn}, true},
		{"1.5em", Length{1.5, UnitEm}, true},
		{"auto", Length{}, false},
		{"calc(100% - 10px)", Length{}, false},
		{"10furlongs", Length{}, false},
		{"", Length{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLength(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLengthPixels(t *testing.T) {
	px, ok := Length{12, UnitPt}.Pixels()
	assert.True(t, ok)
	assert.InDelta(t, 16, px, 1e-9)

	px, ok = Length{1, UnitIn}.Pixels()
	assert.True(t, ok)
	assert.InDelta(t, 96, px, 1e-9)

	_, ok = Length{50, UnitPercent}.Pixels()
	assert.False(t, ok)
	_, ok = Length{2, UnitEm}.Pixels()
	assert.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "33.3333", FormatNumber(100.0/3))
	assert.Equal(t, "400", FormatNumber(400))
	assert.Equal(t, "0", FormatNumber(-0.00001))
	assert.Equal(t, "96.75px", Px(96.75))
	assert.Equal(t, "12.5%", Percent(12.5))
}
