package lists

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{text: "0", want: 0, wantOK: true},
		{text: "3", want: 3, wantOK: true},
		{text: "  12", want: 12, wantOK: true},
		{text: "+4", want: 4, wantOK: true},
		{text: "3.7", want: 3, wantOK: true},
		{text: "2abc", want: 2, wantOK: true},
		{text: "-1", want: 0, wantOK: true},
		{text: "-0", want: 0, wantOK: true},
		{text: "99999999999999999999999", want: math.MaxInt, wantOK: true},
		{text: "", want: AppendPosition, wantOK: false},
		{text: "abc", want: AppendPosition, wantOK: false},
		{text: "-", want: AppendPosition, wantOK: false},
		{text: ".5", want: AppendPosition, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParsePosition(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

// Non-numeric input goes down the same path as an out-of-range position.
func TestParsePosition_AppendsOnInsert(t *testing.T) {
	for _, v := range allVariants {
		t.Run(string(v), func(t *testing.T) {
			l := newStringList(t, v, "a", "b")
			position, _ := ParsePosition("not a number")
			l.Insert("x", position)
			assert.Equal(t, []string{"a", "b", "x"}, l.ToSlice())
		})
	}
}
