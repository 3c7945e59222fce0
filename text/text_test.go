package text

import "testing"

func TestMeasure(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		attrs Attributes
		width float64
		cells string
	}{
		{name: "plain", in: "abc", width: 3, cells: "abc"},
		{name: "padding", in: "abc", attrs: Attributes{PaddingLeft: 1, PaddingRight: 2}, width: 6, cells: " abc  "},
		{name: "empty ignores padding", in: "", attrs: Attributes{PaddingLeft: 1, PaddingRight: 1}, width: 0, cells: ""},
		{name: "wide runes", in: "日本", width: 4, cells: "日本"},
		{name: "newline flattened", in: "a\nb", width: 3, cells: "a b"},
		{name: "min width left", in: "ab", attrs: Attributes{MinWidth: 5}, width: 5, cells: "ab   "},
		{name: "min width right", in: "ab", attrs: Attributes{MinWidth: 5, Align: AlignRight}, width: 5, cells: "   ab"},
		{name: "min width center", in: "ab", attrs: Attributes{MinWidth: 5, Align: AlignCenter, PaddingLeft: 1}, width: 6, cells: "  ab  "},
		{name: "min width smaller than text", in: "abcdef", attrs: Attributes{MinWidth: 2}, width: 6, cells: "abcdef"},
		{name: "markup", in: "<b>a&amp;b</b>", attrs: Attributes{Markup: true}, width: 3, cells: "a&b"},
		{name: "markup off keeps tags", in: "<b>", width: 3, cells: "<b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Measure(tt.in, tt.attrs)
			if c.Width() != tt.width {
				t.Errorf("Width() = %v, want %v", c.Width(), tt.width)
			}
			if c.Cells() != tt.cells {
				t.Errorf("Cells() = %q, want %q", c.Cells(), tt.cells)
			}
		})
	}
}

func TestParseAlign(t *testing.T) {
	for in, want := range map[string]Align{"left": AlignLeft, "center": AlignCenter, "right": AlignRight, "": AlignLeft, "bogus": AlignLeft} {
		if got := ParseAlign(in); got != want {
			t.Errorf("ParseAlign(%q) = %v, want %v", in, got, want)
		}
	}
}
