package utils

import (
	"image/color"
	"testing"
	"time"
)

func TestUtils_ShouldParseNamedColors(t *testing.T) {
	c, err := ParseColor("blue")
	if err != nil {
		t.Fatalf("could not parse color name: %v", err)
	}
	if c.A != 0xff {
		t.Errorf("A named color should be fully opaque, got alpha %d", c.A)
	}

	c, err = ParseColor("none")
	if err != nil {
		t.Fatalf("could not parse color name: %v", err)
	}
	if c.A != 0 {
		t.Errorf("The color none should be fully transparent, got alpha %d", c.A)
	}
}

func TestUtils_ShouldParseHexColors(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"#000000", color.NRGBA{A: 0xff}},
		{"#ff0000", color.NRGBA{R: 0xff, A: 0xff}},
		{"#0f0", color.NRGBA{G: 0xff, A: 0xff}},
		{"#11223344", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.input)
		if err != nil {
			t.Fatalf("could not parse %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestUtils_ShouldRejectInvalidColors(t *testing.T) {
	for _, input := range []string{"", "nosuchcolor", "#12", "#zzzzzz"} {
		if _, err := ParseColor(input); err == nil {
			t.Errorf("ParseColor(%q) expected to fail", input)
		}
	}
}

func TestUtils_ShouldScaleAlpha(t *testing.T) {
	c := WithAlpha(color.NRGBA{R: 0x10, A: 0xff}, 0.5)
	if c.A != 0x80 {
		t.Errorf("Expected alpha 0x80, got %#x", c.A)
	}
	c = WithAlpha(color.NRGBA{A: 0xff}, 2.0)
	if c.A != 0xff {
		t.Errorf("Alpha should be clamped to opaque, got %#x", c.A)
	}
}

func TestUtils_ShouldFormatTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m 30.00s"},
		{3723 * time.Second, "1h 2m 3.00s"},
	}
	for _, tc := range tests {
		if got := FormatTime(tc.d); got != tc.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestUtils_ShouldClampValues(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := Clamp(-1.5, 0.0, 3.0); got != 0.0 {
		t.Errorf("Expected 0, got %f", got)
	}
	if got := Min(2, 7); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
	if got := Max(2, 7); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
}
