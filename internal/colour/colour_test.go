package colour

import (
	"errors"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    RGB
		wantErr bool
	}{
		{
			name: "plain lowercase",
			hex:  "ff0000",
			want: RGB{R: 255, G: 0, B: 0},
		},
		{
			name: "leading hash",
			hex:  "#00ff00",
			want: RGB{R: 0, G: 255, B: 0},
		},
		{
			name: "uppercase",
			hex:  "F44336",
			want: RGB{R: 244, G: 67, B: 54},
		},
		{
			name: "mixed digits",
			hex:  "607d8b",
			want: RGB{R: 96, G: 125, B: 139},
		},
		{
			name:    "too short",
			hex:     "ff00",
			wantErr: true,
		},
		{
			name:    "too long",
			hex:     "ff000000",
			wantErr: true,
		},
		{
			name:    "shorthand not accepted",
			hex:     "#f00",
			wantErr: true,
		},
		{
			name:    "non-hex digits",
			hex:     "gg0000",
			wantErr: true,
		},
		{
			name:    "empty",
			hex:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.hex)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColorFormat) {
					t.Fatalf("ParseHex(%q) error = %v, want ErrInvalidColorFormat", tt.hex, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) error = %v", tt.hex, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "ff0000"},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: "ffffff"},
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}, want: "000000"},
		{name: "zero padded channels", rgb: RGB{R: 1, G: 2, B: 3}, want: "010203"},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: "808080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	// RGB -> hex -> RGB is lossless for every integer channel value.
	colors := []RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 244, G: 67, B: 54},
		{R: 1, G: 128, B: 254},
		{R: 96, G: 125, B: 139},
	}

	for _, c := range colors {
		got, err := ParseHex(c.Hex())
		if err != nil {
			t.Fatalf("ParseHex(%q) error = %v", c.Hex(), err)
		}
		if got != c {
			t.Errorf("round trip %+v -> %q -> %+v", c, c.Hex(), got)
		}
	}

	// hex -> RGB -> hex canonicalizes to lowercase without '#'.
	hexes := []struct{ in, want string }{
		{in: "ff0000", want: "ff0000"},
		{in: "#FF0000", want: "ff0000"},
		{in: "AbCdEf", want: "abcdef"},
	}
	for _, tt := range hexes {
		c, err := ParseHex(tt.in)
		if err != nil {
			t.Fatalf("ParseHex(%q) error = %v", tt.in, err)
		}
		if got := c.Hex(); got != tt.want {
			t.Errorf("ParseHex(%q).Hex() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeHex(t *testing.T) {
	got, err := NormalizeHex("#F44336")
	if err != nil {
		t.Fatalf("NormalizeHex() error = %v", err)
	}
	if got != "f44336" {
		t.Errorf("NormalizeHex() = %s, want f44336", got)
	}

	if _, err := NormalizeHex("nope"); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("NormalizeHex(nope) error = %v, want ErrInvalidColorFormat", err)
	}
}

func TestFromHSV(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		want    RGB
	}{
		{name: "black", h: 0, s: 0, v: 0, want: RGB{R: 0, G: 0, B: 0}},
		{name: "white", h: 0, s: 0, v: 1, want: RGB{R: 255, G: 255, B: 255}},
		{name: "red", h: 0, s: 1, v: 1, want: RGB{R: 255, G: 0, B: 0}},
		{name: "green", h: 1.0 / 3.0, s: 1, v: 1, want: RGB{R: 0, G: 255, B: 0}},
		{name: "blue", h: 2.0 / 3.0, s: 1, v: 1, want: RGB{R: 0, G: 0, B: 255}},
		{name: "generator band cyan", h: 0.5, s: 0.5, v: 0.9, want: RGB{R: 115, G: 230, B: 230}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromHSV(tt.h, tt.s, tt.v); got != tt.want {
				t.Errorf("FromHSV(%v, %v, %v) = %+v, want %+v", tt.h, tt.s, tt.v, got, tt.want)
			}
		})
	}
}
