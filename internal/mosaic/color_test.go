package mosaic

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		p, q MeanColor
		want float64
	}{
		{"identical", MeanColor{10, 20, 30}, MeanColor{10, 20, 30}, 0},
		{"one channel", MeanColor{0, 0, 0}, MeanColor{3, 0, 0}, 3},
		{"pythagorean", MeanColor{0, 0, 0}, MeanColor{3, 4, 0}, 5},
		{"black to near black", MeanColor{10, 10, 10}, MeanColor{0, 0, 0}, math.Sqrt(300)},
		{"black to white", MeanColor{0, 0, 0}, MeanColor{255, 255, 255}, math.Sqrt(3 * 255 * 255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.p, tt.q)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	colors := []MeanColor{
		{0, 0, 0},
		{255, 255, 255},
		{127.5, 3.25, 99},
		{10, 200, 47.125},
		{1e-3, 254.999, 128},
	}
	for _, p := range colors {
		for _, q := range colors {
			if Distance(p, q) != Distance(q, p) {
				t.Errorf("Distance(%v, %v) != Distance(%v, %v)", p, q, q, p)
			}
		}
	}
}

func TestMeanColor_Hex(t *testing.T) {
	tests := []struct {
		c    MeanColor
		want string
	}{
		{MeanColor{255, 0, 0}, "#ff0000"},
		{MeanColor{0, 0, 0}, "#000000"},
		{MeanColor{127.5, 127.5, 127.5}, "#808080"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex(%v): got %s, want %s", tt.c, got, tt.want)
		}
	}
}

func TestMeanColor_JSON(t *testing.T) {
	b, err := json.Marshal(MeanColor{127.5, 0, 255})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != "[127.5,0,255]" {
		t.Errorf("got %s, want [127.5,0,255]", b)
	}
}

func TestMeanColor_UnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"object", `{"r":1,"g":2,"b":3}`},
		{"too short", `[1,2]`},
		{"too long", `[1,2,3,4]`},
		{"string component", `[1,"2",3]`},
		{"negative", `[-1,2,3]`},
		{"too large", `[1,2,256]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c MeanColor
			err := json.Unmarshal([]byte(tt.json), &c)
			if !errors.Is(err, ErrCacheCorrupt) {
				t.Errorf("expected ErrCacheCorrupt, got %v", err)
			}
		})
	}
}
