package mandelbrot

import (
	"math"
	"math/big"
	"testing"
)

func bigFloat(value float64) *big.Float {
	return new(big.Float).SetPrec(CenterPrecision).SetFloat64(value)
}

func TestNewOrbitOriginRunsFullDepth(t *testing.T) {
	orbit := NewOrbit(bigFloat(0), bigFloat(0), 1000)

	if len(orbit) != 1000 {
		t.Errorf("Expected orbit length 1000 at the origin, got %d", len(orbit))
	}
	for i, sample := range orbit {
		if sample != 0 {
			t.Errorf("Expected sample %d to be 0 at the origin, got %v", i, sample)
			break
		}
	}
}

func TestNewOrbitEscapeTruncates(t *testing.T) {
	depth := 1000
	orbit := NewOrbit(bigFloat(2), bigFloat(2), depth)

	if len(orbit) >= depth {
		t.Fatalf("Expected orbit at (2,2) to truncate below depth %d, got length %d", depth, len(orbit))
	}

	// Every sample before the last stays inside the bailout box; the last
	// one is the first to leave it
	for i, sample := range orbit {
		re, im := real(sample), imag(sample)
		outside := math.Abs(re) > OrbitBailout || math.Abs(im) > OrbitBailout
		if i < len(orbit)-1 && outside {
			t.Errorf("Expected sample %d inside the bailout box, got %v", i, sample)
		}
		if i == len(orbit)-1 && !outside {
			t.Errorf("Expected final sample outside the bailout box, got %v", sample)
		}
	}
}

func TestNewOrbitSamplesArePreDoubled(t *testing.T) {
	// At center (-1, 0) the iterates cycle -1, 0, -1, 0, ... so the
	// pre-doubled samples cycle -2, 0, -2, 0, ...
	orbit := NewOrbit(bigFloat(-1), bigFloat(0), 6)

	if len(orbit) != 6 {
		t.Fatalf("Expected orbit length 6, got %d", len(orbit))
	}
	for i, sample := range orbit {
		expected := complex(-2, 0)
		if i%2 == 1 {
			expected = complex(0, 0)
		}
		if sample != expected {
			t.Errorf("Expected sample %d to be %v, got %v", i, expected, sample)
		}
	}
}

func TestNewOrbitDepthBoundsLength(t *testing.T) {
	tests := []struct {
		name  string
		depth int
	}{
		{"Single iteration", 1},
		{"Short orbit", 10},
		{"Long orbit", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orbit := NewOrbit(bigFloat(0), bigFloat(0), tt.depth)
			if len(orbit) != tt.depth {
				t.Errorf("Expected orbit length %d, got %d", tt.depth, len(orbit))
			}
		})
	}
}
