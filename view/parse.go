package view

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"deepbrot/mandelbrot"
)

const (
	KindEmpty ErrorKind = iota
	KindMalformed
	KindMalformedExponent
	KindOutOfRange
)

// coordinateBound rejects centers that cannot be inside or near the set.
const coordinateBound = 4

type ErrorKind int

func (k ErrorKind) String() string {
	return []string{
		"empty", "malformed", "malformed exponent", "out of range",
	}[k]
}

// ParseError reports why a piece of numeric input was rejected. The input is
// never silently repaired; the caller keeps its previous state.
type ParseError struct {
	Input string
	Kind  ErrorKind
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s input %q", e.Kind, e.Input)
}

// ParseCoordinate reads one high-precision decimal coordinate: an optional
// sign, digits with an optional fraction, and an optional exponent.
// Coordinates beyond ±4 are out of range, the set lives well inside that.
func ParseCoordinate(input string) (*big.Float, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &ParseError{Input: input, Kind: KindEmpty}
	}
	if err := scanDecimal(input); err != nil {
		return nil, err
	}

	value, _, err := big.ParseFloat(input, 10, mandelbrot.CenterPrecision, big.ToNearestEven)
	if err != nil {
		return nil, &ParseError{Input: input, Kind: KindMalformed}
	}
	if new(big.Float).Abs(value).Cmp(big.NewFloat(coordinateBound)) > 0 {
		return nil, &ParseError{Input: input, Kind: KindOutOfRange}
	}
	return value, nil
}

// ParseRadius reads a positive fixed-precision radius.
func ParseRadius(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, &ParseError{Input: input, Kind: KindEmpty}
	}
	value, err := strconv.ParseFloat(input, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &ParseError{Input: input, Kind: KindOutOfRange}
	}
	if err != nil {
		return 0, &ParseError{Input: input, Kind: KindMalformed}
	}
	if value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, &ParseError{Input: input, Kind: KindOutOfRange}
	}
	return value, nil
}

// ParseDepth reads a positive iteration depth.
func ParseDepth(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, &ParseError{Input: input, Kind: KindEmpty}
	}
	value, err := strconv.Atoi(input)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &ParseError{Input: input, Kind: KindOutOfRange}
	}
	if err != nil {
		return 0, &ParseError{Input: input, Kind: KindMalformed}
	}
	if value <= 0 {
		return 0, &ParseError{Input: input, Kind: KindOutOfRange}
	}
	return value, nil
}

// scanDecimal walks the input once and classifies the first defect, so the
// caller can report "malformed exponent" instead of a generic parse failure.
func scanDecimal(input string) error {
	rest := input
	if rest[0] == '+' || rest[0] == '-' {
		rest = rest[1:]
	}

	mantissa, exponent, hasExponent := rest, "", false
	if i := strings.IndexAny(rest, "eE"); i >= 0 {
		mantissa, exponent, hasExponent = rest[:i], rest[i+1:], true
	}

	intPart, fracPart := mantissa, ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		intPart, fracPart = mantissa[:i], mantissa[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return &ParseError{Input: input, Kind: KindMalformed}
		}
	}
	if !allDigits(intPart) || !allDigits(fracPart) || intPart == "" {
		return &ParseError{Input: input, Kind: KindMalformed}
	}

	if hasExponent {
		if exponent != "" && (exponent[0] == '+' || exponent[0] == '-') {
			exponent = exponent[1:]
		}
		if exponent == "" || !allDigits(exponent) {
			return &ParseError{Input: input, Kind: KindMalformedExponent}
		}
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
