// Package units converts temperatures between the Celsius, Kelvin,
// Fahrenheit and Rankine scales. Conversions pivot through Celsius, the
// canonical scale for curve data; Rankine is the absolute scale most of the
// published distillation correlations are defined on.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedUnit is returned when a unit string cannot be resolved to a
// known temperature scale.
var ErrUnsupportedUnit = errors.New("unsupported temperature unit")

// Unit identifies a temperature scale.
type Unit string

const (
	Celsius    Unit = "C"
	Kelvin     Unit = "K"
	Fahrenheit Unit = "F"
	Rankine    Unit = "R"
)

// aliases maps upper-cased spellings to their canonical unit.
var aliases = map[string]Unit{
	"C": Celsius, "°C": Celsius, "CELSIUS": Celsius, "DEG C": Celsius,
	"K": Kelvin, "KELVIN": Kelvin,
	"F": Fahrenheit, "°F": Fahrenheit, "FAHRENHEIT": Fahrenheit,
	"R": Rankine, "°R": Rankine, "RANKINE": Rankine,
}

// Parse resolves a unit string to its canonical Unit. Matching is
// case-insensitive and accepts common aliases ("celsius", "°F", "Rankine").
func Parse(s string) (Unit, error) {
	u, ok := aliases[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
	}
	return u, nil
}

// Convert converts value from one temperature scale to another. Unit strings
// are parsed with Parse; an unrecognized unit yields ErrUnsupportedUnit.
func Convert(value float64, from, to string) (float64, error) {
	fu, err := Parse(from)
	if err != nil {
		return 0, fmt.Errorf("from_unit: %w", err)
	}
	tu, err := Parse(to)
	if err != nil {
		return 0, fmt.Errorf("to_unit: %w", err)
	}
	if fu == tu {
		return value, nil
	}
	return fromCelsius(toCelsius(value, fu), tu), nil
}

func toCelsius(v float64, u Unit) float64 {
	switch u {
	case Kelvin:
		return v - 273.15
	case Fahrenheit:
		return (v - 32) * 5 / 9
	case Rankine:
		return (v - 491.67) * 5 / 9
	default:
		return v
	}
}

func fromCelsius(c float64, u Unit) float64 {
	switch u {
	case Kelvin:
		return c + 273.15
	case Fahrenheit:
		return c*9/5 + 32
	case Rankine:
		return (c + 273.15) * 9 / 5
	default:
		return c
	}
}

// CToF converts Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*9/5 + 32 }

// FToC converts Fahrenheit to Celsius.
func FToC(f float64) float64 { return (f - 32) * 5 / 9 }

// CToR converts Celsius to Rankine.
func CToR(c float64) float64 { return (c + 273.15) * 9 / 5 }

// RToC converts Rankine to Celsius.
func RToC(r float64) float64 { return (r - 491.67) * 5 / 9 }
