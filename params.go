package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// paramPattern matches a single parameter value: numbers, pi expressions, or combinations.
// Examples: "1.5707", "pi", "pi/2", "3*pi/4", "-pi", "-2*pi/3", "3.14e-2"
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2, -3*pi/4
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParamExpr reads one gate angle: a plain number ("0.5", "-1e-3") or a
// multiple of pi ("pi", "-pi/2", "3*pi/4", "2pi").
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	s = strings.ToLower(s)
	if matches := piExprRegex.FindStringSubmatch(s); matches != nil {
		negative := matches[1] == "-"
		coeffStr := matches[2]
		denomStr := matches[3]

		coeff := 1.0
		if coeffStr != "" {
			var err error
			coeff, err = strconv.ParseFloat(coeffStr, 64)
			if err != nil {
				return 0, false
			}
		}

		result := coeff * math.Pi

		if denomStr != "" {
			denom, err := strconv.ParseFloat(denomStr, 64)
			if err != nil || denom == 0 {
				return 0, false
			}
			result /= denom
		}

		if negative {
			result = -result
		}
		return result, true
	}

	return 0, false
}

// piForms are the angles written back in pi notation.
var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

// formatParam renders an angle for QASM output, preferring pi fractions.
func formatParam(val float64) string {
	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}

	return fmt.Sprintf("%g", val)
}

// parseParams splits a comma-separated angle list. It returns nil if any
// entry fails to parse.
func parseParams(input string) []float64 {
	var params []float64
	for part := range strings.SplitSeq(input, ",") {
		val, ok := parseParamExpr(part)
		if !ok {
			return nil
		}
		params = append(params, val)
	}
	return params
}
