// Package ranges parses and validates operator-supplied size ranges.
package ranges

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hanj-cn/pigeonhole/internal/model"
)

// InfToken is the literal accepted as an unbounded maximum.
const InfToken = "inf"

// Triple is one unparsed range as entered by the operator.
type Triple struct {
	Min   string
	Max   string
	Label string
}

// Parse validates every triple independently and returns the ranges that
// passed alongside all collected violations, in input order. It never fails
// fast: the operator gets the full list of problems in one round. Callers
// must treat any non-empty error list as fatal and discard the ranges.
func Parse(triples []Triple) (model.RangeSet, []error) {
	var (
		ranges model.RangeSet
		errs   []error
	)

	for i, t := range triples {
		r, err := parseOne(t)
		if err != nil {
			errs = append(errs, fmt.Errorf("range %d: %w", i+1, err))
			continue
		}
		ranges = append(ranges, r)
	}

	return ranges, errs
}

func parseOne(t Triple) (model.Range, error) {
	minText := strings.TrimSpace(t.Min)
	maxText := strings.TrimSpace(t.Max)
	label := strings.TrimSpace(t.Label)

	minVal, err := parseBound(minText)
	if err != nil {
		return model.Range{}, fmt.Errorf("minimum must be a non-negative integer: %q", t.Min)
	}

	maxVal := math.Inf(1)
	if maxText != InfToken {
		maxVal, err = parseBound(maxText)
		if err != nil {
			return model.Range{}, fmt.Errorf("maximum must be a non-negative integer or %q: %q", InfToken, t.Max)
		}
	}

	if label == "" {
		return model.Range{}, fmt.Errorf("category label must not be empty")
	}

	if minVal >= maxVal {
		return model.Range{}, fmt.Errorf("invalid bounds: %v >= %v", formatBound(minVal), formatBound(maxVal))
	}

	return model.Range{Min: minVal, Max: maxVal, Label: label}, nil
}

// parseBound accepts only plain non-negative integer literals, matching the
// range configuration format rather than general float syntax.
func parseBound(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not an integer literal")
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func formatBound(v float64) string {
	if math.IsInf(v, 1) {
		return InfToken
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
