// Package model defines the core domain models used throughout the application.
package model

import "math"

// UnclassifiedLabel is the sentinel category for sizes outside every range.
const UnclassifiedLabel = "Unclassified"

// Range is a half-open interval [Min, Max) paired with a category label.
// Max may be math.Inf(1) for an unbounded top range.
type Range struct {
	Label string
	Min   float64
	Max   float64
}

// Contains reports whether size falls inside the interval.
func (r Range) Contains(size float64) bool {
	return r.Min <= size && size < r.Max
}

// RangeSet is an ordered list of ranges. Lookup is first-match: when ranges
// overlap, the earlier one wins.
type RangeSet []Range

// Bucket returns the label of the first range containing size.
func (rs RangeSet) Bucket(size float64) (string, bool) {
	for _, r := range rs {
		if r.Contains(size) {
			return r.Label, true
		}
	}
	return "", false
}

// BucketOrUnclassified returns the matching label, or the sentinel when no
// range contains size. Used by report mode; classify mode treats a miss as
// "leave the folder alone".
func (rs RangeSet) BucketOrUnclassified(size float64) string {
	if label, ok := rs.Bucket(size); ok {
		return label
	}
	return UnclassifiedLabel
}

// Labels returns the category labels in range order.
func (rs RangeSet) Labels() []string {
	labels := make([]string, len(rs))
	for i, r := range rs {
		labels[i] = r.Label
	}
	return labels
}

// HasLabel reports whether name is one of the configured category labels.
func (rs RangeSet) HasLabel(name string) bool {
	for _, r := range rs {
		if r.Label == name {
			return true
		}
	}
	return false
}

// DefaultRanges returns the range list used when the operator has not
// configured any.
func DefaultRanges() RangeSet {
	return RangeSet{
		{Label: "Under 500", Min: 0, Max: 500},
		{Label: "500 to 10000", Min: 500, Max: 10000},
		{Label: "10000 to 50000", Min: 10000, Max: 50000},
		{Label: "Over 50000", Min: 50000, Max: math.Inf(1)},
	}
}
