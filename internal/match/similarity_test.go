package match

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRatio_Identity(t *testing.T) {
	for _, s := range []string{"", "x", "Alpha Project", "数据中心一期", "a b c"} {
		if got := Ratio(s, s); !almostEqual(got, 1.0) {
			t.Errorf("Ratio(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestRatio_EmptyAgainstNonEmpty(t *testing.T) {
	if got := Ratio("", "x"); !almostEqual(got, 0.0) {
		t.Errorf("Ratio(\"\", \"x\") = %v, want 0.0", got)
	}
	if got := Ratio("x", ""); !almostEqual(got, 0.0) {
		t.Errorf("Ratio(\"x\", \"\") = %v, want 0.0", got)
	}
}

func TestRatio_KnownValues(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want float64
	}{
		// "ab" aligns, trailing characters differ: 2*2/6.
		{a: "abc", b: "abd", want: 4.0 / 6.0},
		// "Alpha" and "Project" both align around the differing separator:
		// 2*12/26.
		{a: "Alpha_Project", b: "Alpha Project", want: 24.0 / 26.0},
		// "bcd" aligns, the rotated "a" cannot be recovered: 2*3/8.
		{a: "abcd", b: "bcda", want: 6.0 / 8.0},
		// No characters in common.
		{a: "abc", b: "xyz", want: 0.0},
	}

	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); !almostEqual(got, tt.want) {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRatio_SymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"abc", "abd"},
		{"Alpha_Project", "Alpha Project"},
		{"ab", "ba"},
		{"riverside plant", "riverside plant phase 2"},
		{"数据中心一期", "数据中心二期"},
	}

	for _, p := range pairs {
		ab := Ratio(p[0], p[1])
		ba := Ratio(p[1], p[0])
		if !almostEqual(ab, ba) {
			t.Errorf("Ratio(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Ratio(%q, %q) = %v, outside [0, 1]", p[0], p[1], ab)
		}
	}
}

func TestRatio_MultiByteRunes(t *testing.T) {
	// One differing rune out of six on each side: 2*5/12. Byte-based
	// comparison would skew this badly.
	got := Ratio("数据中心一期", "数据中心二期")
	if !almostEqual(got, 10.0/12.0) {
		t.Errorf("Ratio on CJK strings = %v, want %v", got, 10.0/12.0)
	}
}

func TestRatio_ClassifyFixtureExceedsThreshold(t *testing.T) {
	// The classify engine pairs these two spellings; the fixture is only
	// valid while their score clears the 0.8 cutoff.
	if got := Ratio("Alpha_Project", "Alpha Project"); got <= 0.8 {
		t.Errorf("fixture score = %v, want > 0.8", got)
	}
}
