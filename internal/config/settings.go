// Package config owns the persisted last-used settings of the CLI adapter.
// The core engines never read this file; the adapter loads it, turns it into
// explicit arguments, and saves it back after a successful run.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// Settings mirrors the on-disk JSON:
//
//	{"excel_path": "...", "ranges": [[0, 500, "Small"], [500, "inf", "Big"]]}
//
// Each range entry is a three-element array of minimum, maximum (a number or
// the literal "inf") and label.
type Settings struct {
	ExcelPath string       `json:"excel_path"`
	Ranges    []RangeEntry `json:"ranges"`
}

// RangeEntry is one persisted range. It marshals as [min, max|"inf", label].
type RangeEntry struct {
	Label string
	Min   float64
	Max   float64
}

// MarshalJSON renders the entry as the heterogeneous three-element array.
func (r RangeEntry) MarshalJSON() ([]byte, error) {
	var max any = r.Max
	if math.IsInf(r.Max, 1) {
		max = "inf"
	}
	return json.Marshal([]any{r.Min, max, r.Label})
}

// UnmarshalJSON accepts [min, max, label] with max as a number or "inf".
func (r *RangeEntry) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("range entry must have 3 elements, got %d", len(raw))
	}

	min, err := toNumber(raw[0])
	if err != nil {
		return fmt.Errorf("range minimum: %w", err)
	}

	max := math.Inf(1)
	if s, isStr := raw[1].(string); !isStr || s != "inf" {
		max, err = toNumber(raw[1])
		if err != nil {
			return fmt.Errorf("range maximum: %w", err)
		}
	}

	label, ok := raw[2].(string)
	if !ok {
		return fmt.Errorf("range label must be a string, got %T", raw[2])
	}

	*r = RangeEntry{Min: min, Max: max, Label: label}
	return nil
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// DefaultPath returns where the settings file lives.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pigeonhole", "last.json"), nil
}

// Load reads the settings file. A missing file is not an error: zero-value
// settings come back so first runs work without any setup.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return s, nil
}

// Save writes the settings file, creating its directory when needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
