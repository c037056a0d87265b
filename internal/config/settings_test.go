package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "last.json")

	in := Settings{
		ExcelPath: "/data/projects.xlsx",
		Ranges: []RangeEntry{
			{Min: 0, Max: 500, Label: "Small"},
			{Min: 500, Max: math.Inf(1), Label: "Big"},
		},
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, in.ExcelPath, out.ExcelPath)
	require.Len(t, out.Ranges, 2)
	assert.Equal(t, 500.0, out.Ranges[0].Max)
	assert.True(t, math.IsInf(out.Ranges[1].Max, 1))
	assert.Equal(t, "Big", out.Ranges[1].Label)
}

func TestSettings_InfSerializedAsLiteral(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last.json")
	require.NoError(t, Save(path, Settings{
		Ranges: []RangeEntry{{Min: 500, Max: math.Inf(1), Label: "Big"}},
	}))

	raw, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"inf"`)
}

func TestLoad_MissingFileYieldsZeroSettings(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, got.ExcelPath)
	assert.Empty(t, got.Ranges)
}

func TestLoad_ExternalFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last.json")
	content := `{"excel_path": "/tmp/p.xlsx", "ranges": [[0, 500, "A"], [500, "inf", "B"]]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/p.xlsx", got.ExcelPath)
	require.Len(t, got.Ranges, 2)
	assert.Equal(t, "A", got.Ranges[0].Label)
	assert.True(t, math.IsInf(got.Ranges[1].Max, 1))
}

func TestLoad_MalformedRangeEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ranges": [[0, 500]]}`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "projects"), ExpandPath("~/projects"))
	assert.Equal(t, home, ExpandPath("~"))

	t.Setenv("PIGEONHOLE_TEST_DIR", "/data")
	assert.Equal(t, "/data/projects", ExpandPath("$PIGEONHOLE_TEST_DIR/projects"))

	assert.Equal(t, "/plain/path", ExpandPath("/plain/path"))
}
