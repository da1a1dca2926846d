package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZX-Mu/perlerpix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOptions_PartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "options.json", `{
  "feature_share": 0.25,
  "metric": "redmean",
  "workers": 2
}`)
	opt, err := LoadOptions(path)
	require.NoError(t, err)

	want := perlerpix.DefaultOptions()
	want.FeatureShare = 0.25
	want.Metric = "redmean"
	want.Workers = 2
	assert.Equal(t, want, opt)
}

func TestLoadOptions_Rejects(t *testing.T) {
	t.Parallel()

	_, err := LoadOptions(writeFile(t, "options.yaml", `{}`))
	assert.ErrorContains(t, err, ".json extension")

	_, err = LoadOptions(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to stat")

	_, err = LoadOptions(writeFile(t, "broken.json", `{"edge_pad":`))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = LoadOptions(writeFile(t, "range.json", `{"outline_share": 3}`))
	assert.ErrorIs(t, err, perlerpix.ErrInvalidOptions)
}

func TestLoadPalette(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "beads.json", `[
  {"hex": "#000000", "name": "Black", "feature": true},
  {"hex": "ffffff", "name": "White"},
  {"hex": "#FF0000", "name": "Red", "feature": true}
]`)
	p, err := LoadPalette(path)
	require.NoError(t, err)
	require.Equal(t, 3, p.Len())
	assert.Equal(t, perlerpix.Token("#FFFFFF"), p.At(1).Hex)
	assert.True(t, p.At(2).Feature)
	assert.False(t, p.At(1).Feature)
}

func TestLoadPalette_Rejects(t *testing.T) {
	t.Parallel()

	_, err := LoadPalette(writeFile(t, "empty.json", `[]`))
	assert.ErrorIs(t, err, perlerpix.ErrEmptyPalette)

	_, err = LoadPalette(writeFile(t, "bad.json", `[{"hex": "#12", "name": "Short"}]`))
	assert.ErrorIs(t, err, perlerpix.ErrInvalidColor)

	_, err = LoadPalette(writeFile(t, "object.json", `{"hex": "#000000"}`))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestSavePalette_RoundTrip(t *testing.T) {
	t.Parallel()

	p := perlerpix.MustDefaultPalette()
	path := filepath.Join(t.TempDir(), "perler.json")
	require.NoError(t, SavePalette(p, path))

	loaded, err := LoadPalette(path)
	require.NoError(t, err)
	assert.Equal(t, p.Entries(), loaded.Entries())
}
