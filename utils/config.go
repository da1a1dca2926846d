package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZX-Mu/perlerpix"
)

const maxConfigSize = 1 * 1024 * 1024 // 1MB

// readConfigFile checks the extension and size of a JSON config file before
// reading it.
func readConfigFile(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// LoadOptions reads pipeline options from a JSON file. Fields omitted from
// the file keep their DefaultOptions values.
func LoadOptions(path string) (perlerpix.Options, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return perlerpix.Options{}, err
	}
	opt := perlerpix.DefaultOptions()
	if err := json.Unmarshal(data, &opt); err != nil {
		return perlerpix.Options{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := opt.Validate(); err != nil {
		return perlerpix.Options{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return opt, nil
}

// LoadPalette reads a bead table, a JSON array of {"hex","name","feature"}
// objects, and builds the palette. Empty or malformed tables are rejected.
func LoadPalette(path string) (*perlerpix.Palette, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	var entries []perlerpix.PaletteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse palette JSON: %w", err)
	}
	p, err := perlerpix.NewPalette(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid palette %s: %w", path, err)
	}
	return p, nil
}

// SavePalette writes the palette in the form LoadPalette reads.
func SavePalette(p *perlerpix.Palette, path string) error {
	data, err := json.MarshalIndent(p.Entries(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(path), data, 0o644)
}
