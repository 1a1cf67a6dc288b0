package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"
)

const (
	SizesFile      = "bolt_sizes.json"
	MaterialsFile  = "materials.json"
	ClearancesFile = "clearance_holes.json"
)

//go:embed data/*.json
var embedded embed.FS

// Default returns the tables shipped with the binary. They are parsed once.
var Default = sync.OnceValues(func() (*Dataset, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
})

// LoadFS reads the three tables from a directory laid out like data/.
func LoadFS(fsys fs.FS) (*Dataset, error) {
	var sizes map[string]Size
	if err := readJSON(fsys, SizesFile, &sizes); err != nil {
		return nil, err
	}
	var materials map[string]Material
	if err := readJSON(fsys, MaterialsFile, &materials); err != nil {
		return nil, err
	}
	var clearances map[string]map[string]float64
	if err := readJSON(fsys, ClearancesFile, &clearances); err != nil {
		return nil, err
	}
	return New(sizes, materials, clearances)
}

func readJSON(fsys fs.FS, name string, out any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", name, err)
	}
	return nil
}
