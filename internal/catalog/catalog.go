// Package catalog holds the read-only reference tables a bolted joint is built
// from: bolt geometry by size and thread, material properties and standard
// clearance-hole diameters.
package catalog

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// Thread is the geometry of one thread series of a bolt size, in square inches.
type Thread struct {
	TensileStressArea float64 `json:"A_t"`
	MinorDiameterArea float64 `json:"A_m"`
}

// Size is a bolt size designation: nominal diameter in inches and the thread
// series offered for it, keyed by threads per inch.
type Size struct {
	NominalDiameter float64        `json:"d"`
	Threads         map[int]Thread `json:"tpi"`
}

// Material properties in SI units (Pa).
type Material struct {
	ElasticModulus float64 `json:"E"`
	YieldStrength  float64 `json:"Sy"`
	PoissonRatio   float64 `json:"nu"`
}

// Dataset is immutable once built. Every accessor returns copies.
type Dataset struct {
	sizes      map[string]Size
	materials  map[string]Material
	clearances map[string]map[string]float64
}

func New(sizes map[string]Size, materials map[string]Material, clearances map[string]map[string]float64) (*Dataset, error) {
	ds := &Dataset{
		sizes:      make(map[string]Size, len(sizes)),
		materials:  make(map[string]Material, len(materials)),
		clearances: make(map[string]map[string]float64, len(clearances)),
	}
	for name, s := range sizes {
		if name == "" {
			return nil, fmt.Errorf("size with empty designation")
		}
		if s.NominalDiameter <= 0 {
			return nil, fmt.Errorf("size %s: nominal diameter must be positive", name)
		}
		if len(s.Threads) == 0 {
			return nil, fmt.Errorf("size %s: no thread series", name)
		}
		for tpi, th := range s.Threads {
			if tpi <= 0 {
				return nil, fmt.Errorf("size %s: invalid threads per inch %d", name, tpi)
			}
			if th.TensileStressArea <= 0 || th.MinorDiameterArea <= 0 {
				return nil, fmt.Errorf("size %s-%d: areas must be positive", name, tpi)
			}
		}
		ds.sizes[name] = Size{NominalDiameter: s.NominalDiameter, Threads: maps.Clone(s.Threads)}
	}
	for name, m := range materials {
		if name == "" {
			return nil, fmt.Errorf("material with empty name")
		}
		if m.ElasticModulus <= 0 {
			return nil, fmt.Errorf("material %s: elastic modulus must be positive", name)
		}
		ds.materials[name] = m
	}
	for size, classes := range clearances {
		for class, d := range classes {
			if d <= 0 {
				return nil, fmt.Errorf("clearance %s/%s: diameter must be positive", size, class)
			}
		}
		ds.clearances[size] = maps.Clone(classes)
	}
	return ds, nil
}

func (ds *Dataset) Size(name string) (Size, bool) {
	s, ok := ds.sizes[name]
	if !ok {
		return Size{}, false
	}
	return Size{NominalDiameter: s.NominalDiameter, Threads: maps.Clone(s.Threads)}, true
}

func (ds *Dataset) Thread(size string, tpi int) (Thread, bool) {
	s, ok := ds.sizes[size]
	if !ok {
		return Thread{}, false
	}
	th, ok := s.Threads[tpi]
	return th, ok
}

func (ds *Dataset) Material(name string) (Material, bool) {
	m, ok := ds.materials[name]
	return m, ok
}

// Clearance returns the hole diameter of a clearance class ("close", "normal",
// "loose") for a bolt size.
func (ds *Dataset) Clearance(size, class string) (float64, bool) {
	classes, ok := ds.clearances[size]
	if !ok {
		return 0, false
	}
	d, ok := classes[class]
	return d, ok
}

// Sizes lists size designations from the smallest nominal diameter up.
func (ds *Dataset) Sizes() []string {
	names := slices.Collect(maps.Keys(ds.sizes))
	sort.Slice(names, func(i, j int) bool {
		di, dj := ds.sizes[names[i]].NominalDiameter, ds.sizes[names[j]].NominalDiameter
		if di == dj {
			return names[i] < names[j]
		}
		return di < dj
	})
	return names
}

func (ds *Dataset) Threads(size string) []int {
	s, ok := ds.sizes[size]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(s.Threads))
}

func (ds *Dataset) Materials() []string {
	return slices.Sorted(maps.Keys(ds.materials))
}

func (ds *Dataset) ClearanceClasses(size string) []string {
	classes, ok := ds.clearances[size]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(classes))
}
