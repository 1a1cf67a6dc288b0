package repo

import (
	"fmt"

	"Bolted/internal/catalog"
)

type sizeRow struct {
	Designation     string
	NominalDiameter float64
}

type threadRow struct {
	Designation       string
	TPI               int
	TensileStressArea float64
	MinorDiameterArea float64
}

type materialRow struct {
	Name           string
	ElasticModulus float64
	YieldStrength  float64
	PoissonRatio   float64
}

type clearanceRow struct {
	Designation  string
	Class        string
	HoleDiameter float64
}

// catalogTables holds the rows of the four catalog tables as scanned.
type catalogTables struct {
	Sizes      []sizeRow
	Threads    []threadRow
	Materials  []materialRow
	Clearances []clearanceRow
}

// dataset assembles the rows into a validated dataset. Threads and clearance
// holes must belong to a listed bolt size.
func (t catalogTables) dataset() (*catalog.Dataset, error) {
	sizes := make(map[string]catalog.Size, len(t.Sizes))
	for _, row := range t.Sizes {
		if _, dup := sizes[row.Designation]; dup {
			return nil, fmt.Errorf("bolt size %s is listed twice", row.Designation)
		}
		sizes[row.Designation] = catalog.Size{NominalDiameter: row.NominalDiameter, Threads: map[int]catalog.Thread{}}
	}
	for _, row := range t.Threads {
		s, ok := sizes[row.Designation]
		if !ok {
			return nil, fmt.Errorf("thread %s-%d has no bolt size", row.Designation, row.TPI)
		}
		s.Threads[row.TPI] = catalog.Thread{TensileStressArea: row.TensileStressArea, MinorDiameterArea: row.MinorDiameterArea}
	}

	materials := make(map[string]catalog.Material, len(t.Materials))
	for _, row := range t.Materials {
		materials[row.Name] = catalog.Material{ElasticModulus: row.ElasticModulus, YieldStrength: row.YieldStrength, PoissonRatio: row.PoissonRatio}
	}

	clearances := map[string]map[string]float64{}
	for _, row := range t.Clearances {
		if _, ok := sizes[row.Designation]; !ok {
			return nil, fmt.Errorf("clearance hole %s/%s has no bolt size", row.Designation, row.Class)
		}
		if clearances[row.Designation] == nil {
			clearances[row.Designation] = map[string]float64{}
		}
		clearances[row.Designation][row.Class] = row.HoleDiameter
	}

	return catalog.New(sizes, materials, clearances)
}

// tablesOf flattens a dataset into table rows, sizes by diameter and
// everything else in listing order.
func tablesOf(ds *catalog.Dataset) catalogTables {
	var t catalogTables
	for _, name := range ds.Sizes() {
		s, _ := ds.Size(name)
		t.Sizes = append(t.Sizes, sizeRow{Designation: name, NominalDiameter: s.NominalDiameter})
		for _, tpi := range ds.Threads(name) {
			th, _ := ds.Thread(name, tpi)
			t.Threads = append(t.Threads, threadRow{
				Designation:       name,
				TPI:               tpi,
				TensileStressArea: th.TensileStressArea,
				MinorDiameterArea: th.MinorDiameterArea,
			})
		}
		for _, class := range ds.ClearanceClasses(name) {
			d, _ := ds.Clearance(name, class)
			t.Clearances = append(t.Clearances, clearanceRow{Designation: name, Class: class, HoleDiameter: d})
		}
	}
	for _, name := range ds.Materials() {
		m, _ := ds.Material(name)
		t.Materials = append(t.Materials, materialRow{
			Name:           name,
			ElasticModulus: m.ElasticModulus,
			YieldStrength:  m.YieldStrength,
			PoissonRatio:   m.PoissonRatio,
		})
	}
	return t
}
