package catalog_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Bolted/internal/catalog"
)

func Test_Default_LoadsShippedTables(t *testing.T) {
	ds, err := catalog.Default()
	require.NoError(t, err)

	size, ok := ds.Size("#10")
	require.True(t, ok)
	assert.Equal(t, 0.19, size.NominalDiameter)

	th, ok := ds.Thread("#10", 24)
	require.True(t, ok)
	assert.Equal(t, 0.0175, th.TensileStressArea)
	assert.Equal(t, 0.0145, th.MinorDiameterArea)

	m, ok := ds.Material("A-286 Alloy")
	require.True(t, ok)
	assert.Equal(t, 201e9, m.ElasticModulus)

	d, ok := ds.Clearance("#10", "normal")
	require.True(t, ok)
	assert.Equal(t, 0.201, d)

	again, err := catalog.Default()
	require.NoError(t, err)
	assert.Same(t, ds, again)
}

func Test_Dataset_Listings(t *testing.T) {
	ds, err := catalog.Default()
	require.NoError(t, err)

	sizes := ds.Sizes()
	require.NotEmpty(t, sizes)
	assert.Equal(t, "#0", sizes[0])
	assert.Equal(t, "1/2", sizes[len(sizes)-1])

	assert.Equal(t, []int{24, 32}, ds.Threads("#10"))
	assert.Nil(t, ds.Threads("M8"))
	assert.Contains(t, ds.Materials(), "A-286 Alloy")
	assert.Equal(t, []string{"close", "loose", "normal"}, ds.ClearanceClasses("1/4"))
}

func Test_Dataset_IsNotMutatedThroughAccessors(t *testing.T) {
	sizes := map[string]catalog.Size{
		"1/4": {NominalDiameter: 0.25, Threads: map[int]catalog.Thread{20: {TensileStressArea: 0.0318, MinorDiameterArea: 0.0269}}},
	}
	ds, err := catalog.New(sizes, map[string]catalog.Material{"Steel": {ElasticModulus: 200e9}}, nil)
	require.NoError(t, err)

	// changes to the input maps after construction are not visible
	sizes["1/4"].Threads[28] = catalog.Thread{TensileStressArea: 1, MinorDiameterArea: 1}
	_, ok := ds.Thread("1/4", 28)
	assert.False(t, ok)

	got, ok := ds.Size("1/4")
	require.True(t, ok)
	delete(got.Threads, 20)
	_, ok = ds.Thread("1/4", 20)
	assert.True(t, ok)
}

func Test_New_RejectsBadTables(t *testing.T) {
	steel := map[string]catalog.Material{"Steel": {ElasticModulus: 200e9}}
	thread := map[int]catalog.Thread{20: {TensileStressArea: 0.0318, MinorDiameterArea: 0.0269}}

	tests := []struct {
		name       string
		sizes      map[string]catalog.Size
		materials  map[string]catalog.Material
		clearances map[string]map[string]float64
	}{
		{
			name:      "zero_diameter",
			sizes:     map[string]catalog.Size{"1/4": {NominalDiameter: 0, Threads: thread}},
			materials: steel,
		},
		{
			name:      "no_threads",
			sizes:     map[string]catalog.Size{"1/4": {NominalDiameter: 0.25}},
			materials: steel,
		},
		{
			name:      "zero_area",
			sizes:     map[string]catalog.Size{"1/4": {NominalDiameter: 0.25, Threads: map[int]catalog.Thread{20: {}}}},
			materials: steel,
		},
		{
			name:      "zero_modulus",
			sizes:     map[string]catalog.Size{"1/4": {NominalDiameter: 0.25, Threads: thread}},
			materials: map[string]catalog.Material{"Steel": {}},
		},
		{
			name:       "negative_clearance",
			sizes:      map[string]catalog.Size{"1/4": {NominalDiameter: 0.25, Threads: thread}},
			materials:  steel,
			clearances: map[string]map[string]float64{"1/4": {"normal": -1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New(tt.sizes, tt.materials, tt.clearances)
			assert.Error(t, err)
		})
	}
}

func Test_LoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		catalog.SizesFile:      {Data: []byte(`{"1/4": {"d": 0.25, "tpi": {"20": {"A_t": 0.0318, "A_m": 0.0269}}}}`)},
		catalog.MaterialsFile:  {Data: []byte(`{"Steel": {"E": 200e9, "Sy": 250e6, "nu": 0.29}}`)},
		catalog.ClearancesFile: {Data: []byte(`{"1/4": {"normal": 0.266}}`)},
	}
	ds, err := catalog.LoadFS(fsys)
	require.NoError(t, err)

	th, ok := ds.Thread("1/4", 20)
	require.True(t, ok)
	assert.Equal(t, 0.0318, th.TensileStressArea)

	m, ok := ds.Material("Steel")
	require.True(t, ok)
	assert.Equal(t, 0.29, m.PoissonRatio)

	t.Run("missing_file", func(t *testing.T) {
		_, err := catalog.LoadFS(fstest.MapFS{})
		assert.ErrorContains(t, err, catalog.SizesFile)
	})

	t.Run("invalid_json", func(t *testing.T) {
		broken := fstest.MapFS{
			catalog.SizesFile:      fsys[catalog.SizesFile],
			catalog.MaterialsFile:  {Data: []byte(`{`)},
			catalog.ClearancesFile: fsys[catalog.ClearancesFile],
		}
		_, err := catalog.LoadFS(broken)
		assert.ErrorContains(t, err, "invalid JSON in "+catalog.MaterialsFile)
	})
}
