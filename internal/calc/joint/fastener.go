package joint

import (
	"fmt"

	"Bolted/internal/catalog"
)

// Fastener is a threaded bolt whose geometry is copied from the catalog when
// it is built. It never changes afterwards.
type Fastener struct {
	size     string
	tpi      int
	material string

	d  float64 // in
	at float64 // in^2
	am float64 // in^2
}

func NewFastener(ds *catalog.Dataset, size string, tpi int, material string) (*Fastener, error) {
	if ds == nil {
		return nil, invalid("catalog", "no catalog to look up bolt %s-%d", size, tpi)
	}
	s, ok := ds.Size(size)
	if !ok {
		return nil, invalid("size", "unknown bolt size %q", size)
	}
	th, ok := s.Threads[tpi]
	if !ok {
		return nil, invalid("tpi", "TPI %d not available for bolt size %s (offered: %v)", tpi, size, ds.Threads(size))
	}
	if _, ok := ds.Material(material); !ok {
		return nil, invalid("material", "unknown material %q", material)
	}
	return &Fastener{
		size:     size,
		tpi:      tpi,
		material: material,
		d:        s.NominalDiameter,
		at:       th.TensileStressArea,
		am:       th.MinorDiameterArea,
	}, nil
}

func (f *Fastener) Size() string               { return f.size }
func (f *Fastener) ThreadsPerInch() int        { return f.tpi }
func (f *Fastener) Material() string           { return f.material }
func (f *Fastener) NominalDiameter() float64   { return f.d }
func (f *Fastener) TensileStressArea() float64 { return f.at }
func (f *Fastener) MinorDiameterArea() float64 { return f.am }

// Designation is the size and thread in the usual "#10-24" form.
func (f *Fastener) Designation() string {
	return fmt.Sprintf("%s-%d", f.size, f.tpi)
}

func (f *Fastener) String() string {
	return fmt.Sprintf("Bolt(size=%s, nominal_diameter=%g, threads_per_inch=%d, tensile_stress_area=%g, minor_diameter_area=%g, material=%s)",
		f.size, f.d, f.tpi, f.at, f.am, f.material)
}
