// Package joint models a bolted joint: one fastener clamping a stack of
// members and washers, with the grip length and bolt stiffness derived from it.
// Geometry is in inches, material properties in SI as given by the catalog.
package joint

import (
	"fmt"
	"math"
	"slices"

	"Bolted/internal/catalog"
)

// Conversion factors applied to the inch geometry before it meets an SI
// elastic modulus.
const (
	InchToMeter             = 0.0254    // 1 in = 2.54e-2 m
	SquareInchToSquareMeter = 6.4516e-4 // 1 in^2 = 0.0254^2 m^2
)

// Joint holds references to already validated parts. The stacking order of
// members and washers is the order they were given in.
type Joint struct {
	fastener  *Fastener
	members   []*Member
	washers   []*Washer
	clearance float64 // in

	preload float64
	axial   float64
	shear   float64
}

type Option func(*Joint)

func WithWashers(washers ...*Washer) Option {
	return func(j *Joint) {
		j.washers = append(j.washers, washers...)
	}
}

func WithPreload(preload float64) Option {
	return func(j *Joint) {
		j.preload = preload
	}
}

func NewJoint(fastener *Fastener, members []*Member, clearanceHole float64, opts ...Option) (*Joint, error) {
	if fastener == nil {
		return nil, invalid("fastener", "a bolt is required")
	}
	if len(members) == 0 {
		return nil, invalid("members", "at least one member is required")
	}
	for i, m := range members {
		if m == nil {
			return nil, invalid("members", "member %d is missing", i)
		}
	}
	if !finite(clearanceHole) || !(clearanceHole > fastener.NominalDiameter()) {
		return nil, invalid("clearance_hole", "clearance hole %g must be larger than the nominal diameter %g of %s",
			clearanceHole, fastener.NominalDiameter(), fastener.Designation())
	}

	j := &Joint{
		fastener:  fastener,
		members:   slices.Clone(members),
		clearance: clearanceHole,
	}
	for _, opt := range opts {
		opt(j)
	}
	for i, w := range j.washers {
		if w == nil {
			return nil, invalid("washers", "washer %d is missing", i)
		}
	}
	if !finite(j.preload) || j.preload < 0 {
		return nil, invalid("preload", "preload must be finite and not negative, got %g", j.preload)
	}
	if grip := j.GripLength(); math.IsInf(grip, 0) {
		return nil, invalid("members", "total stack thickness overflows")
	}
	return j, nil
}

func (j *Joint) Fastener() *Fastener            { return j.fastener }
func (j *Joint) Members() []*Member             { return slices.Clone(j.members) }
func (j *Joint) Washers() []*Washer             { return slices.Clone(j.washers) }
func (j *Joint) ClearanceHoleDiameter() float64 { return j.clearance }
func (j *Joint) Preload() float64               { return j.preload }
func (j *Joint) AxialLoad() float64             { return j.axial }
func (j *Joint) ShearLoad() float64             { return j.shear }

// GripLength is the clamped thickness along the bolt axis, in inches.
func (j *Joint) GripLength() float64 {
	var total float64
	for _, m := range j.members {
		total += m.Thickness()
	}
	for _, w := range j.washers {
		total += w.Thickness()
	}
	return total
}

// ApplyPreload replaces the preload. A negative value is rejected and leaves
// the previous preload in place.
func (j *Joint) ApplyPreload(preload float64) error {
	if !finite(preload) || preload < 0 {
		return invalid("preload", "preload must be finite and not negative, got %g", preload)
	}
	j.preload = preload
	return nil
}

// ApplyLoads sets the external service loads. Negative axial means compression.
func (j *Joint) ApplyLoads(axial, shear float64) {
	j.axial = axial
	j.shear = shear
}

// RemoveLoads resets the external loads, normally with RemoveLoads(0, 0).
func (j *Joint) RemoveLoads(axial, shear float64) {
	j.axial = axial
	j.shear = shear
}

// BoltStiffness is the axial stiffness k = E*A_t/L of the bolt over the grip,
// in N/m. E is the modulus of the fastener material in ds. Head, nut and
// member flexibility are not included.
func (j *Joint) BoltStiffness(ds *catalog.Dataset) (float64, error) {
	if ds == nil {
		return 0, &DomainComputationError{Op: "bolt stiffness", Msg: "no catalog"}
	}
	mat, ok := ds.Material(j.fastener.Material())
	if !ok {
		return 0, &DomainComputationError{Op: "bolt stiffness", Msg: fmt.Sprintf("material %q is not in the catalog", j.fastener.Material())}
	}
	grip := j.GripLength()
	if !positive(grip) {
		return 0, &DomainComputationError{Op: "bolt stiffness", Msg: fmt.Sprintf("grip length %g is not a positive finite length", grip)}
	}

	area := j.fastener.TensileStressArea() * SquareInchToSquareMeter
	length := grip * InchToMeter
	k := mat.ElasticModulus * area / length
	if !positive(k) {
		return 0, &DomainComputationError{Op: "bolt stiffness", Msg: fmt.Sprintf("stiffness %g is out of range", k)}
	}
	return k, nil
}

func (j *Joint) String() string {
	return fmt.Sprintf("BoltedJoint(bolt=%s, members=%d, washers=%d, clearance_hole=%g, preload=%g)",
		j.fastener.Designation(), len(j.members), len(j.washers), j.clearance, j.preload)
}
