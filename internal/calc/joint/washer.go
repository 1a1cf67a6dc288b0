package joint

import "fmt"

// DefaultWasherMaterial is used when a washer is built without a material.
const DefaultWasherMaterial = "Carbon Steel"

// Washer is a flat spacer under the head or nut. It adds to the grip length
// and is otherwise treated as rigid, so its material is informational only.
type Washer struct {
	di, do, t float64 // in
	material  string
}

func NewWasher(inner, outer, thickness float64, material string) (*Washer, error) {
	if !finite(inner) || !finite(outer) || inner < 0 {
		return nil, invalid("washer", "diameters must be finite and not negative, got %g and %g", inner, outer)
	}
	if !(inner < outer) {
		return nil, invalid("washer", "inner diameter %g must be smaller than outer diameter %g", inner, outer)
	}
	if !positive(thickness) {
		return nil, invalid("washer", "thickness must be positive, got %g", thickness)
	}
	if material == "" {
		material = DefaultWasherMaterial
	}
	return &Washer{di: inner, do: outer, t: thickness, material: material}, nil
}

func (w *Washer) InnerDiameter() float64 { return w.di }
func (w *Washer) OuterDiameter() float64 { return w.do }
func (w *Washer) Thickness() float64     { return w.t }
func (w *Washer) Material() string       { return w.material }

func (w *Washer) String() string {
	return fmt.Sprintf("Washer(inner_diameter=%g, outer_diameter=%g, thickness=%g)", w.di, w.do, w.t)
}
