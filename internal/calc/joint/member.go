package joint

import (
	"fmt"
	"sync/atomic"

	"Bolted/internal/catalog"
)

// IDAllocator hands out member identifiers starting at 1. The zero value is
// ready to use and safe for concurrent use.
type IDAllocator struct {
	last atomic.Int64
}

func (a *IDAllocator) Next() int64 {
	return a.last.Add(1)
}

// Member is one clamped plate of the stack.
type Member struct {
	id        int64
	thickness float64 // in
	material  string
}

// NewMember validates the plate and only then draws an id from ids, so a
// rejected member never consumes one.
func NewMember(ds *catalog.Dataset, ids *IDAllocator, thickness float64, material string) (*Member, error) {
	if ds == nil || ids == nil {
		return nil, invalid("member", "a catalog and an id allocator are required")
	}
	if !positive(thickness) {
		return nil, invalid("member", "thickness must be positive, got %g", thickness)
	}
	if _, ok := ds.Material(material); !ok {
		return nil, invalid("member", "unknown material %q", material)
	}
	return &Member{id: ids.Next(), thickness: thickness, material: material}, nil
}

func (m *Member) ID() int64          { return m.id }
func (m *Member) Thickness() float64 { return m.thickness }
func (m *Member) Material() string   { return m.material }

func (m *Member) String() string {
	return fmt.Sprintf("Member(id=%d, thickness=%g, material=%s)", m.id, m.thickness, m.material)
}
