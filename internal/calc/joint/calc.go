package joint

import (
	"Bolted/internal/catalog"
)

type MemberInput struct {
	ThicknessIn float64 `json:"thickness_in"`
	Material    string  `json:"material"`
}

type WasherInput struct {
	InnerDiameterIn float64 `json:"inner_diameter_in"`
	OuterDiameterIn float64 `json:"outer_diameter_in"`
	ThicknessIn     float64 `json:"thickness_in"`
	Material        string  `json:"material"`
}

type Input struct {
	Label          string        `json:"label"`
	Size           string        `json:"size"`
	TPI            int           `json:"tpi"`
	Material       string        `json:"material"`
	Members        []MemberInput `json:"members"`
	Washers        []WasherInput `json:"washers"`
	ClearanceIn    float64       `json:"clearance_hole_in"`
	ClearanceClass string        `json:"clearance_class"` // used when clearance_hole_in is not set
	Preload        float64       `json:"preload"`
	AxialLoad      float64       `json:"axial_load"`
	ShearLoad      float64       `json:"shear_load"`
}

type Result struct {
	Label                string   `json:"label,omitempty"`
	Summary              string   `json:"summary"`
	Bolt                 string   `json:"bolt"`
	Designation          string   `json:"designation"`
	BoltMaterial         string   `json:"bolt_material"`
	NominalDiameterIn    float64  `json:"nominal_diameter_in"`
	TensileStressAreaIn2 float64  `json:"tensile_stress_area_in2"`
	MinorDiameterAreaIn2 float64  `json:"minor_diameter_area_in2"`
	ClearanceIn          float64  `json:"clearance_hole_in"`
	MemberIDs            []int64  `json:"member_ids"`
	GripLengthIn         float64  `json:"grip_length_in"`
	StiffnessNPerM       float64  `json:"stiffness_n_per_m"`
	Preload              float64  `json:"preload"`
	AxialLoad            float64  `json:"axial_load"`
	ShearLoad            float64  `json:"shear_load"`
	Members              []string `json:"members"`
	Washers              []string `json:"washers"`
	Notes                string   `json:"notes"`
}

// Build assembles a joint from an input. Member ids are drawn from ids in
// stacking order.
func Build(ds *catalog.Dataset, ids *IDAllocator, in Input) (*Joint, error) {
	fastener, err := NewFastener(ds, in.Size, in.TPI, in.Material)
	if err != nil {
		return nil, err
	}

	washers := make([]*Washer, 0, len(in.Washers))
	for _, w := range in.Washers {
		washer, err := NewWasher(w.InnerDiameterIn, w.OuterDiameterIn, w.ThicknessIn, w.Material)
		if err != nil {
			return nil, err
		}
		washers = append(washers, washer)
	}

	members := make([]*Member, 0, len(in.Members))
	for _, m := range in.Members {
		member, err := NewMember(ds, ids, m.ThicknessIn, m.Material)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	clearance := in.ClearanceIn
	if clearance == 0 && in.ClearanceClass != "" {
		d, ok := ds.Clearance(in.Size, in.ClearanceClass)
		if !ok {
			return nil, invalid("clearance_class", "no %q clearance hole listed for bolt size %s", in.ClearanceClass, in.Size)
		}
		clearance = d
	}

	j, err := NewJoint(fastener, members, clearance, WithWashers(washers...), WithPreload(in.Preload))
	if err != nil {
		return nil, err
	}
	if !finite(in.AxialLoad) || !finite(in.ShearLoad) {
		return nil, invalid("loads", "loads must be finite, got axial %g and shear %g", in.AxialLoad, in.ShearLoad)
	}
	j.ApplyLoads(in.AxialLoad, in.ShearLoad)
	return j, nil
}

func Calculate(ds *catalog.Dataset, in Input) (Result, error) {
	j, err := Build(ds, &IDAllocator{}, in)
	if err != nil {
		return Result{}, err
	}
	return Describe(ds, in.Label, j)
}

// Describe evaluates a built joint into a Result.
func Describe(ds *catalog.Dataset, label string, j *Joint) (Result, error) {
	k, err := j.BoltStiffness(ds)
	if err != nil {
		return Result{}, err
	}

	f := j.Fastener()
	res := Result{
		Label:                label,
		Summary:              j.String(),
		Bolt:                 f.String(),
		Designation:          f.Designation(),
		BoltMaterial:         f.Material(),
		NominalDiameterIn:    f.NominalDiameter(),
		TensileStressAreaIn2: f.TensileStressArea(),
		MinorDiameterAreaIn2: f.MinorDiameterArea(),
		ClearanceIn:          j.ClearanceHoleDiameter(),
		GripLengthIn:         j.GripLength(),
		StiffnessNPerM:       k,
		Preload:              j.Preload(),
		AxialLoad:            j.AxialLoad(),
		ShearLoad:            j.ShearLoad(),
		Members:              []string{},
		Washers:              []string{},
		Notes:                "Axial bolt stiffness k = E*At/L over the grip; head, nut and member flexibility not included.",
	}
	for _, m := range j.Members() {
		res.MemberIDs = append(res.MemberIDs, m.ID())
		res.Members = append(res.Members, m.String())
	}
	for _, w := range j.Washers() {
		res.Washers = append(res.Washers, w.String())
	}
	return res, nil
}
