package batch

import (
	"fmt"

	joint "Bolted/internal/calc/joint"
	"Bolted/internal/catalog"
)

type JointBatchInput struct {
	Items []joint.Input `json:"items"`
}

type JointBatchResult struct {
	Results []joint.Result `json:"results"`
}

// CalculateJoints evaluates every item or none. Member ids are unique across
// the whole batch.
func CalculateJoints(ds *catalog.Dataset, in JointBatchInput) (JointBatchResult, error) {
	if len(in.Items) == 0 {
		return JointBatchResult{}, &joint.ValidationError{Field: "items", Msg: "no items"}
	}
	ids := &joint.IDAllocator{}
	out := JointBatchResult{Results: make([]joint.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		j, err := joint.Build(ds, ids, item)
		if err != nil {
			return JointBatchResult{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		res, err := joint.Describe(ds, item.Label, j)
		if err != nil {
			return JointBatchResult{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
