package batch

import (
	"encoding/json"
	"net/http"

	joint "Bolted/internal/calc/joint"
	"Bolted/internal/catalog"
)

type Handler struct {
	Data *catalog.Dataset
}

func (h *Handler) Joints(w http.ResponseWriter, r *http.Request) {
	var input JointBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateJoints(h.Data, input)
	if err != nil {
		joint.WriteError(w, r, err)
		return
	}
	joint.WriteJSON(w, r, res)
}
