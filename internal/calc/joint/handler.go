package joint

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Bolted/internal/catalog"
)

type Handler struct {
	Data *catalog.Dataset
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(h.Data, input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, r, res)
}

// WriteJSON encodes v before anything is written, so a value that cannot be
// encoded turns into a 500 instead of an empty 200.
func WriteJSON(w http.ResponseWriter, r *http.Request, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response", "path", r.URL.Path, "err", err)
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(append(b, '\n'))
}

type SizeOption struct {
	Size              string             `json:"size"`
	NominalDiameterIn float64            `json:"nominal_diameter_in"`
	TPI               []int              `json:"tpi"`
	ClearanceIn       map[string]float64 `json:"clearance_in"`
}

type MaterialOption struct {
	Name             string  `json:"name"`
	ElasticModulusPa float64 `json:"elastic_modulus_pa"`
	YieldStrengthPa  float64 `json:"yield_strength_pa"`
	PoissonRatio     float64 `json:"poisson_ratio"`
}

type Options struct {
	Sizes     []SizeOption     `json:"sizes"`
	Materials []MaterialOption `json:"materials"`
}

// ListOptions is what a form needs to offer valid choices.
func ListOptions(ds *catalog.Dataset) Options {
	var out Options
	for _, name := range ds.Sizes() {
		s, _ := ds.Size(name)
		opt := SizeOption{
			Size:              name,
			NominalDiameterIn: s.NominalDiameter,
			TPI:               ds.Threads(name),
			ClearanceIn:       map[string]float64{},
		}
		for _, class := range ds.ClearanceClasses(name) {
			opt.ClearanceIn[class], _ = ds.Clearance(name, class)
		}
		out.Sizes = append(out.Sizes, opt)
	}
	for _, name := range ds.Materials() {
		m, _ := ds.Material(name)
		out.Materials = append(out.Materials, MaterialOption{
			Name:             name,
			ElasticModulusPa: m.ElasticModulus,
			YieldStrengthPa:  m.YieldStrength,
			PoissonRatio:     m.PoissonRatio,
		})
	}
	return out
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, ListOptions(h.Data))
}

// WriteError answers bad input with 400 and the reason, anything else with 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		slog.Info("joint rejected", "path", r.URL.Path, "reason", verr.Error())
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}
	var derr *DomainComputationError
	if errors.As(err, &derr) {
		slog.Error("joint calculation failed", "path", r.URL.Path, "err", derr)
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	slog.Error("unexpected error", "path", r.URL.Path, "err", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}
