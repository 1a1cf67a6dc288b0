package importer

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	joint "Bolted/internal/calc/joint"
	"Bolted/internal/catalog"
	"github.com/xuri/excelize/v2"
)

type Handler struct {
	Data *catalog.Dataset
}

type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type JointImportResult struct {
	Count   int            `json:"count"`
	Results []joint.Result `json:"results"`
	Skipped []RowError     `json:"skipped"`
}

const maxUploadSize = 10 << 20

func (h *Handler) Joints(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := ImportJoints(h.Data, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	joint.WriteJSON(w, r, res)
}

// ImportJoints reads the first sheet of a workbook, one joint per row after
// the header row. Rows that cannot be parsed or built are reported, not fatal.
func ImportJoints(ds *catalog.Dataset, r io.Reader) (JointImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return JointImportResult{}, fmt.Errorf("invalid file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return JointImportResult{}, fmt.Errorf("empty sheet")
	}

	ids := &joint.IDAllocator{}
	out := JointImportResult{Results: []joint.Result{}, Skipped: []RowError{}}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		input, err := parseJointRow(row)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		j, err := joint.Build(ds, ids, input)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		res, err := joint.Describe(ds, input.Label, j)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}

// Columns: label, size, tpi, bolt material, clearance (inches or class name),
// member material, member thicknesses ("0.25;0.375"), washers
// ("0.203x0.438x0.049;..."), preload, axial load, shear load.
func parseJointRow(row []string) (joint.Input, error) {
	if len(row) < 7 {
		return joint.Input{}, fmt.Errorf("bad row: expected at least 7 columns, got %d", len(row))
	}
	tpi, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return joint.Input{}, fmt.Errorf("tpi: %w", err)
	}
	in := joint.Input{
		Label:    strings.TrimSpace(row[0]),
		Size:     strings.TrimSpace(row[1]),
		TPI:      tpi,
		Material: strings.TrimSpace(row[3]),
	}

	clearance := strings.TrimSpace(row[4])
	if d, err := toFloat(clearance); err == nil {
		in.ClearanceIn = d
	} else {
		in.ClearanceClass = clearance
	}

	memberMaterial := strings.TrimSpace(row[5])
	for _, part := range splitList(row[6]) {
		t, err := toFloat(part)
		if err != nil {
			return joint.Input{}, fmt.Errorf("member thickness %q: %w", part, err)
		}
		in.Members = append(in.Members, joint.MemberInput{ThicknessIn: t, Material: memberMaterial})
	}

	if len(row) > 7 {
		for _, part := range splitList(row[7]) {
			dims := strings.Split(part, "x")
			if len(dims) != 3 {
				return joint.Input{}, fmt.Errorf("washer %q: want inner x outer x thickness", part)
			}
			var v [3]float64
			for k, s := range dims {
				if v[k], err = toFloat(s); err != nil {
					return joint.Input{}, fmt.Errorf("washer %q: %w", part, err)
				}
			}
			in.Washers = append(in.Washers, joint.WasherInput{InnerDiameterIn: v[0], OuterDiameterIn: v[1], ThicknessIn: v[2]})
		}
	}

	loads := []*float64{&in.Preload, &in.AxialLoad, &in.ShearLoad}
	for k, dst := range loads {
		col := 8 + k
		if len(row) <= col || strings.TrimSpace(row[col]) == "" {
			continue
		}
		if *dst, err = toFloat(row[col]); err != nil {
			return joint.Input{}, fmt.Errorf("column %d: %w", col+1, err)
		}
	}
	return in, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
