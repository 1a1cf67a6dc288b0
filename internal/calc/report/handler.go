package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	joint "Bolted/internal/calc/joint"
	"Bolted/internal/catalog"
	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Input struct {
	Project string      `json:"project"`
	Author  string      `json:"author"`
	Title   string      `json:"title"`
	Notes   string      `json:"notes"`
	Joint   joint.Input `json:"joint"`
}

type Handler struct {
	Data *catalog.Dataset
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := joint.Calculate(h.Data, input.Joint)
	if err != nil {
		joint.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"joint-report.pdf\"")
	if err := Render(w, input, res, uuid.New(), time.Now()); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// Render writes a one-page PDF with the joint's inputs and derived values.
func Render(w io.Writer, input Input, res joint.Result, id uuid.UUID, now time.Time) error {
	if input.Title == "" {
		input.Title = "Bolted Joint Report"
	}
	p := message.NewPrinter(language.English)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(input.Title, false)
	pdf.SetAuthor(input.Author, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Report: %s", id))
	pdf.Ln(10)

	for _, row := range summaryRows(p, res) {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Stack")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range append(append([]string{}, res.Members...), res.Washers...) {
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, res.Notes, "", "L", false)
	if strings.TrimSpace(input.Notes) != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}
	return pdf.Output(w)
}

// summaryRows are taken from the computed result only, so the report shows
// the bolt the joint was actually built with.
func summaryRows(p *message.Printer, res joint.Result) [][2]string {
	return [][2]string{
		{"Bolt", fmt.Sprintf("%s %s", res.Designation, res.BoltMaterial)},
		{"Nominal diameter", p.Sprintf("%.4f in", res.NominalDiameterIn)},
		{"Tensile stress area", p.Sprintf("%.5f in^2", res.TensileStressAreaIn2)},
		{"Minor diameter area", p.Sprintf("%.5f in^2", res.MinorDiameterAreaIn2)},
		{"Clearance hole", p.Sprintf("%.4f in", res.ClearanceIn)},
		{"Members", fmt.Sprintf("%d", len(res.Members))},
		{"Washers", fmt.Sprintf("%d", len(res.Washers))},
		{"Grip length", p.Sprintf("%.4f in", res.GripLengthIn)},
		{"Bolt stiffness", p.Sprintf("%.0f N/m", res.StiffnessNPerM)},
		{"Preload", p.Sprintf("%.1f", res.Preload)},
		{"Axial load", p.Sprintf("%.1f", res.AxialLoad)},
		{"Shear load", p.Sprintf("%.1f", res.ShearLoad)},
	}
}
