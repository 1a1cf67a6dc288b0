package report_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	joint "Bolted/internal/calc/joint"
	"Bolted/internal/calc/report"
	"Bolted/internal/catalog"
)

func jointInput() joint.Input {
	return joint.Input{
		Size:     "#10",
		TPI:      24,
		Material: "A-286 Alloy",
		Members: []joint.MemberInput{
			{ThicknessIn: 0.25, Material: "A-286 Alloy"},
			{ThicknessIn: 0.375, Material: "A-286 Alloy"},
		},
		ClearanceIn: 0.281,
	}
}

func Test_Render(t *testing.T) {
	ds, err := catalog.Default()
	require.NoError(t, err)
	in := report.Input{Project: "Rig", Author: "QA", Joint: jointInput()}
	res, err := joint.Calculate(ds, in.Joint)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, in, res, uuid.New(), time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func Test_Handler_Generate(t *testing.T) {
	ds, err := catalog.Default()
	require.NoError(t, err)
	h := &report.Handler{Data: ds}

	rec := httptest.NewRecorder()
	body := `{"project":"Rig","joint":{"size":"#10","tpi":24,"material":"A-286 Alloy","clearance_hole_in":0.281,"members":[{"thickness_in":0.25,"material":"A-286 Alloy"}]}}`
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/user/tools/joint/report", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/user/tools/joint/report", strings.NewReader(`{"joint":{"size":"#10","tpi":24,"material":"A-286 Alloy","clearance_hole_in":0.281}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
