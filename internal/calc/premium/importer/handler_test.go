package importer

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	joint "Bolted/internal/calc/joint"
	"Bolted/internal/catalog"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

var header = []any{"label", "size", "tpi", "bolt material", "clearance", "member material", "members", "washers", "preload", "axial", "shear"}

func Test_ImportJoints(t *testing.T) {
	ds, err := catalog.Default()
	require.NoError(t, err)

	buf := workbook(t, [][]any{
		header,
		{"bracket", "#10", "24", "A-286 Alloy", "0.281", "A-286 Alloy", "0.25;0.375", "", "900", "150", "40"},
		{"flange", "1/4", "20", "Carbon Steel", "normal", "Aluminum 6061-T6", "0.5", "0.281x0.625x0.065; 0.281x0.625x0.065"},
		{"too-tight", "#10", "24", "A-286 Alloy", "0.19", "A-286 Alloy", "0.25"},
		{"broken", "#10", "abc", "A-286 Alloy", "0.281", "A-286 Alloy", "0.25"},
		{"short", "#10"},
	})

	res, err := ImportJoints(ds, buf)
	require.NoError(t, err)

	require.Equal(t, 2, res.Count)
	assert.Equal(t, "bracket", res.Results[0].Label)
	assert.Equal(t, 0.625, res.Results[0].GripLengthIn)
	assert.Equal(t, 900.0, res.Results[0].Preload)
	assert.Equal(t, 40.0, res.Results[0].ShearLoad)

	assert.Equal(t, "flange", res.Results[1].Label)
	assert.Equal(t, 0.266, res.Results[1].ClearanceIn)
	assert.InDelta(t, 0.63, res.Results[1].GripLengthIn, 1e-12)
	assert.Equal(t, []int64{3}, res.Results[1].MemberIDs)

	require.Len(t, res.Skipped, 3)
	assert.Equal(t, 4, res.Skipped[0].Row)
	assert.Contains(t, res.Skipped[0].Reason, "clearance_hole")
	assert.Equal(t, 5, res.Skipped[1].Row)
	assert.Equal(t, 6, res.Skipped[2].Row)
}

func Test_ImportJoints_RejectsNonWorkbook(t *testing.T) {
	ds, err := catalog.Default()
	require.NoError(t, err)

	_, err = ImportJoints(ds, bytes.NewBufferString("label,size\n"))
	assert.Error(t, err)

	_, err = ImportJoints(ds, workbook(t, [][]any{header}))
	assert.EqualError(t, err, "empty sheet")
}

func Test_parseJointRow(t *testing.T) {
	in, err := parseJointRow([]string{"x", "3/8", "16", "Carbon Steel", "close", "Carbon Steel", "0.5;0.5", "0.4x0.8x0.08", "", "-200"})
	require.NoError(t, err)
	assert.Equal(t, joint.Input{
		Label:          "x",
		Size:           "3/8",
		TPI:            16,
		Material:       "Carbon Steel",
		ClearanceClass: "close",
		Members: []joint.MemberInput{
			{ThicknessIn: 0.5, Material: "Carbon Steel"},
			{ThicknessIn: 0.5, Material: "Carbon Steel"},
		},
		Washers:   []joint.WasherInput{{InnerDiameterIn: 0.4, OuterDiameterIn: 0.8, ThicknessIn: 0.08}},
		AxialLoad: -200,
	}, in)

	_, err = parseJointRow([]string{"x", "3/8", "16", "Carbon Steel", "close", "Carbon Steel", "0.5", "0.4x0.8"})
	assert.ErrorContains(t, err, "washer")
}

func Test_Handler_Joints(t *testing.T) {
	ds, err := catalog.Default()
	require.NoError(t, err)
	h := &Handler{Data: ds}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "joints.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(workbook(t, [][]any{
		header,
		{"bracket", "#10", "24", "A-286 Alloy", "0.281", "A-286 Alloy", "0.25;0.375"},
	}).Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/joint/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Joints(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = httptest.NewRecorder()
	h.Joints(rec, httptest.NewRequest(http.MethodPost, "/api/user/tools/joint/import", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_ImportJoints_SkipsNonFiniteCells(t *testing.T) {
	ds, err := catalog.Default()
	require.NoError(t, err)

	res, err := ImportJoints(ds, workbook(t, [][]any{
		header,
		{"inf-member", "#10", "24", "A-286 Alloy", "0.281", "A-286 Alloy", "inf"},
		{"inf-hole", "#10", "24", "A-286 Alloy", "Inf", "A-286 Alloy", "0.25"},
		{"overflow", "#10", "24", "A-286 Alloy", "0.281", "A-286 Alloy", "1e308;1e308"},
		{"inf-load", "#10", "24", "A-286 Alloy", "0.281", "A-286 Alloy", "0.25", "", "", "-inf"},
	}))
	require.NoError(t, err)

	assert.Zero(t, res.Count)
	require.Len(t, res.Skipped, 4)
	assert.Contains(t, res.Skipped[0].Reason, "member")
	assert.Contains(t, res.Skipped[1].Reason, "clearance_hole")
	assert.Contains(t, res.Skipped[2].Reason, "overflows")
	assert.Contains(t, res.Skipped[3].Reason, "loads")
}
