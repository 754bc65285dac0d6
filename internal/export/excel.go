// Package export renders digest snapshots and ATS reports as Excel workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"jobtrack/matcher-service/internal/ats"
	"jobtrack/matcher-service/internal/match"
	"jobtrack/matcher-service/internal/model"
)

const (
	digestSheet = "Daily Digest"
	atsSheet    = "ATS Report"
)

// DigestWorkbook builds a one-sheet workbook with the digest's ranked jobs.
// The caller owns the returned file and must Close it.
func DigestWorkbook(snap model.DigestSnapshot) *excelize.File {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", digestSheet)

	f.SetColWidth(digestSheet, "A", "A", 6)
	f.SetColWidth(digestSheet, "B", "C", 30)
	f.SetColWidth(digestSheet, "D", "H", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	f.SetCellValue(digestSheet, "A1", fmt.Sprintf("Top %d Jobs — %s", match.DigestSize, snap.Date))
	f.MergeCell(digestSheet, "A1", "H1")
	f.SetCellStyle(digestSheet, "A1", "H1", headerStyle)

	f.SetCellValue(digestSheet, "A2", "Generated:")
	f.SetCellValue(digestSheet, "B2", snap.GeneratedAt.Format("2006-01-02 15:04:05"))

	headers := []string{"#", "Title", "Company", "Location", "Mode", "Experience", "Salary", "Match"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(digestSheet, cell, hd)
		f.SetCellStyle(digestSheet, cell, cell, headerStyle)
	}

	if snap.Empty() {
		f.SetCellValue(digestSheet, "A5", "No matching roles for this date.")
		f.MergeCell(digestSheet, "A5", "H5")
		return f
	}

	for i, job := range snap.Jobs {
		row := i + 5
		values := []any{
			i + 1, job.Title, job.Company, job.Location, job.Mode,
			job.Experience, job.SalaryRange,
			fmt.Sprintf("%d%% (%s)", job.MatchScore, match.Band(job.MatchScore)),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(digestSheet, cell, v)
		}
	}

	return f
}

// ATSWorkbook builds a one-sheet workbook with the résumé's ATS score, level
// and one row per improvement suggestion. The caller owns the returned file
// and must Close it.
func ATSWorkbook(doc model.Resume, report ats.Report) *excelize.File {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", atsSheet)

	f.SetColWidth(atsSheet, "A", "A", 22)
	f.SetColWidth(atsSheet, "B", "B", 60)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	f.SetCellValue(atsSheet, "A1", "ATS Readiness Report")
	f.MergeCell(atsSheet, "A1", "B1")
	f.SetCellStyle(atsSheet, "A1", "B1", headerStyle)

	rows := [][2]any{
		{"Candidate:", doc.FullName},
		{"Score:", report.Score},
		{"Level:", report.Level},
	}
	row := 3
	for _, r := range rows {
		f.SetCellValue(atsSheet, fmt.Sprintf("A%d", row), r[0])
		f.SetCellStyle(atsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(atsSheet, fmt.Sprintf("B%d", row), r[1])
		row++
	}

	row++
	f.SetCellValue(atsSheet, fmt.Sprintf("A%d", row), "Suggestions")
	f.SetCellStyle(atsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	row++

	if len(report.Suggestions) == 0 {
		f.SetCellValue(atsSheet, fmt.Sprintf("B%d", row), "Every rule satisfied.")
		return f
	}
	for i, sug := range report.Suggestions {
		f.SetCellValue(atsSheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(atsSheet, fmt.Sprintf("B%d", row), sug)
		row++
	}

	return f
}
