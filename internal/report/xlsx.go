// Package report writes lead exports for downstream use.
package report

import (
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/leadforge/leadscout/internal/model"
	"github.com/leadforge/leadscout/internal/scoring"
)

var xlsxHeader = []string{
	"ID", "Name", "Company", "Role", "Niche", "Location",
	"Email", "Phone", "Website", "Score", "Quality", "Created",
}

// WriteLeadsXLSX writes leads to an XLSX workbook, one sheet, one lead
// per row under a header row.
func WriteLeadsXLSX(path string, leads []model.Lead) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, title := range xlsxHeader {
		header.AddCell().SetString(title)
	}

	for _, lead := range leads {
		row := sheet.AddRow()
		row.AddCell().SetString(lead.ID)
		row.AddCell().SetString(lead.DisplayName())
		row.AddCell().SetString(lead.Company)
		row.AddCell().SetString(lead.Role)
		row.AddCell().SetString(lead.Niche)
		row.AddCell().SetString(lead.Location)
		row.AddCell().SetString(lead.Email)
		row.AddCell().SetString(lead.Phone)
		row.AddCell().SetString(lead.Website)
		row.AddCell().SetString(strconv.FormatFloat(lead.Score, 'f', 2, 64))
		row.AddCell().SetString(scoring.Interpret(lead.Score))
		row.AddCell().SetString(formatDate(lead.CreatedAt))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
