package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/taskbot-go/internal/tasks"
)

func renderPDF(_ *Exporter, r Report, _ []tasks.Entry) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("taskbot", true)
	pdf.SetCreationDate(r.Generated)

	// The core fonts are cp1252; characters outside it are replaced.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 9)
	meta := "Generated " + r.Generated.Format("2006-01-02 15:04:05 UTC")
	if r.Source != "" {
		meta += " from " + r.Source
	}
	pdf.MultiCell(0, 5, tr(meta), "0", "L", false)
	pdf.Ln(4)

	section := func(heading, mark string, items []string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, fmt.Sprintf("%s (%d)", heading, len(items)))
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		if len(items) == 0 {
			pdf.MultiCell(0, 6, "none", "0", "L", false)
		}
		for _, item := range items {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("[%s] %s", mark, item)), "0", "L", false)
		}
		pdf.Ln(4)
	}
	section("Pending", " ", r.Pending)
	section("Completed", "x", r.Completed)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
