package export

import (
	"fmt"
	"path/filepath"

	"github.com/diillson/cdr-billing/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

const pdfTopCustomers = 25

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
)

func (r *ExportRepositoryImpl) ExportBillingReportToPDF(report *entity.BillingReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	bodyWidth := pageWidth - left - right

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("Generated by CDR Billing | %s", report.GeneratedAt.Format("2006-01-02 15:04"))
		pdf.CellFormat(bodyWidth/2, 10, tr(footer), "", 0, "L", false, 0, "")
		pdf.CellFormat(bodyWidth/2, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Billing Summary"), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	sectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+bodyWidth, pdf.GetY())
		pdf.Ln(3)
	}

	keyValues := func(rows [][2]string) {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for _, kv := range rows {
			pdf.CellFormat(70, 6, tr(kv[0]), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, tr(kv[1]), "", 1, "L", false, 0, "")
		}
		pdf.Ln(5)
	}

	grid := func(t table, limit int) {
		if len(t.header) == 0 {
			return
		}
		colWidth := bodyWidth / float64(len(t.header))
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(240, 240, 240)
		for _, h := range t.header {
			pdf.CellFormat(colWidth, 7, tr(h), "B", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
		rows := t.rows
		if limit > 0 && len(rows) > limit {
			rows = rows[:limit]
		}
		for _, row := range rows {
			for i := range t.header {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}
				pdf.CellFormat(colWidth, 6, tr(cell), "", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	if ratio := report.Ratio; ratio != nil {
		totals := ratio.Totals
		sectionTitle("Voice (CDR)")
		keyValues([][2]string{
			{"Total Calls", count(totals.TotalCalls)},
			{"Total Minutes", minutes(totals.TotalMinutes())},
			{"CDR Cost", "$" + money(totals.TotalCost)},
			{"Billable Cost", fmt.Sprintf("$%s (@ $%g/min)", money(totals.BillableCost(report.VoiceRatePerMinute)), report.VoiceRatePerMinute)},
			{"Interstate / Intrastate", fmt.Sprintf("%s / %s", percent(ratio.InterstateRatio*100), percent(ratio.IntrastateRatio*100))},
			{"Safe Harbor Delta", fmt.Sprintf("%+.2f pts vs %.1f%%", ratio.SafeHarborDelta(), entity.SafeHarborInterstatePercent)},
		})
		sectionTitle(fmt.Sprintf("Top %d Customers by Minutes", pdfTopCustomers))
		grid(combinedTable(report.Customers, report.VoiceRatePerMinute), pdfTopCustomers)
	}

	billable, excluded := 0, 0
	for _, c := range report.BillablePhones {
		billable += c.Count
	}
	for _, c := range report.ExcludedPhones {
		excluded += c.Count
	}
	sectionTitle("Phone Numbers")
	keyValues([][2]string{
		{"Billable Phones", count(billable)},
		{"Excluded (fax/hold/unassigned)", count(excluded)},
		{"Customers with Billable Phones", count(len(report.BillablePhones))},
	})

	if s := report.SMSOverall; s != nil {
		sectionTitle("SMS")
		keyValues([][2]string{
			{"Total Messages", count(s.TotalMessages)},
			{"Incoming / Outgoing", fmt.Sprintf("%d / %d", s.IncomingMessages, s.OutgoingMessages)},
			{"Billable Cost", fmt.Sprintf("$%s (@ $%g/msg)", money(s.BillableCost(report.SMSRatePerMessage)), report.SMSRatePerMessage)},
		})
	}

	if ratio := report.CombinedRatio; ratio != nil {
		totals := ratio.Totals
		sectionTitle("Combined CDR")
		keyValues([][2]string{
			{"Total Calls", count(totals.TotalCalls)},
			{"Total Minutes", minutes(totals.TotalMinutes())},
			{"Billable Cost", "$" + money(totals.BillableCost(report.VoiceRatePerMinute))},
			{"Interstate / Intrastate", fmt.Sprintf("%s / %s", percent(ratio.InterstateRatio*100), percent(ratio.IntrastateRatio*100))},
		})
	}

	if report.Pivot != nil {
		sectionTitle("Department Pivot")
		grid(pivotTable(report.Pivot), 0)
	}

	if len(report.Seats) > 0 {
		sectionTitle("Seat Counts")
		grid(seatsTable(report.Seats), 0)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}
