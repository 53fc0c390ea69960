/*
Package report renders calculator results as downloadable documents.

DOCUMENTS:
  - Payslip (PDF): one payroll.Result, monthly figures
  - EOS statement (PDF): one eos.Result with the tranche breakdown
  - Working-days workbook (XLSX): per-month working days for a year

Amounts are printed with two decimals, rounded half away from zero, in SAR.
*/
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/warp/labor-engine/eos"
	"github.com/warp/labor-engine/payroll"
)

const currency = "SAR"

// Header identifies whose document it is. Empty fields are omitted.
type Header struct {
	Company  string
	Employee string
	Issued   time.Time
}

func amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + " " + currency
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

type line struct {
	label string
	value string
	bold  bool
}

// document is a gofpdf document using the core fonts. Core fonts are
// cp1252, so every string goes through tr before it is written; raw UTF-8
// bytes would print as mojibake.
type document struct {
	*gofpdf.Fpdf
	tr func(string) string
}

func newDocument(title string, h Header) *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	d := &document{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	d.text(40, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if h.Company != "" {
		d.text(0, 7, "Company: "+h.Company)
		pdf.Ln(6)
	}
	if h.Employee != "" {
		d.text(0, 7, "Employee: "+h.Employee)
		pdf.Ln(6)
	}
	issued := h.Issued
	if issued.IsZero() {
		issued = time.Now()
	}
	d.text(0, 7, "Issued: "+issued.Format("2006-01-02"))
	pdf.Ln(10)
	return d
}

func (d *document) text(w, h float64, s string) {
	d.Cell(w, h, d.tr(s))
}

func writeLines(d *document, heading string, lines []line) {
	d.SetFont("Helvetica", "B", 12)
	d.text(0, 8, heading)
	d.Ln(8)
	for _, l := range lines {
		style := ""
		if l.bold {
			style = "B"
		}
		d.SetFont("Helvetica", style, 11)
		d.CellFormat(100, 7, d.tr(l.label), "B", 0, "L", false, 0, "")
		d.CellFormat(60, 7, d.tr(l.value), "B", 1, "R", false, 0, "")
	}
	d.Ln(4)
}

// =============================================================================
// PAYSLIP
// =============================================================================

// WritePayslip renders the monthly figures of res as a PDF.
func WritePayslip(w io.Writer, h Header, res payroll.Result) error {
	pdf := newDocument("Payslip", h)
	m := res.Monthly

	writeLines(pdf, "Earnings", []line{
		{label: "Basic salary", value: amount(res.Basic)},
		{label: "Housing allowance", value: amount(res.Housing)},
		{label: "Transport allowance", value: amount(res.Transport)},
		{label: "Other allowances", value: amount(res.OtherAllowance)},
		{label: "Gross", value: amount(m.Gross), bold: true},
	})

	writeLines(pdf, "Deductions", []line{
		{label: "GOSI employee (" + percent(res.Rates.EmployeePct) + ")", value: amount(m.InsuranceEmployee)},
		{label: "Other deductions", value: amount(m.OtherDeduction)},
		{label: "Flat deductions", value: amount(m.FlatDeduction)},
		{label: "Net pay", value: amount(m.Net), bold: true},
	})

	if m.Overtime > 0 {
		writeLines(pdf, "Overtime", []line{
			{label: fmt.Sprintf("Overtime rate (hourly %s)", amount(res.HourlyRate)), value: amount(res.OvertimeRate)},
			{label: "Overtime pay", value: amount(m.Overtime)},
			{label: "Net pay with overtime", value: amount(m.NetWithOvertime), bold: true},
		})
	}

	writeLines(pdf, "Employer", []line{
		{label: "Contributory wage", value: amount(res.ContributoryWage)},
		{label: "GOSI employer (" + percent(res.Rates.EmployerPct) + ")", value: amount(m.InsuranceEmployer)},
		{label: "Total employer cost", value: amount(m.EmployerCost), bold: true},
	})

	return pdf.Output(w)
}

// =============================================================================
// END OF SERVICE STATEMENT
// =============================================================================

// WriteEOSStatement renders an end-of-service settlement as a PDF.
func WriteEOSStatement(w io.Writer, h Header, in eos.Input, res eos.Result) error {
	pdf := newDocument("End of Service Statement", h)

	svc := res.Service
	writeLines(pdf, "Service", []line{
		{label: "Start date", value: in.Start.Format("2006-01-02")},
		{label: "End date", value: in.End.Format("2006-01-02")},
		{label: "Service period", value: fmt.Sprintf("%dy %dm %dd", svc.Years, svc.Months, svc.Days)},
		{label: "Tenure (years)", value: decimal.NewFromFloat(res.TenureYears).StringFixed(4)},
		{label: "Separation cause", value: string(in.Cause)},
		{label: "Article", value: fmt.Sprintf("Article %d", res.Article)},
	})

	b := res.Breakdown
	writeLines(pdf, "Award", []line{
		{label: "EOS base wage", value: amount(res.EOSBase)},
		{label: fmt.Sprintf("First 5 years: %s months", decimal.NewFromFloat(b.First5YearsMonths).StringFixed(4)), value: amount(b.First5YearsAmount)},
		{label: fmt.Sprintf("After 5 years: %s months", decimal.NewFromFloat(b.After5YearsMonths).StringFixed(4)), value: amount(b.After5YearsAmount)},
		{label: "Factor", value: decimal.NewFromFloat(res.Factor).StringFixed(4)},
		{label: "End-of-service award", value: amount(res.FinalEOS), bold: true},
	})

	writeLines(pdf, "Settlement", []line{
		{label: fmt.Sprintf("Leave encashment (%s days)", decimal.NewFromFloat(in.LeaveDays).String()), value: amount(res.LeaveEncash)},
		{label: "Other entitlements", value: amount(res.Extras)},
		{label: "Deductions", value: "-" + amount(res.Deductions)},
		{label: "Total payable", value: amount(res.Total), bold: true},
	})

	return pdf.Output(w)
}
