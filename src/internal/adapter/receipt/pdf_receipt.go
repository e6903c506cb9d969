package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

// PDFGenerator renders transfer receipts with the core Helvetica font, so no
// font files are needed at runtime.
type PDFGenerator struct {
	company  string
	fontName string
}

func NewPDFGenerator(company string) *PDFGenerator {
	return &PDFGenerator{company: company, fontName: "Helvetica"}
}

func (g *PDFGenerator) TransferReceipt(t domain.Transfer) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Transfer receipt "+t.Reference, false)
	pdf.SetAuthor(g.company, false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, tr(g.company), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 12)
	pdf.CellFormat(0, 7, "Money transfer receipt", "", 1, "C", false, 0, "")
	g.hr(pdf)

	g.sectionTitle(pdf, "Transfer")
	g.kvLine(pdf, tr, "Reference", t.Reference)
	g.kvLine(pdf, tr, "Status", string(t.Status))
	g.kvLine(pdf, tr, "Date", t.CreatedAt.UTC().Format(time.RFC1123))
	if t.CompletedAt != nil {
		g.kvLine(pdf, tr, "Completed", t.CompletedAt.UTC().Format(time.RFC1123))
	}
	g.kvLine(pdf, tr, "Teller", t.TellerID)
	g.hr(pdf)

	g.sectionTitle(pdf, "Parties")
	g.kvLine(pdf, tr, "Sender", fmt.Sprintf("%s (%s)", t.SenderName, t.SenderID))
	g.kvLine(pdf, tr, "Receiver", fmt.Sprintf("%s (%s)", t.ReceiverName, t.ReceiverID))
	g.kvLine(pdf, tr, "Destination", t.ReceiverCountry)
	g.hr(pdf)

	g.sectionTitle(pdf, "Amounts")
	g.kvLine(pdf, tr, "Amount sent", money(t.Amount.StringFixed(2), t.SourceCurrency))
	g.kvLine(pdf, tr, "Exchange rate", fmt.Sprintf("1 %s = %s %s", t.SourceCurrency, t.ExchangeRate.String(), t.DestinationCurrency))
	g.kvLine(pdf, tr, "Fee", money(t.Fee.StringFixed(2), t.SourceCurrency))
	g.kvLine(pdf, tr, "Fee paid by", string(t.FeePayer))
	g.kvLine(pdf, tr, "Total paid", money(t.TotalAmount.StringFixed(2), t.SourceCurrency))
	g.kvLine(pdf, tr, "Recipient gets", money(t.RecipientAmount.StringFixed(2), t.DestinationCurrency))
	g.kvLine(pdf, tr, "Payment method", string(t.PaymentMethod))
	g.hr(pdf)

	g.sectionTitle(pdf, "Compliance")
	g.kvLine(pdf, tr, "Source of funds", t.SourceOfFunds)
	g.kvLine(pdf, tr, "Purpose", t.PurposeOfTransfer)
	if t.Operator != "" {
		g.kvLine(pdf, tr, "Operator", t.Operator)
	}
	if t.TransferType != "" {
		g.kvLine(pdf, tr, "Transfer type", t.TransferType)
	}
	if t.Notes != "" {
		pdf.SetFont(g.fontName, "", 11)
		pdf.MultiCell(0, 6, tr(t.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", t.Reference, err)
	}
	return buf.Bytes(), nil
}

func money(amount, currency string) string {
	return amount + " " + currency
}

func (g *PDFGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *PDFGenerator) kvLine(pdf *gofpdf.Fpdf, tr func(string) string, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(val), "", 1, "L", false, 0, "")
}

func (g *PDFGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
