package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Receipt carries the fields printed on a kiosk payment receipt.
type Receipt struct {
	ReceiptNumber  string
	Department     string
	ConsumerNumber string
	Kind           string
	Amount         float64
	Rebate         float64
	NetAmount      float64
	EstimatedUnits float64
	IssuedAt       time.Time
}

// ReceiptRenderer renders payment receipts as A5 PDF documents.
type ReceiptRenderer struct{}

// NewReceiptRenderer constructs a receipt renderer.
func NewReceiptRenderer() *ReceiptRenderer {
	return &ReceiptRenderer{}
}

// Render produces the PDF bytes for a single receipt.
func (r *ReceiptRenderer) Render(receipt Receipt) ([]byte, error) {
	if receipt.ReceiptNumber == "" {
		return nil, fmt.Errorf("receipt number required")
	}
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 14, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 9, "MUNICIPAL SELF-SERVICE KIOSK", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, receipt.Department, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, "PAYMENT RECEIPT", "B", 1, "C", false, 0, "")
	pdf.Ln(3)

	rows := [][2]string{
		{"Receipt No", receipt.ReceiptNumber},
		{"Consumer No", receipt.ConsumerNumber},
		{"Payment Type", receipt.Kind},
		{"Amount Paid", fmt.Sprintf("Rs %.2f", receipt.Amount)},
	}
	if receipt.Rebate > 0 {
		rows = append(rows,
			[2]string{"Rebate", fmt.Sprintf("Rs %.2f", receipt.Rebate)},
			[2]string{"Net Amount", fmt.Sprintf("Rs %.2f", receipt.NetAmount)},
			[2]string{"Estimated Units", fmt.Sprintf("%.2f", receipt.EstimatedUnits)},
		)
	}
	rows = append(rows, [2]string{"Issued At", receipt.IssuedAt.Format("02 Jan 2006 15:04")})

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 7, row[0], "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, row[1], "", 1, "", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, "This is a computer generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
