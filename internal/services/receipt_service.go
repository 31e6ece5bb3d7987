package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
	"freightapi/internal/utils"
)

// ReceiptService renders a payment receipt PDF for a paid booking. Pure
// read; no state is mutated.
type ReceiptService struct {
	Bookings  BookingStore
	RequestID string
	// Loader overrides booking lookup in tests.
	Loader func(int64) (models.Booking, error)
}

func (s ReceiptService) Generate(rc domain.RequestContext, bookingID int64) ([]byte, string, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	if !rc.IsAdmin() && b.UserID != rc.UserID {
		return nil, "", domain.ForbiddenError{Msg: "not your booking"}
	}
	if b.Payment.Status != models.PaymentStatusPaid {
		return nil, "", domain.ConflictError{Resource: "receipt", Msg: "payment not completed"}
	}

	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(b)
}

func (s ReceiptService) load(bookingID int64) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.Bookings.GetByID(bookingID)
}

func buildReceiptPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	paidAt := "-"
	if b.Payment.PaidAt != nil {
		paidAt = utils.FormatDateTime(*b.Payment.PaidAt)
	}

	pricePerTon := int64(0)
	if b.Quantity > 0 {
		pricePerTon = b.Total / int64(b.Quantity)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No     : RCPT-%d", b.ID),
		fmt.Sprintf("Booking No     : #%d", b.ID),
		fmt.Sprintf("Route          : %s", safe(b.Route, "-")),
		fmt.Sprintf("Booking Date   : %s", safe(b.BookingDate, "-")),
		fmt.Sprintf("Quantity       : %d tons", b.Quantity),
		fmt.Sprintf("Price per Ton  : %s", utils.FormatINR(pricePerTon)),
		fmt.Sprintf("Order ID       : %s", safe(b.Payment.OrderID, "-")),
		fmt.Sprintf("Payment ID     : %s", safe(b.Payment.PaymentID, "-")),
		fmt.Sprintf("Paid At        : %s", paidAt),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Total Paid: "+utils.FormatINR(b.Total))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This receipt confirms payment for the freight booking above. Keep it for your records.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
