package services

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"warsztatplus/internal/common"
	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

const defaultPaymentTermDays = 14

// InvoiceService keeps per-workshop client invoices. This is bookkeeping
// support for the workshop panel, not a tax-compliant invoicing system.
type InvoiceService struct {
	invoiceRepo repositories.InvoiceRepository
}

func NewInvoiceService(invoiceRepo repositories.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

type CreateInvoiceInput struct {
	ClientName    string               `json:"client_name" validate:"required"`
	ClientNIP     *string              `json:"client_nip"`
	ClientAddress *string              `json:"client_address"`
	DateIssued    *time.Time           `json:"date_issued"`
	DateDue       *time.Time           `json:"date_due"`
	Items         []models.InvoiceItem `json:"items" validate:"required,min=1,dive"`
}

func (s *InvoiceService) Create(ctx context.Context, workshopID uuid.UUID, input *CreateInvoiceInput) (*models.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one item", ErrValidation)
	}
	for i, item := range input.Items {
		if item.Name == "" || item.Quantity < 1 || item.UnitNet < 0 || item.VatRate < 0 {
			return nil, fmt.Errorf("%w: invalid invoice item at position %d", ErrValidation, i)
		}
	}
	if input.ClientNIP != nil && *input.ClientNIP != "" {
		if err := common.ValidateNIP(*input.ClientNIP); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	issued := time.Now()
	if input.DateIssued != nil {
		issued = *input.DateIssued
	}
	due := issued.AddDate(0, 0, defaultPaymentTermDays)
	if input.DateDue != nil {
		due = *input.DateDue
	}
	if due.Before(issued) {
		return nil, fmt.Errorf("%w: due date precedes issue date", ErrValidation)
	}

	number, err := s.nextNumber(ctx, workshopID, issued)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		WorkshopID:    workshopID,
		Number:        number,
		ClientName:    input.ClientName,
		ClientNIP:     input.ClientNIP,
		ClientAddress: input.ClientAddress,
		DateIssued:    issued,
		DateDue:       due,
		Items:         input.Items,
		Status:        "issued",
	}
	invoice.TotalNet, invoice.TotalVat, invoice.TotalGross = totals(input.Items)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice, nil
}

// NextNumber previews the number the next invoice would get, so the form
// can show it before anything is saved.
func (s *InvoiceService) NextNumber(ctx context.Context, workshopID uuid.UUID) (string, error) {
	return s.nextNumber(ctx, workshopID, time.Now())
}

// nextNumber yields FV/<year>/<month>/<n> where n is a per-workshop running
// counter. Concurrent issuance may repeat a number; acceptable for a
// bookkeeping aid with one user per workshop.
func (s *InvoiceService) nextNumber(ctx context.Context, workshopID uuid.UUID, issued time.Time) (string, error) {
	count, err := s.invoiceRepo.CountByWorkshop(ctx, workshopID)
	if err != nil {
		return "", fmt.Errorf("failed to count invoices: %w", err)
	}
	return fmt.Sprintf("FV/%d/%02d/%d", issued.Year(), int(issued.Month()), count+1), nil
}

func totals(items []models.InvoiceItem) (net, vat, gross float64) {
	for _, item := range items {
		lineNet := item.UnitNet * float64(item.Quantity)
		lineVat := lineNet * item.VatRate / 100
		net += lineNet
		vat += lineVat
	}
	net = round2(net)
	vat = round2(vat)
	return net, vat, round2(net + vat)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *InvoiceService) List(ctx context.Context, workshopID uuid.UUID) ([]*models.Invoice, error) {
	return s.invoiceRepo.ListByWorkshop(ctx, workshopID)
}

func (s *InvoiceService) Get(ctx context.Context, workshopID, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, workshopID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	return invoice, nil
}

// RenderPDF produces a printable document for one invoice.
func (s *InvoiceService) RenderPDF(ctx context.Context, workshopID, id uuid.UUID) ([]byte, error) {
	invoice, err := s.Get(ctx, workshopID, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, fmt.Sprintf("Faktura %s", invoice.Number))
	pdf.Ln(15)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Data wystawienia: %s", invoice.DateIssued.Format("02-01-2006")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Termin platnosci: %s", invoice.DateDue.Format("02-01-2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "Nabywca:")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, invoice.ClientName)
	pdf.Ln(8)
	if invoice.ClientNIP != nil && *invoice.ClientNIP != "" {
		pdf.Cell(0, 8, fmt.Sprintf("NIP: %s", *invoice.ClientNIP))
		pdf.Ln(8)
	}
	if invoice.ClientAddress != nil && *invoice.ClientAddress != "" {
		pdf.Cell(0, 8, *invoice.ClientAddress)
		pdf.Ln(8)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 8, "Pozycja", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Ilosc", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Netto", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 8, "VAT %", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Brutto", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		lineNet := item.UnitNet * float64(item.Quantity)
		lineGross := lineNet * (1 + item.VatRate/100)
		pdf.CellFormat(80, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", lineNet), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%.0f", item.VatRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", lineGross), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Razem netto: %.2f PLN", invoice.TotalNet))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Razem VAT: %.2f PLN", invoice.TotalVat))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Razem brutto: %.2f PLN", invoice.TotalGross))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}
