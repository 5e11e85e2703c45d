package backoffice

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
)

// Invoice statuses used by the backend.
const (
	InvoicePaid    = "payee"
	InvoicePending = "en_attente"
)

// Invoice is a facture record.
type Invoice struct {
	ID          int64           `json:"id"`
	Reservation Ref             `json:"reservation"`
	Amount      decimal.Decimal `json:"montant"`
	Status      string          `json:"statut"`
	IssuedAt    catalog.Date    `json:"date_emission"`
}

// Paid reports whether the invoice has been settled.
func (i Invoice) Paid() bool {
	return i.Status == InvoicePaid
}

// ListInvoices returns all invoices.
func (c *Client) ListInvoices(ctx context.Context) ([]Invoice, error) {
	return list[Invoice](ctx, c, PathInvoices)
}
