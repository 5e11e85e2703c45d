package application

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"go.uber.org/zap"
)

// MonthlyRevenueDTO is the revenue of one calendar month.
type MonthlyRevenueDTO struct {
	Month    string          `json:"month"`
	Invoiced decimal.Decimal `json:"invoiced"`
	Paid     decimal.Decimal `json:"paid"`
}

// RevenueDTO summarizes invoice revenue for the admin dashboard.
type RevenueDTO struct {
	InvoiceCount         int                 `json:"invoice_count"`
	PaidCount            int                 `json:"paid_count"`
	Invoiced             decimal.Decimal     `json:"invoiced"`
	Paid                 decimal.Decimal     `json:"paid"`
	Outstanding          decimal.Decimal     `json:"outstanding"`
	InvoicedFormatted    string              `json:"invoiced_formatted"`
	PaidFormatted        string              `json:"paid_formatted"`
	OutstandingFormatted string              `json:"outstanding_formatted"`
	ByMonth              []MonthlyRevenueDTO `json:"by_month"`
}

// DashboardService aggregates revenue over backend invoices.
type DashboardService struct {
	invoices InvoiceSource
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(invoices InvoiceSource, logger *zap.Logger) *DashboardService {
	return &DashboardService{invoices: invoices, logger: logger}
}

// Revenue returns invoiced, paid and outstanding totals, overall and per month.
func (s *DashboardService) Revenue(ctx context.Context) (*RevenueDTO, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}

	out := &RevenueDTO{Invoiced: decimal.Zero, Paid: decimal.Zero}
	months := make(map[string]*MonthlyRevenueDTO)
	for _, inv := range invoices {
		out.InvoiceCount++
		out.Invoiced = out.Invoiced.Add(inv.Amount)

		key := "inconnu"
		if inv.IssuedAt.IsSet() {
			key = inv.IssuedAt.Format("2006-01")
		}
		m, ok := months[key]
		if !ok {
			m = &MonthlyRevenueDTO{Month: key, Invoiced: decimal.Zero, Paid: decimal.Zero}
			months[key] = m
		}
		m.Invoiced = m.Invoiced.Add(inv.Amount)

		if inv.Paid() {
			out.PaidCount++
			out.Paid = out.Paid.Add(inv.Amount)
			m.Paid = m.Paid.Add(inv.Amount)
		}
	}
	out.Outstanding = out.Invoiced.Sub(out.Paid)
	out.InvoicedFormatted = draft.FormatCurrency(out.Invoiced)
	out.PaidFormatted = draft.FormatCurrency(out.Paid)
	out.OutstandingFormatted = draft.FormatCurrency(out.Outstanding)

	out.ByMonth = make([]MonthlyRevenueDTO, 0, len(months))
	for _, m := range months {
		out.ByMonth = append(out.ByMonth, *m)
	}
	sort.Slice(out.ByMonth, func(i, j int) bool { return out.ByMonth[i].Month < out.ByMonth[j].Month })

	s.logger.Debug("revenue computed", zap.Int("invoices", out.InvoiceCount))
	return out, nil
}
