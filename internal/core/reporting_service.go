package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReportService produces the financial summaries over live data. The from and
// to parameters are dd/MM/yyyy strings; blank values default to a trailing
// twelve-month window ending today.
type ReportService interface {
	Summary(ctx context.Context, from, to string) (*BusinessReport, error)
	ProfitAndLoss(ctx context.Context, from, to string) (*PLView, error)
	BalanceSheet(ctx context.Context, from, to string) (*BalanceSheetView, error)
}

type reportService struct {
	invoices InvoiceService
	products ProductService
	log      zerolog.Logger
}

// NewReportService constructs a ReportService over the invoice and product
// services.
func NewReportService(invoices InvoiceService, products ProductService, log zerolog.Logger) ReportService {
	return &reportService{invoices: invoices, products: products, log: log}
}

func (s *reportService) Summary(ctx context.Context, from, to string) (*BusinessReport, error) {
	return s.build(ctx, from, to)
}

func (s *reportService) ProfitAndLoss(ctx context.Context, from, to string) (*PLView, error) {
	report, err := s.build(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ProfitAndLossView(report), nil
}

func (s *reportService) BalanceSheet(ctx context.Context, from, to string) (*BalanceSheetView, error) {
	report, err := s.build(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return BalanceSheetFromReport(report, time.Now()), nil
}

func (s *reportService) build(ctx context.Context, from, to string) (*BusinessReport, error) {
	now := time.Now()
	fromDate, toDate, err := reportRange(from, to, now)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	return BuildBusinessReport(invoices, products, fromDate, toDate, now, s.log), nil
}

func reportRange(from, to string, now time.Time) (time.Time, time.Time, error) {
	toDate := Today(now)
	if to != "" {
		parsed, err := ParseAppDate(to)
		if err != nil {
			return time.Time{}, time.Time{}, wrapValidation("to date must be dd/MM/yyyy")
		}
		toDate = parsed
	}
	fromDate := toDate.AddDate(-1, 0, 0)
	if from != "" {
		parsed, err := ParseAppDate(from)
		if err != nil {
			return time.Time{}, time.Time{}, wrapValidation("from date must be dd/MM/yyyy")
		}
		fromDate = parsed
	}
	if fromDate.After(toDate) {
		return time.Time{}, time.Time{}, wrapValidation("from date is after to date")
	}
	return fromDate, toDate, nil
}
