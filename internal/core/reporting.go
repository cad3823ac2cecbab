package core

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Cost heuristic for manually entered invoice items that do not reference a
// catalog product: assume 70% of the selling price. This is a documented
// approximation, not a precise costing model.
var assumedCostRatio = decimal.NewFromFloat(0.7)

// Placeholder operating expense applied by the P&L view: 15% of revenue.
var estimatedOpexRatio = decimal.NewFromFloat(0.15)

// ProductSales ranks units sold for one product name within the report range.
type ProductSales struct {
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// MonthlyProfit is one point of the month-by-month profit series.
type MonthlyProfit struct {
	Label  string          `json:"label"` // e.g. "Jan 2026"
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Profit decimal.Decimal `json:"profit"`
}

// BusinessReport is the period-scoped financial summary computed over the
// invoice and product collections.
//
// TotalRevenue, TotalCogs, TotalProfit, MonthlyProfits, and TopProducts are
// scoped to invoices whose issue date falls in [From, To]. OutstandingRevenue
// and InventoryValue are point-in-time figures over the full collections.
type BusinessReport struct {
	FromDate           string          `json:"from_date"`
	ToDate             string          `json:"to_date"`
	InvoiceCount       int             `json:"invoice_count"`
	SkippedInvoices    int             `json:"skipped_invoices"` // unparseable issue dates, excluded
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalCogs          decimal.Decimal `json:"total_cogs"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	MonthlyProfits     []MonthlyProfit `json:"monthly_profits"`
	TopProducts        []ProductSales  `json:"top_products"`
	OutstandingRevenue decimal.Decimal `json:"outstanding_revenue"`
	InventoryValue     decimal.Decimal `json:"inventory_value"`
}

// PLView is the simplified profit-and-loss derived from a BusinessReport.
type PLView struct {
	FromDate         string          `json:"from_date"`
	ToDate           string          `json:"to_date"`
	Revenue          decimal.Decimal `json:"revenue"`
	CostOfGoodsSold  decimal.Decimal `json:"cost_of_goods_sold"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	OperatingExpense decimal.Decimal `json:"operating_expense"` // 15%-of-revenue placeholder
	NetProfit        decimal.Decimal `json:"net_profit"`
}

// BalanceSheetView treats receivables plus inventory at cost as total assets,
// with no tracked liabilities.
type BalanceSheetView struct {
	AsOfDate         string          `json:"as_of_date"`
	Receivables      decimal.Decimal `json:"receivables"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetPosition      decimal.Decimal `json:"net_position"`
}

// BuildBusinessReport aggregates the given invoice and product sets over the
// inclusive day-granularity range [from, to].
//
// Invoices with unparseable issue dates are logged and excluded rather than
// failing the whole report. Line-item cost resolves the referenced product's
// purchase price; manual items fall back to the 70% assumed-cost heuristic.
// The top-products ranking uses the same date-filtered set as the revenue
// figures.
func BuildBusinessReport(invoices []Invoice, products []Product, from, to time.Time, now time.Time, log zerolog.Logger) *BusinessReport {
	report := &BusinessReport{
		FromDate: FormatAppDate(from),
		ToDate:   FormatAppDate(to),
	}

	priceByID := make(map[int]decimal.Decimal, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.PurchasePrice
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	profitByMonth := make(map[monthKey]decimal.Decimal)
	unitsByProduct := make(map[string]*ProductSales)

	for _, inv := range invoices {
		issued, err := ParseAppDate(inv.IssueDate)
		if err != nil {
			report.SkippedInvoices++
			log.Warn().Int("invoice_id", inv.ID).Str("issue_date", inv.IssueDate).
				Msg("skipping invoice with unparseable issue date")
			continue
		}
		if issued.Before(from) || issued.After(to) {
			continue
		}

		report.InvoiceCount++
		report.TotalRevenue = report.TotalRevenue.Add(inv.Amount)

		var invoiceProfit decimal.Decimal
		for _, item := range inv.Items {
			lineRevenue := LineTotal(item.Quantity, item.SellingPrice)
			cost := lineCost(item, priceByID)
			report.TotalCogs = report.TotalCogs.Add(cost)
			margin := lineRevenue.Sub(cost)
			report.TotalProfit = report.TotalProfit.Add(margin)
			invoiceProfit = invoiceProfit.Add(margin)

			sales, ok := unitsByProduct[item.ProductName]
			if !ok {
				sales = &ProductSales{ProductName: item.ProductName}
				unitsByProduct[item.ProductName] = sales
			}
			sales.UnitsSold += item.Quantity
			sales.Revenue = sales.Revenue.Add(lineRevenue)
		}

		key := monthKey{year: issued.Year(), month: issued.Month()}
		profitByMonth[key] = profitByMonth[key].Add(invoiceProfit)
	}

	// Chronological monthly series.
	keys := make([]monthKey, 0, len(profitByMonth))
	for k := range profitByMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	for _, k := range keys {
		label := time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		report.MonthlyProfits = append(report.MonthlyProfits, MonthlyProfit{
			Label: label, Year: k.year, Month: k.month, Profit: profitByMonth[k],
		})
	}

	// Top 5 products by units sold; ties broken by name for a stable order.
	ranked := make([]ProductSales, 0, len(unitsByProduct))
	for _, s := range unitsByProduct {
		ranked = append(ranked, *s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].UnitsSold != ranked[j].UnitsSold {
			return ranked[i].UnitsSold > ranked[j].UnitsSold
		}
		return ranked[i].ProductName < ranked[j].ProductName
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	report.TopProducts = ranked

	// Outstanding receivables over ALL invoices, not date-filtered.
	for _, inv := range invoices {
		if inv.DueAmount.GreaterThan(decimal.Zero) {
			report.OutstandingRevenue = report.OutstandingRevenue.Add(inv.DueAmount)
		}
	}

	// Inventory valuation at cost, point-in-time over all batches.
	for _, p := range products {
		report.InventoryValue = report.InventoryValue.Add(
			p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	return report
}

// ProfitAndLossView derives the simplified P&L from a report.
func ProfitAndLossView(report *BusinessReport) *PLView {
	opex := report.TotalRevenue.Mul(estimatedOpexRatio)
	gross := report.TotalRevenue.Sub(report.TotalCogs)
	return &PLView{
		FromDate:         report.FromDate,
		ToDate:           report.ToDate,
		Revenue:          report.TotalRevenue,
		CostOfGoodsSold:  report.TotalCogs,
		GrossProfit:      gross,
		OperatingExpense: opex,
		NetProfit:        gross.Sub(opex),
	}
}

// BalanceSheetFromReport derives the simplified balance sheet from a report.
func BalanceSheetFromReport(report *BusinessReport, now time.Time) *BalanceSheetView {
	assets := report.OutstandingRevenue.Add(report.InventoryValue)
	return &BalanceSheetView{
		AsOfDate:         FormatAppDate(now),
		Receivables:      report.OutstandingRevenue,
		InventoryValue:   report.InventoryValue,
		TotalAssets:      assets,
		TotalLiabilities: decimal.Zero,
		NetPosition:      assets,
	}
}

func lineCost(item InvoiceItem, priceByID map[int]decimal.Decimal) decimal.Decimal {
	if item.ProductID != nil {
		if price, ok := priceByID[*item.ProductID]; ok {
			return LineTotal(item.Quantity, price)
		}
	}
	return LineTotal(item.Quantity, item.SellingPrice).Mul(assumedCostRatio)
}
