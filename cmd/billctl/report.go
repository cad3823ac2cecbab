package main

import (
	"fmt"

	"billdesk/internal/core"
	"billdesk/internal/logger"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the business report for a date range",
	Long: `Print the financial summary (revenue, COGS, profit, top products,
receivables, inventory value) over an inclusive date range. Dates are
dd/MM/yyyy; with no flags the trailing twelve months are used.`,
	Example: `  # Trailing twelve months
  billctl report

  # Explicit range
  billctl report --from 01/04/2025 --to 31/03/2026`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("from", "", "Range start (dd/MM/yyyy)")
	reportCmd.Flags().String("to", "", "Range end (dd/MM/yyyy)")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	pool, _, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	products := core.NewProductService(pool)
	invoices := core.NewInvoiceService(pool, logger.WithComponent("invoices"))
	reports := core.NewReportService(invoices, products, logger.WithComponent("reports"))

	report, err := reports.Summary(ctx, from, to)
	if err != nil {
		return err
	}

	fmt.Printf("Report %s - %s\n", report.FromDate, report.ToDate)
	fmt.Printf("  Invoices:    %d (%d skipped)\n", report.InvoiceCount, report.SkippedInvoices)
	fmt.Printf("  Revenue:     %s\n", report.TotalRevenue.StringFixed(2))
	fmt.Printf("  COGS:        %s\n", report.TotalCogs.StringFixed(2))
	fmt.Printf("  Profit:      %s\n", report.TotalProfit.StringFixed(2))
	fmt.Printf("  Outstanding: %s\n", report.OutstandingRevenue.StringFixed(2))
	fmt.Printf("  Inventory:   %s\n", report.InventoryValue.StringFixed(2))

	if len(report.MonthlyProfits) > 0 {
		fmt.Println("  Monthly profit:")
		for _, m := range report.MonthlyProfits {
			fmt.Printf("    %-8s %s\n", m.Label, m.Profit.StringFixed(2))
		}
	}
	if len(report.TopProducts) > 0 {
		fmt.Println("  Top products:")
		for _, p := range report.TopProducts {
			fmt.Printf("    %-30s %4d units  %s\n", p.ProductName, p.UnitsSold, p.Revenue.StringFixed(2))
		}
	}
	return nil
}
