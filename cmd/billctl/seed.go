package main

import (
	"fmt"
	"time"

	"billdesk/internal/core"
	"billdesk/internal/logger"
	"billdesk/migrations"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo data for local development",
	Long: `Seed a demo vendor, customer, received purchase order, and invoice so a
fresh database has something to show. Migrations are applied first.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.WithComponent("seed")

	pool, _, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		return err
	}

	vendors := core.NewVendorService(pool)
	customers := core.NewCustomerService(pool)
	purchases := core.NewPurchaseService(pool, logger.WithComponent("purchases"))
	products := core.NewProductService(pool)
	invoices := core.NewInvoiceService(pool, logger.WithComponent("invoices"))

	vendor, err := vendors.CreateVendor(ctx, core.VendorInput{
		Name:      "Sharma Distributors",
		Email:     "orders@sharmadist.example",
		Phone:     "+91 98200 11223",
		Address:   "14 Market Road, Pune",
		GSTNumber: "27ABCDE1234F1Z5",
	})
	if err != nil {
		return fmt.Errorf("seed vendor: %w", err)
	}

	customer, err := customers.CreateCustomer(ctx, core.CustomerInput{
		Name:    "Anita General Store",
		Email:   "anita.store@example.com",
		Phone:   "+91 98111 44556",
		Address: "8 Station Street, Pune",
	})
	if err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}

	today := core.FormatAppDate(time.Now())
	purchase, err := purchases.CreatePurchase(ctx, core.PurchaseInput{
		VendorID:        vendor.ID,
		OrderDate:       today,
		GST:             decimal.NewFromInt(18),
		DeliveryCharges: decimal.NewFromInt(150),
		PaymentDone:     decimal.NewFromInt(2000),
		Items: []core.PurchaseItemInput{
			{ProductName: "Steel Water Bottle 1L", Quantity: 24, PurchasePrice: decimal.NewFromInt(120), IsNew: true},
			{ProductName: "Lunch Box Set", Quantity: 12, PurchasePrice: decimal.NewFromInt(250), IsNew: true},
		},
	})
	if err != nil {
		return fmt.Errorf("seed purchase: %w", err)
	}
	if _, err := purchases.ReceivePurchase(ctx, purchase.ID); err != nil {
		return fmt.Errorf("receive seed purchase: %w", err)
	}

	catalog, err := products.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list seeded products: %w", err)
	}
	if len(catalog) == 0 {
		return fmt.Errorf("no products after seeding")
	}
	first := catalog[0]

	dueDate := core.FormatAppDate(time.Now().AddDate(0, 0, 14))
	if _, err := invoices.CreateInvoice(ctx, core.InvoiceInput{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		IssueDate:     today,
		DueDate:       dueDate,
		GSTPercentage: decimal.NewFromInt(18),
		PaidAmount:    decimal.NewFromInt(500),
		Items: []core.InvoiceItemInput{
			{ProductID: &first.ID, ProductName: first.Name, Quantity: 3, SellingPrice: first.SellingPrice},
		},
	}); err != nil {
		return fmt.Errorf("seed invoice: %w", err)
	}

	log.Info().Msg("demo data seeded")
	return nil
}
