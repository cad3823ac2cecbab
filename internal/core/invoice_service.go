package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewInvoiceNumber generates a human-readable invoice number.
func NewInvoiceNumber() string {
	return "INV-" + shortCode()
}

// InvoiceService provides sales invoice lifecycle operations. Returned
// invoices carry their effective status: an unpaid invoice past its due date
// reads as Overdue without that value ever being stored.
type InvoiceService interface {
	// CreateInvoice validates the input, computes every derived amount, and
	// persists the invoice together with a stock decrement for each catalog
	// line. A blank invoice number gets a generated one. An input whose
	// computed total is negative is rejected.
	CreateInvoice(ctx context.Context, input InvoiceInput) (*Invoice, error)

	// GetInvoice returns an invoice by ID, including all items.
	GetInvoice(ctx context.Context, id int) (*Invoice, error)

	// ListInvoices returns all invoices with their items, newest first.
	ListInvoices(ctx context.Context) ([]Invoice, error)

	// UpdateInvoice replaces the adjustable fields and items, recomputing
	// every derived amount. Stock is not re-adjusted on edit.
	UpdateInvoice(ctx context.Context, id int, input InvoiceInput) (*Invoice, error)

	// DeleteInvoice removes an invoice and its items.
	DeleteInvoice(ctx context.Context, id int) error
}

type invoiceService struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool, log zerolog.Logger) InvoiceService {
	return &invoiceService{pool: pool, log: log}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, input InvoiceInput) (*Invoice, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	computed := ComputeInvoiceTotals(input.Items, input.GSTPercentage,
		input.DeliveryCharges, input.Discount, input.PaidAmount)
	if computed.Amount.IsNegative() {
		return nil, wrapValidation("discount exceeds the invoice total")
	}

	number := input.InvoiceNumber
	if number == "" {
		number = NewInvoiceNumber()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var invoiceID int
	if err := tx.QueryRow(ctx, `
		INSERT INTO invoices (invoice_number, customer_id, customer_name, customer_email,
		                      issue_date, due_date, subtotal, gst_percentage, gst_amount,
		                      delivery_charges, discount, amount, paid_amount, due_amount,
		                      status, order_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`,
		number, input.CustomerID, input.CustomerName, input.CustomerEmail,
		input.IssueDate, input.DueDate, computed.Subtotal, input.GSTPercentage,
		computed.GSTAmount, input.DeliveryCharges, input.Discount, computed.Amount,
		input.PaidAmount, computed.DueAmount, computed.Status, input.OrderNote,
	).Scan(&invoiceID); err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}

	for i, item := range input.Items {
		if item.ProductName == "" {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, product_id, product_name, quantity, selling_price, total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			invoiceID, item.ProductID, item.ProductName, item.Quantity,
			item.SellingPrice, LineTotal(item.Quantity, item.SellingPrice),
		); err != nil {
			return nil, fmt.Errorf("insert invoice item %d: %w", i+1, err)
		}
		if item.ProductID != nil {
			if err := s.drainStock(ctx, tx, *item.ProductID, item.Quantity); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit invoice: %w", err)
	}
	return s.GetInvoice(ctx, invoiceID)
}

// drainStock decrements sold quantity from the referenced batch first, then
// from sibling batches of the same SKU in batch order. Stock never goes
// negative; a shortfall is logged and the sale proceeds.
func (s *invoiceService) drainStock(ctx context.Context, tx pgx.Tx, productID, quantity int) error {
	var sku string
	var stock int
	err := tx.QueryRow(ctx,
		"SELECT sku, stock FROM products WHERE id = $1 FOR UPDATE", productID,
	).Scan(&sku, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.log.Warn().Int("product_id", productID).
				Msg("invoice line references a missing product; stock not adjusted")
			return nil
		}
		return fmt.Errorf("lock product %d: %w", productID, err)
	}

	remaining := quantity
	take := min(stock, remaining)
	if take > 0 {
		if _, err := tx.Exec(ctx,
			"UPDATE products SET stock = stock - $1 WHERE id = $2", take, productID,
		); err != nil {
			return fmt.Errorf("decrement stock for product %d: %w", productID, err)
		}
		remaining -= take
	}
	if remaining == 0 {
		return nil
	}

	rows, err := tx.Query(ctx, `
		SELECT id, stock FROM products
		WHERE sku = $1 AND id <> $2 AND stock > 0
		ORDER BY id
		FOR UPDATE`,
		sku, productID,
	)
	if err != nil {
		return fmt.Errorf("lock sibling batches for sku %s: %w", sku, err)
	}
	type batch struct{ id, stock int }
	var siblings []batch
	for rows.Next() {
		var b batch
		if err := rows.Scan(&b.id, &b.stock); err != nil {
			rows.Close()
			return fmt.Errorf("scan sibling batch: %w", err)
		}
		siblings = append(siblings, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read sibling batches: %w", err)
	}

	for _, b := range siblings {
		if remaining == 0 {
			break
		}
		take := min(b.stock, remaining)
		if _, err := tx.Exec(ctx,
			"UPDATE products SET stock = stock - $1 WHERE id = $2", take, b.id,
		); err != nil {
			return fmt.Errorf("decrement stock for batch %d: %w", b.id, err)
		}
		remaining -= take
	}

	if remaining > 0 {
		s.log.Warn().Int("product_id", productID).Str("sku", sku).
			Int("short_by", remaining).
			Msg("insufficient stock across batches; sale recorded anyway")
	}
	return nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	inv := &Invoice{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, invoice_number, customer_id, customer_name, customer_email,
		       issue_date, due_date, subtotal, gst_percentage, gst_amount,
		       delivery_charges, discount, amount, paid_amount, due_amount,
		       status, order_note, created_at
		FROM invoices
		WHERE id = $1`,
		id,
	).Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.CustomerName,
		&inv.CustomerEmail, &inv.IssueDate, &inv.DueDate, &inv.Subtotal,
		&inv.GSTPercentage, &inv.GSTAmount, &inv.DeliveryCharges, &inv.Discount,
		&inv.Amount, &inv.PaidAmount, &inv.DueAmount, &inv.Status, &inv.OrderNote,
		&inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}

	items, err := s.fetchItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	inv.Status = inv.EffectiveStatus(time.Now())
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]Invoice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_number, customer_id, customer_name, customer_email,
		       issue_date, due_date, subtotal, gst_percentage, gst_amount,
		       delivery_charges, discount, amount, paid_amount, due_amount,
		       status, order_note, created_at
		FROM invoices
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var invoices []Invoice
	index := map[int]int{}
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.CustomerName,
			&inv.CustomerEmail, &inv.IssueDate, &inv.DueDate, &inv.Subtotal,
			&inv.GSTPercentage, &inv.GSTAmount, &inv.DeliveryCharges, &inv.Discount,
			&inv.Amount, &inv.PaidAmount, &inv.DueAmount, &inv.Status, &inv.OrderNote,
			&inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.Status = inv.EffectiveStatus(now)
		index[inv.ID] = len(invoices)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := s.pool.Query(ctx, `
		SELECT id, invoice_id, product_id, product_name, quantity, selling_price, total
		FROM invoice_items
		ORDER BY invoice_id, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item InvoiceItem
		if err := itemRows.Scan(&item.ID, &item.InvoiceID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.SellingPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		if i, ok := index[item.InvoiceID]; ok {
			invoices[i].Items = append(invoices[i].Items, item)
		}
	}
	return invoices, itemRows.Err()
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id int, input InvoiceInput) (*Invoice, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	computed := ComputeInvoiceTotals(input.Items, input.GSTPercentage,
		input.DeliveryCharges, input.Discount, input.PaidAmount)
	if computed.Amount.IsNegative() {
		return nil, wrapValidation("discount exceeds the invoice total")
	}

	number := input.InvoiceNumber
	if number == "" {
		number = NewInvoiceNumber()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET invoice_number = $1, customer_id = $2, customer_name = $3, customer_email = $4,
		    issue_date = $5, due_date = $6, subtotal = $7, gst_percentage = $8,
		    gst_amount = $9, delivery_charges = $10, discount = $11, amount = $12,
		    paid_amount = $13, due_amount = $14, status = $15, order_note = $16
		WHERE id = $17`,
		number, input.CustomerID, input.CustomerName, input.CustomerEmail,
		input.IssueDate, input.DueDate, computed.Subtotal, input.GSTPercentage,
		computed.GSTAmount, input.DeliveryCharges, input.Discount, computed.Amount,
		input.PaidAmount, computed.DueAmount, computed.Status, input.OrderNote, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update invoice %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM invoice_items WHERE invoice_id = $1", id); err != nil {
		return nil, fmt.Errorf("clear invoice items for %d: %w", id, err)
	}
	for i, item := range input.Items {
		if item.ProductName == "" {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, product_id, product_name, quantity, selling_price, total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, item.ProductID, item.ProductName, item.Quantity,
			item.SellingPrice, LineTotal(item.Quantity, item.SellingPrice),
		); err != nil {
			return nil, fmt.Errorf("insert invoice item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit invoice update: %w", err)
	}
	return s.GetInvoice(ctx, id)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *invoiceService) fetchItems(ctx context.Context, invoiceID int) ([]InvoiceItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_id, product_id, product_name, quantity, selling_price, total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY id`,
		invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch items for invoice %d: %w", invoiceID, err)
	}
	defer rows.Close()

	var items []InvoiceItem
	for rows.Next() {
		var item InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.SellingPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
