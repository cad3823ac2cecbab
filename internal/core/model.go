package core

import "time"

// Customer is a billing counterparty. Invoices snapshot its name and email at
// creation time, so later edits do not rewrite history.
type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerInput holds the writable customer fields.
type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Vendor is a supplier. Purchases snapshot its name at creation time.
type Vendor struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	GSTNumber string    `json:"gst_number"`
	CreatedAt time.Time `json:"created_at"`
}

// VendorInput holds the writable vendor fields.
type VendorInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
}

// BusinessProfile is the single record describing the business itself.
type BusinessProfile struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	GSTNumber   string `json:"gst_number"`
	Description string `json:"description"`
}
