package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Product is a stocked item. Price is the current unit price; Rating is
	// optional and only present for rated products.
	Product struct {
		ProductID     string          `json:"productId"`
		Name          string          `json:"name"`
		Price         decimal.Decimal `json:"price"`
		Rating        *float64        `json:"rating,omitempty"`
		StockQuantity int64           `json:"stockQuantity"`
		CreatedAt     time.Time       `json:"createdAt"`
	}

	// Sale is a single sale event of one product.
	Sale struct {
		SaleID      string          `json:"saleId"`
		ProductID   string          `json:"productId"`
		Timestamp   time.Time       `json:"timestamp"`
		Quantity    int64           `json:"quantity"`
		UnitPrice   decimal.Decimal `json:"unitPrice"`
		TotalAmount decimal.Decimal `json:"totalAmount"`
	}

	// Purchase is a single restocking event of one product.
	Purchase struct {
		PurchaseID string          `json:"purchaseId"`
		ProductID  string          `json:"productId"`
		Timestamp  time.Time       `json:"timestamp"`
		Quantity   int64           `json:"quantity"`
		UnitCost   decimal.Decimal `json:"unitCost"`
		TotalCost  decimal.Decimal `json:"totalCost"`
	}

	// Expense is a single categorized outgoing payment.
	Expense struct {
		ExpenseID string          `json:"expenseId"`
		Category  string          `json:"category"`
		Amount    decimal.Decimal `json:"amount"`
		Timestamp time.Time       `json:"timestamp"`
	}

	User struct {
		UserID string `json:"userId"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	}
)

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > 200 {
		return ErrNameTooLong
	}
	if p.Price.IsNegative() {
		return ErrInvalidAmount
	}
	if p.StockQuantity < 0 {
		return ErrInvalidQuantity
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return ErrInvalidRating
	}
	return nil
}

func (s Sale) Validate() error {
	if strings.TrimSpace(s.ProductID) == "" {
		return ErrMissingProductRef
	}
	if s.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	if s.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if s.UnitPrice.IsNegative() || s.TotalAmount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (p Purchase) Validate() error {
	if strings.TrimSpace(p.ProductID) == "" {
		return ErrMissingProductRef
	}
	if p.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	if p.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.UnitCost.IsNegative() || p.TotalCost.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	email := strings.TrimSpace(u.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}
