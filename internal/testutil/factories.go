package testutil

import (
	"database/sql"
	"testing"
	"time"

	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	account := testutil.NewAccount().Build(t, db)
//	usd := testutil.NewAccount().WithName("US Trading").WithCurrency("USD").Build(t, db)
type AccountBuilder struct {
	ID           string
	Name         string
	BaseCurrency string
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:           MakeID(),
		Name:         "Test Account",
		BaseCurrency: "CAD",
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithCurrency sets the base currency.
func (b *AccountBuilder) WithCurrency(currency string) *AccountBuilder {
	b.BaseCurrency = currency
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	account := model.Account{
		ID:           b.ID,
		Name:         b.Name,
		BaseCurrency: b.BaseCurrency,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repository.NewAccountRepository(db).CreateAccount(account); err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return account
}

// PositionBuilder provides a fluent interface for creating test positions.
type PositionBuilder struct {
	ID          string
	AccountID   string
	Symbol      string
	Category    model.Category
	Quantity    float64
	CostPerUnit float64
	Currency    string
	DateAdded   time.Time
	YieldRate   *float64
}

// NewPosition creates a PositionBuilder with equity defaults. The account
// ID must be supplied via WithAccount.
func NewPosition() *PositionBuilder {
	return &PositionBuilder{
		ID:          MakeID(),
		Symbol:      "AAPL",
		Category:    model.CategoryEquity,
		Quantity:    100,
		CostPerUnit: 150,
		Currency:    "USD",
		DateAdded:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithAccount sets the owning account.
func (b *PositionBuilder) WithAccount(accountID string) *PositionBuilder {
	b.AccountID = accountID
	return b
}

// WithSymbol sets the symbol.
func (b *PositionBuilder) WithSymbol(symbol string) *PositionBuilder {
	b.Symbol = symbol
	return b
}

// WithQuantity sets the quantity.
func (b *PositionBuilder) WithQuantity(quantity float64) *PositionBuilder {
	b.Quantity = quantity
	return b
}

// WithCost sets the cost per unit.
func (b *PositionBuilder) WithCost(cost float64) *PositionBuilder {
	b.CostPerUnit = cost
	return b
}

// WithCurrency sets the trading currency.
func (b *PositionBuilder) WithCurrency(currency string) *PositionBuilder {
	b.Currency = currency
	return b
}

// WithDateAdded sets the purchase date.
func (b *PositionBuilder) WithDateAdded(date time.Time) *PositionBuilder {
	b.DateAdded = date
	return b
}

// AsCash converts the builder to a cash position with the given principal.
func (b *PositionBuilder) AsCash(principal float64, currency string) *PositionBuilder {
	b.Category = model.CategoryCash
	b.Symbol = currency + " Cash"
	b.Quantity = principal
	b.CostPerUnit = 1.0
	b.Currency = currency
	b.YieldRate = nil
	return b
}

// AsGIC converts the builder to a GIC position with the given principal and
// annual yield.
func (b *PositionBuilder) AsGIC(principal, yieldRate float64, currency string) *PositionBuilder {
	b.Category = model.CategoryGIC
	b.Symbol = "Test GIC"
	b.Quantity = principal
	b.CostPerUnit = 1.0
	b.Currency = currency
	b.YieldRate = &yieldRate
	return b
}

// AsDividend converts the builder to a dividend position with the given amount.
func (b *PositionBuilder) AsDividend(amount float64, currency string) *PositionBuilder {
	b.Category = model.CategoryDividend
	b.Quantity = amount
	b.CostPerUnit = 1.0
	b.Currency = currency
	b.YieldRate = nil
	return b
}

// Build creates the position in the database and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	if b.AccountID == "" {
		t.Fatal("PositionBuilder requires WithAccount")
	}

	position := model.Position{
		ID:          b.ID,
		AccountID:   b.AccountID,
		Symbol:      b.Symbol,
		Category:    b.Category,
		Quantity:    b.Quantity,
		CostPerUnit: b.CostPerUnit,
		Currency:    b.Currency,
		DateAdded:   b.DateAdded,
		YieldRate:   b.YieldRate,
		CreatedAt:   time.Now().UTC(),
	}
	if err := repository.NewPositionRepository(db).CreatePosition(position); err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
	return position
}

// InsertSnapshot stores a market snapshot with just a last price.
func InsertSnapshot(t *testing.T, db *sql.DB, symbol string, lastPrice float64) model.MarketData {
	t.Helper()

	snapshot := model.MarketData{
		ID:        MakeID(),
		Symbol:    symbol,
		LastPrice: &lastPrice,
		Timestamp: time.Now().UTC(),
	}
	if err := repository.NewMarketDataRepository(db).InsertSnapshot(snapshot); err != nil {
		t.Fatalf("Failed to insert test snapshot: %v", err)
	}
	return snapshot
}

// InsertFxRate stores one FX observation.
func InsertFxRate(t *testing.T, db *sql.DB, pair string, rate float64) model.FxRate {
	t.Helper()

	observation := model.FxRate{
		ID:        MakeID(),
		Pair:      pair,
		Rate:      rate,
		Timestamp: time.Now().UTC(),
	}
	if err := repository.NewFxRateRepository(db).InsertRate(observation); err != nil {
		t.Fatalf("Failed to insert test fx rate: %v", err)
	}
	return observation
}
