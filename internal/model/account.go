package model

import "time"

// Account represents an investment account from the database.
// Every position belongs to exactly one account, and the account's base
// currency is the middle hop of the two-hop FX chain
// (position currency -> account currency -> reporting currency).
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"baseCurrency"`
	CreatedAt    time.Time `json:"createdAt"`
}
