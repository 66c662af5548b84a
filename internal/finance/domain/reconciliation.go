package domain

import "github.com/shopspring/decimal"

// BalanceDrift reports an account whose cached balance no longer equals
// its opening balance plus the signed sum of its transactions.
type BalanceDrift struct {
	AccountID string          `json:"account_id"`
	UserID    string          `json:"user_id"`
	Stored    decimal.Decimal `json:"stored"`
	Computed  decimal.Decimal `json:"computed"`
}
