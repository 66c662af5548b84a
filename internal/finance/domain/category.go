package domain

import (
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/errors"
)

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // "income" or "expense"
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.NewValidationError("Category name is required")
	}
	if len(c.Name) > 50 {
		return errors.NewValidationError("Category name must be of length less than 50")
	}
	if !IsValidTransactionType(c.Type) {
		return errors.NewValidationError("Category type must be 'income' or 'expense'")
	}
	if c.Color != "" && !isHexColor(c.Color) {
		return errors.NewValidationError("Category color must be a hex value like #667eea")
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

type CategoryRepository interface {
	Save(category Category) error
	FindByUser(userID, categoryType string) ([]Category, error)
	FindByID(categoryID, userID string) (*Category, error)
	Update(category Category) error
	Delete(categoryID, userID string) error
	CountByUser(userID string) (int, error)
	HasTransactions(categoryID string) (bool, error)
}
