package application

import (
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/google/uuid"
)

const defaultCategoryColor = "#667eea"

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(category *domain.Category) error {
	category.ID = uuid.NewString()
	if category.Color == "" {
		category.Color = defaultCategoryColor
	}
	if err := category.Validate(); err != nil {
		return err
	}
	return s.repo.Save(*category)
}

func (s *CategoryService) GetCategory(categoryID, userID string) (*domain.Category, error) {
	return s.repo.FindByID(categoryID, userID)
}

func (s *CategoryService) GetUserCategories(userID, categoryType string) ([]domain.Category, error) {
	categories, err := s.repo.FindByUser(userID, categoryType)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// UpdateCategory renames or recolors a category. A type change is refused
// while transactions reference the category, otherwise every referencing
// transaction would stop matching its category type.
func (s *CategoryService) UpdateCategory(category *domain.Category) error {
	existing, err := s.repo.FindByID(category.ID, category.UserID)
	if err != nil {
		return err
	}
	if category.Type != existing.Type {
		referenced, err := s.repo.HasTransactions(category.ID)
		if err != nil {
			return err
		}
		if referenced {
			return financeErrors.ErrCategoryTypeLocked
		}
	}
	existing.Name = category.Name
	existing.Type = category.Type
	if category.Color != "" {
		existing.Color = category.Color
	}
	if err := existing.Validate(); err != nil {
		return err
	}
	*category = *existing
	return s.repo.Update(*existing)
}

func (s *CategoryService) DeleteCategory(categoryID, userID string) error {
	return s.repo.Delete(categoryID, userID)
}

var defaultCategories = []domain.Category{
	{Name: "Salary", Type: domain.TransactionTypeIncome, Color: "#10B981"},
	{Name: "Investments", Type: domain.TransactionTypeIncome, Color: "#84CC16"},
	{Name: "Other Income", Type: domain.TransactionTypeIncome, Color: "#22C55E"},
	{Name: "Food", Type: domain.TransactionTypeExpense, Color: "#EF4444"},
	{Name: "Transport", Type: domain.TransactionTypeExpense, Color: "#F97316"},
	{Name: "Housing", Type: domain.TransactionTypeExpense, Color: "#3B82F6"},
	{Name: "Health", Type: domain.TransactionTypeExpense, Color: "#EC4899"},
	{Name: "Leisure", Type: domain.TransactionTypeExpense, Color: "#A855F7"},
	{Name: "Education", Type: domain.TransactionTypeExpense, Color: "#6366F1"},
	{Name: "Shopping", Type: domain.TransactionTypeExpense, Color: "#F59E0B"},
	{Name: "Other Expenses", Type: domain.TransactionTypeExpense, Color: "#6B7280"},
}

// CreateDefaultCategories seeds the starter category set for a user who
// has none yet. Calling it again is a no-op.
func (s *CategoryService) CreateDefaultCategories(userID string) ([]domain.Category, error) {
	count, err := s.repo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return []domain.Category{}, nil
	}

	created := make([]domain.Category, 0, len(defaultCategories))
	for _, template := range defaultCategories {
		category := template
		category.ID = uuid.NewString()
		category.UserID = userID
		if err := s.repo.Save(category); err != nil {
			return nil, err
		}
		created = append(created, category)
	}
	return created, nil
}
