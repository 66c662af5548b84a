package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(category domain.Category) error {
	_, err := r.db.Exec(
		`INSERT INTO categories (id, user_id, name, type, color) VALUES ($1, $2, $3, $4, $5)`,
		category.ID, category.UserID, category.Name, category.Type, category.Color,
	)
	if isPgError(err, pgUniqueViolation) {
		return financeErrors.NewValidationError("A category with this name already exists")
	}
	return err
}

func (r *CategoryRepository) FindByUser(userID, categoryType string) ([]domain.Category, error) {
	query := `SELECT id, user_id, name, type, color, created_at, updated_at FROM categories WHERE user_id = $1`
	args := []interface{}{userID}

	if categoryType != "" {
		query += " AND type = $2"
		args = append(args, categoryType)
	}
	query += " ORDER BY type, name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID, &category.UserID, &category.Name, &category.Type, &category.Color,
			&category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(categoryID, userID string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRow(
		`SELECT id, user_id, name, type, color, created_at, updated_at
        FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	).Scan(
		&category.ID, &category.UserID, &category.Name, &category.Type, &category.Color,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(category domain.Category) error {
	result, err := r.db.Exec(
		`UPDATE categories SET name = $1, type = $2, color = $3, updated_at = NOW()
        WHERE id = $4 AND user_id = $5`,
		category.Name, category.Type, category.Color, category.ID, category.UserID,
	)
	if isPgError(err, pgUniqueViolation) {
		return financeErrors.NewValidationError("A category with this name already exists")
	}
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return financeErrors.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(categoryID, userID string) error {
	result, err := r.db.Exec(
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	)
	if isPgError(err, pgForeignKeyViolation) {
		return financeErrors.ErrCategoryHasTransactions
	}
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return financeErrors.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) CountByUser(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM categories WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *CategoryRepository) HasTransactions(categoryID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM transactions WHERE category_id = $1)"
	err := r.db.QueryRow(query, categoryID).Scan(&exists)
	return exists, err
}
