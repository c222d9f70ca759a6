package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookRepository struct {
	*base.Repository
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую книгу
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (title, author, published_year)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, book.Title, book.Author, book.PublishedYear).Scan(&book.ID)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

// GetByID получает книгу по ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `
		SELECT id, title, author, published_year
		FROM books
		WHERE id = $1
	`

	var book model.Book
	err := r.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.PublishedYear,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book by id: %w", err)
	}

	return &book, nil
}

// List получает все книги
func (r *BookRepository) List(ctx context.Context) ([]*model.Book, error) {
	query := `
		SELECT id, title, author, published_year
		FROM books
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*model.Book{}
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.PublishedYear); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

// Update сохраняет все поля книги
func (r *BookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, published_year = $3
		WHERE id = $4
	`

	affected, err := r.ExecAffected(ctx, query, book.Title, book.Author, book.PublishedYear, book.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete удаляет книгу
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
