package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository"
	"go.uber.org/zap"
)

type BookService struct {
	tx       Transactor
	bookRepo BookRepository
	logger   *zap.Logger
}

func NewBookService(tx Transactor, bookRepo BookRepository, logger *zap.Logger) *BookService {
	return &BookService{
		tx:       tx,
		bookRepo: bookRepo,
		logger:   logger,
	}
}

func (s *BookService) List(ctx context.Context) ([]*model.Book, error) {
	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Get возвращает книгу или ошибку вида ErrNotFound
func (s *BookService) Get(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	if book == nil {
		return nil, notFoundError(msgBookNotFound)
	}

	return book, nil
}

// Exists проверяет, что книга существует
func (s *BookService) Exists(ctx context.Context, id int64) (bool, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get book: %w", err)
	}
	return book != nil, nil
}

// Create добавляет книгу. title и author обязательны.
func (s *BookService) Create(ctx context.Context, fields model.BookFields) (*model.Book, error) {
	if !hasText(fields.Title) || !hasText(fields.Author) {
		return nil, validationError(msgBookFields)
	}

	book := &model.Book{
		Title:  fields.Title.Value,
		Author: fields.Author.Value,
	}

	if fields.PublishedYear.Present() {
		if fields.PublishedYear.Value <= 0 {
			return nil, validationError(msgInvalidYear)
		}
		year := fields.PublishedYear.Value
		book.PublishedYear = &year
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.bookRepo.Create(ctx, book); err != nil {
			return fmt.Errorf("create book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Book created",
		zap.Int64("book_id", book.ID),
		zap.String("title", book.Title),
	)

	return book, nil
}

// Update применяет только переданные поля
func (s *BookService) Update(ctx context.Context, id int64, fields model.BookFields) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		book, err := s.bookRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get book: %w", err)
		}

		if book == nil {
			return notFoundError(msgBookNotFound)
		}

		if fields.IsEmpty() {
			return validationError(msgNoData)
		}

		if fields.Title.Set && !hasText(fields.Title) {
			return validationError(fmt.Sprintf(msgRequiredFieldNotSet, "title"))
		}
		if fields.Author.Set && !hasText(fields.Author) {
			return validationError(fmt.Sprintf(msgRequiredFieldNotSet, "author"))
		}
		if fields.PublishedYear.Present() && fields.PublishedYear.Value <= 0 {
			return validationError(msgInvalidYear)
		}

		if fields.Title.Set {
			book.Title = fields.Title.Value
		}
		if fields.Author.Set {
			book.Author = fields.Author.Value
		}
		if fields.PublishedYear.Set {
			book.PublishedYear = nil
			if fields.PublishedYear.Present() {
				year := fields.PublishedYear.Value
				book.PublishedYear = &year
			}
		}

		err = s.bookRepo.Update(ctx, book)
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(msgBookNotFound)
		}
		if err != nil {
			return fmt.Errorf("update book: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Book updated", zap.Int64("book_id", id))

	return nil
}

// Delete удаляет книгу. История выдач сохраняется.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		err := s.bookRepo.Delete(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(msgBookNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Book deleted", zap.Int64("book_id", id))

	return nil
}
