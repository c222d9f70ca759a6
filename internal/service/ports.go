package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository"
)

// Transactor выполняет fn в одной транзакции хранилища
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	List(ctx context.Context) ([]*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id int64) error
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type LoanRepository interface {
	Create(ctx context.Context, loan *model.Loan) error
	GetActive(ctx context.Context, studentID, bookID int64) (*model.Loan, error)
	CloseActive(ctx context.Context, studentID, bookID int64, returnedAt time.Time) (*model.Loan, error)
	List(ctx context.Context, filter repository.LoanFilter) ([]*model.Loan, error)
}
