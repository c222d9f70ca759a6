package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository"
	"go.uber.org/zap"
)

// existenceChecker реализуют StudentService и BookService
type existenceChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type BorrowService struct {
	tx       Transactor
	students existenceChecker
	books    existenceChecker
	loanRepo LoanRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewBorrowService(
	tx Transactor,
	students *StudentService,
	books *BookService,
	loanRepo LoanRepository,
	logger *zap.Logger,
) *BorrowService {
	return &BorrowService{
		tx:       tx,
		students: students,
		books:    books,
		loanRepo: loanRepo,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock подменяет источник текущего времени
func (s *BorrowService) WithClock(now func() time.Time) *BorrowService {
	s.now = now
	return s
}

// Borrow выдаёт книгу студенту. У пары студент/книга может быть
// только одна активная выдача.
func (s *BorrowService) Borrow(ctx context.Context, studentID, bookID *int64) (*model.Loan, error) {
	if studentID == nil || bookID == nil {
		return nil, validationError(msgBorrowFields)
	}

	loan := &model.Loan{
		StudentID:  *studentID,
		BookID:     *bookID,
		BorrowDate: s.now(),
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireStudent(ctx, loan.StudentID); err != nil {
			return err
		}

		if err := s.requireBook(ctx, loan.BookID); err != nil {
			return err
		}

		active, err := s.loanRepo.GetActive(ctx, loan.StudentID, loan.BookID)
		if err != nil {
			return fmt.Errorf("get active loan: %w", err)
		}

		if active != nil {
			return conflictError(msgAlreadyBorrowed)
		}

		// параллельная выдача той же пары упрётся в уникальный индекс
		err = s.loanRepo.Create(ctx, loan)
		if errors.Is(err, repository.ErrActiveLoanExists) {
			return conflictError(msgAlreadyBorrowed)
		}
		if err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Book borrowed",
		zap.Int64("loan_id", loan.ID),
		zap.Int64("student_id", loan.StudentID),
		zap.Int64("book_id", loan.BookID),
	)

	return loan, nil
}

// Return закрывает активную выдачу пары. Прошлые (уже возвращённые)
// выдачи не затрагиваются.
func (s *BorrowService) Return(ctx context.Context, studentID, bookID *int64) (*model.Loan, error) {
	if studentID == nil || bookID == nil {
		return nil, validationError(msgBorrowFields)
	}

	var loan *model.Loan
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		closed, err := s.loanRepo.CloseActive(ctx, *studentID, *bookID, s.now())
		if err != nil {
			return fmt.Errorf("close active loan: %w", err)
		}

		if closed == nil {
			return notFoundError(msgNoActiveBorrow)
		}

		loan = closed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Book returned",
		zap.Int64("loan_id", loan.ID),
		zap.Int64("student_id", loan.StudentID),
		zap.Int64("book_id", loan.BookID),
	)

	return loan, nil
}

// ListAll возвращает все выдачи, активные и закрытые
func (s *BorrowService) ListAll(ctx context.Context) ([]*model.Loan, error) {
	loans, err := s.loanRepo.List(ctx, repository.LoanFilter{})
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

// ListByStudent возвращает историю выдач студента
func (s *BorrowService) ListByStudent(ctx context.Context, studentID int64) ([]*model.Loan, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.List(ctx, repository.ByStudent(studentID))
	if err != nil {
		return nil, fmt.Errorf("list student loans: %w", err)
	}
	return loans, nil
}

// ListByBook возвращает историю выдач книги
func (s *BorrowService) ListByBook(ctx context.Context, bookID int64) ([]*model.Loan, error) {
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.List(ctx, repository.ByBook(bookID))
	if err != nil {
		return nil, fmt.Errorf("list book loans: %w", err)
	}
	return loans, nil
}

func (s *BorrowService) requireStudent(ctx context.Context, id int64) error {
	ok, err := s.students.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFoundError(msgStudentNotFound)
	}
	return nil
}

func (s *BorrowService) requireBook(ctx context.Context, id int64) error {
	ok, err := s.books.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFoundError(msgBookNotFound)
	}
	return nil
}
