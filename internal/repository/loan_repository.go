package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository/base"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	loansTable = "student_books"

	// частичный уникальный индекс: одна активная выдача на пару студент/книга
	loansActiveIndex = "student_books_active_uidx"
)

var loanColumns = []any{"id", "student_id", "book_id", "borrow_date", "return_date"}

type LoanRepository struct {
	*base.Repository
	dialect goqu.DialectWrapper
}

func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{
		Repository: base.NewRepository(pool),
		dialect:    goqu.Dialect("postgres"),
	}
}

// Create сохраняет новую выдачу. Вторая активная выдача той же пары
// отклоняется индексом и возвращается как ErrActiveLoanExists.
func (r *LoanRepository) Create(ctx context.Context, loan *model.Loan) error {
	query := `
		INSERT INTO student_books (student_id, book_id, borrow_date, return_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.QueryRow(
		ctx, query,
		loan.StudentID,
		loan.BookID,
		loan.BorrowDate,
		loan.ReturnDate,
	).Scan(&loan.ID)

	if err != nil {
		if base.IsUniqueViolation(err, loansActiveIndex) {
			return ErrActiveLoanExists
		}
		return fmt.Errorf("create loan: %w", err)
	}

	return nil
}

// GetActive получает активную (не возвращённую) выдачу для пары
func (r *LoanRepository) GetActive(ctx context.Context, studentID, bookID int64) (*model.Loan, error) {
	query, args, err := r.dialect.From(loansTable).
		Select(loanColumns...).
		Where(
			goqu.C("student_id").Eq(studentID),
			goqu.C("book_id").Eq(bookID),
			goqu.C("return_date").IsNull(),
		).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build active loan query: %w", err)
	}

	var loan model.Loan
	err = r.QueryRow(ctx, query, args...).Scan(
		&loan.ID,
		&loan.StudentID,
		&loan.BookID,
		&loan.BorrowDate,
		&loan.ReturnDate,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active loan: %w", err)
	}

	return &loan, nil
}

// CloseActive проставляет дату возврата активной выдаче одним запросом.
// Возвращает nil, nil если активной выдачи нет.
func (r *LoanRepository) CloseActive(ctx context.Context, studentID, bookID int64, returnedAt time.Time) (*model.Loan, error) {
	query := `
		UPDATE student_books
		SET return_date = $3
		WHERE student_id = $1 AND book_id = $2 AND return_date IS NULL
		RETURNING id, student_id, book_id, borrow_date, return_date
	`

	var loan model.Loan
	err := r.QueryRow(ctx, query, studentID, bookID, returnedAt).Scan(
		&loan.ID,
		&loan.StudentID,
		&loan.BookID,
		&loan.BorrowDate,
		&loan.ReturnDate,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("close active loan: %w", err)
	}

	return &loan, nil
}

// List получает выдачи по фильтру в порядке создания
func (r *LoanRepository) List(ctx context.Context, filter LoanFilter) ([]*model.Loan, error) {
	ds := r.dialect.From(loansTable).
		Select(loanColumns...).
		Order(goqu.I("id").Asc()).
		Prepared(true)

	if filter.StudentID != nil {
		ds = ds.Where(goqu.Ex{"student_id": *filter.StudentID})
	}
	if filter.BookID != nil {
		ds = ds.Where(goqu.Ex{"book_id": *filter.BookID})
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build loans query: %w", err)
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	loans := []*model.Loan{}
	for rows.Next() {
		var loan model.Loan
		err := rows.Scan(
			&loan.ID,
			&loan.StudentID,
			&loan.BookID,
			&loan.BorrowDate,
			&loan.ReturnDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, &loan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}

	return loans, nil
}
