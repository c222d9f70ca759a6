package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/library_api/internal/app"
	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository"
	"github.com/Freeeeeet/library_api/internal/repository/base"
)

// Тесты работают с настоящей базой и запускаются только при заданном TEST_DB_DSN
func givenPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := app.NewMigrator(pool, zap.NewNop())
	require.NoError(t, err)
	defer migrator.Close()
	require.NoError(t, migrator.Run(ctx))

	_, err = pool.Exec(ctx, `TRUNCATE students, books, student_books RESTART IDENTITY`)
	require.NoError(t, err)

	return pool
}

func Test_Postgres_StudentEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	students := repository.NewStudentRepository(givenPool(t))

	birth := time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)
	first := &model.Student{Email: "e@x.com", FirstName: "Alice", LastName: "Doe", BirthDate: &birth}
	require.NoError(t, students.Create(ctx, first))

	err := students.Create(ctx, &model.Student{Email: "e@x.com", FirstName: "Bob", LastName: "Roe"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	got, err := students.GetByEmail(ctx, "e@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	require.NotNil(t, got.BirthDate)
	assert.Equal(t, "2001-02-03", got.BirthDate.Format(model.DateLayout))

	missing, err := students.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, students.Delete(ctx, 999), repository.ErrNotFound)
}

func Test_Postgres_OneActiveLoanPerPair(t *testing.T) {
	ctx := context.Background()
	loans := repository.NewLoanRepository(givenPool(t))
	now := time.Now().Truncate(time.Microsecond)

	require.NoError(t, loans.Create(ctx, &model.Loan{StudentID: 1, BookID: 1, BorrowDate: now}))

	err := loans.Create(ctx, &model.Loan{StudentID: 1, BookID: 1, BorrowDate: now})
	assert.ErrorIs(t, err, repository.ErrActiveLoanExists)

	active, err := loans.GetActive(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, active)

	closed, err := loans.CloseActive(ctx, 1, 1, now.Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, closed)
	assert.Equal(t, active.ID, closed.ID)
	assert.True(t, closed.IsReturned())

	none, err := loans.CloseActive(ctx, 1, 1, now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, loans.Create(ctx, &model.Loan{StudentID: 1, BookID: 1, BorrowDate: now}))

	history, err := loans.List(ctx, repository.ByStudent(1))
	require.NoError(t, err)
	assert.Len(t, history, 2)

	byBook, err := loans.List(ctx, repository.ByBook(2))
	require.NoError(t, err)
	assert.Empty(t, byBook)
}

func Test_Postgres_ConcurrentBorrowsOfSamePair(t *testing.T) {
	ctx := context.Background()
	pool := givenPool(t)
	loans := repository.NewLoanRepository(pool)
	tx := base.NewTransactor(pool)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- tx.WithinTx(ctx, func(ctx context.Context) error {
				return loans.Create(ctx, &model.Loan{StudentID: 5, BookID: 7, BorrowDate: time.Now()})
			})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrActiveLoanExists)
	}
	assert.Equal(t, 1, succeeded)
}

func Test_Postgres_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	pool := givenPool(t)
	books := repository.NewBookRepository(pool)
	tx := base.NewTransactor(pool)

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := books.Create(ctx, &model.Book{Title: "Dune", Author: "Frank Herbert"}); err != nil {
			return err
		}
		return repository.ErrNotFound
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := books.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
