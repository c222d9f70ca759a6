package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository"
	"github.com/Freeeeeet/library_api/internal/repository/memory"
)

func Test_StudentRepository_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	students := memory.NewStore().Students()

	first := &model.Student{Email: "e@x.com", FirstName: "Alice", LastName: "Doe"}
	require.NoError(t, students.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	err := students.Create(ctx, &model.Student{Email: "e@x.com", FirstName: "Bob", LastName: "Roe"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	// сравнение email точное, регистр учитывается
	other := &model.Student{Email: "E@x.com", FirstName: "Bob", LastName: "Roe"}
	require.NoError(t, students.Create(ctx, other))

	other.Email = "e@x.com"
	assert.ErrorIs(t, students.Update(ctx, other), repository.ErrEmailTaken)
}

func Test_StudentRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	students := memory.NewStore().Students()

	birth := time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)
	student := &model.Student{Email: "e@x.com", FirstName: "Alice", LastName: "Doe", BirthDate: &birth}
	require.NoError(t, students.Create(ctx, student))

	got, err := students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	got.FirstName = "Mallory"
	*got.BirthDate = time.Time{}

	again, err := students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.FirstName)
	assert.Equal(t, birth, *again.BirthDate)
}

func Test_StudentRepository_MissingRecords(t *testing.T) {
	ctx := context.Background()
	students := memory.NewStore().Students()

	got, err := students.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, students.Update(ctx, &model.Student{ID: 42}), repository.ErrNotFound)
	assert.ErrorIs(t, students.Delete(ctx, 42), repository.ErrNotFound)
}

func Test_LoanRepository_OneActiveLoanPerPair(t *testing.T) {
	ctx := context.Background()
	loans := memory.NewStore().Loans()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local)

	require.NoError(t, loans.Create(ctx, &model.Loan{StudentID: 1, BookID: 1, BorrowDate: now}))
	err := loans.Create(ctx, &model.Loan{StudentID: 1, BookID: 1, BorrowDate: now})
	assert.ErrorIs(t, err, repository.ErrActiveLoanExists)

	// другая пара не конфликтует
	require.NoError(t, loans.Create(ctx, &model.Loan{StudentID: 1, BookID: 2, BorrowDate: now}))

	closed, err := loans.CloseActive(ctx, 1, 1, now.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, closed)
	assert.True(t, closed.IsReturned())

	again, err := loans.CloseActive(ctx, 1, 1, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, again)

	require.NoError(t, loans.Create(ctx, &model.Loan{StudentID: 1, BookID: 1, BorrowDate: now.Add(3 * time.Hour)}))

	history, err := loans.List(ctx, repository.ByStudent(1))
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].IsReturned())
	assert.False(t, history[2].IsReturned())

	byBook, err := loans.List(ctx, repository.ByBook(2))
	require.NoError(t, err)
	assert.Len(t, byBook, 1)
}

func Test_Store_WithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, store.Books().Create(ctx, &model.Book{Title: "Dune", Author: "Herbert"}))
		require.NoError(t, store.Students().Create(ctx, &model.Student{Email: "e@x.com", FirstName: "A", LastName: "B"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	books, err := store.Books().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	students, err := store.Students().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	// счётчики идентификаторов тоже откатываются
	book := &model.Book{Title: "Dune", Author: "Herbert"}
	require.NoError(t, store.Books().Create(ctx, book))
	assert.Equal(t, int64(1), book.ID)
}

func Test_Store_WithinTx_Commits(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		// вложенная транзакция переиспользует внешнюю
		return store.WithinTx(ctx, func(ctx context.Context) error {
			return store.Books().Create(ctx, &model.Book{Title: "Dune", Author: "Herbert"})
		})
	})
	require.NoError(t, err)

	books, err := store.Books().List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}
