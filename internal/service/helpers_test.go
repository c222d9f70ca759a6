package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository/memory"
	"github.com/Freeeeeet/library_api/internal/service"
)

type fixture struct {
	store    *memory.Store
	students *service.StudentService
	books    *service.BookService
	borrows  *service.BorrowService
	clock    *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zap.NewNop()
	store := memory.NewStore()
	clock := &fakeClock{now: time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)}

	students := service.NewStudentService(store, store.Students(), logger)
	books := service.NewBookService(store, store.Books(), logger)
	borrows := service.NewBorrowService(store, students, books, store.Loans(), logger).WithClock(clock.Now)

	return &fixture{
		store:    store,
		students: students,
		books:    books,
		borrows:  borrows,
		clock:    clock,
	}
}

func (f *fixture) givenStudent(t *testing.T, email string) *model.Student {
	t.Helper()

	student, err := f.students.Create(context.Background(), model.StudentFields{
		Email:     model.Some(email),
		FirstName: model.Some("Alice"),
		LastName:  model.Some("Doe"),
	})
	require.NoError(t, err)

	return student
}

func (f *fixture) givenBook(t *testing.T, title string) *model.Book {
	t.Helper()

	book, err := f.books.Create(context.Background(), model.BookFields{
		Title:  model.Some(title),
		Author: model.Some("Frank Herbert"),
	})
	require.NoError(t, err)

	return book
}

func ptr[T any](v T) *T {
	return &v
}
