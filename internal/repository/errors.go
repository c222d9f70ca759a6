package repository

import "errors"

// Ошибки хранилища, общие для всех реализаций
var (
	ErrNotFound         = errors.New("record not found")
	ErrEmailTaken       = errors.New("email already taken")
	ErrActiveLoanExists = errors.New("active loan already exists")
)

// LoanFilter ограничивает выборку записей о выдаче.
// Пустой фильтр возвращает все записи.
type LoanFilter struct {
	StudentID *int64
	BookID    *int64
}

// ByStudent фильтр по студенту
func ByStudent(studentID int64) LoanFilter {
	return LoanFilter{StudentID: &studentID}
}

// ByBook фильтр по книге
func ByBook(bookID int64) LoanFilter {
	return LoanFilter{BookID: &bookID}
}
