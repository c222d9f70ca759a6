package service

import "errors"

// Виды ошибок бизнес-логики. Обработчики HTTP сопоставляют их со статусами.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Error ошибка с сообщением для клиента. errors.Is(err, ErrNotFound) и т.п.
// проверяет её вид.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func validationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func notFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func conflictError(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Сообщения, которые видит клиент API
const (
	msgStudentNotFound     = "Student not found"
	msgBookNotFound        = "Book not found"
	msgStudentFields       = "Invalid data, email, first_name and last_name are required"
	msgBookFields          = "Invalid data, title and author are required"
	msgBorrowFields        = "Invalid data, student_id and book_id are required"
	msgEmailTaken          = "A student with this email already exists"
	msgInvalidDate         = "Invalid date format, expected YYYY-MM-DD"
	msgNoData              = "No data provided"
	msgAlreadyBorrowed     = "This book is already borrowed by this student"
	msgNoActiveBorrow      = "No active borrow found for this student and book"
	msgInvalidYear         = "Invalid data, published_year must be a positive number"
	msgRequiredFieldNotSet = "Invalid data, %s cannot be empty"
)
